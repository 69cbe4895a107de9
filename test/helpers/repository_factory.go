package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/shipforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB               *gorm.DB
	DesignRepo       *persistence.GormDesignRepository
	BattleReportRepo *persistence.GormBattleReportRepository
}

// NewTestRepositories creates all real repository instances using the shared test DB
// clock stamps design timestamps (usually a MockClock in tests)
func NewTestRepositories(clock shared.Clock) *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:               db,
		DesignRepo:       persistence.NewGormDesignRepository(db, clock),
		BattleReportRepo: persistence.NewGormBattleReportRepository(db),
	}
}
