package setup

import (
	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/design"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	store      *catalog.Store
	designRepo ship.DesignRepository
	reportRepo combat.ReportRepository
	defaults   battle.Defaults
	clock      shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	store *catalog.Store,
	designRepo ship.DesignRepository,
	reportRepo combat.ReportRepository,
	defaults battle.Defaults,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		store:      store,
		designRepo: designRepo,
		reportRepo: reportRepo,
		defaults:   defaults,
		clock:      clock,
	}
}

// RegisterCatalogHandlers registers the catalog queries
func (r *HandlerRegistry) RegisterCatalogHandlers(m mediator.Mediator) error {
	return catalog.RegisterHandlers(m, r.store)
}

// RegisterDesignHandlers registers the design commands and queries
//
// This method registers:
//   - CreateDesignCommand, AddComponentCommand, RemoveComponentCommand
//   - ValidateDesignQuery, GetDesignStatsQuery, GetLogisticsQuery, ListDesignsQuery
func (r *HandlerRegistry) RegisterDesignHandlers(m mediator.Mediator) error {
	return design.RegisterHandlers(m, r.designRepo, r.store, r.defaults.TickSeconds)
}

// RegisterBattleHandlers registers RunBattleCommand and the report queries
func (r *HandlerRegistry) RegisterBattleHandlers(m mediator.Mediator) error {
	run := battle.NewRunBattleHandler(r.designRepo, r.reportRepo, r.store, r.defaults, r.clock)
	return battle.RegisterHandlers(m, run, r.reportRepo)
}

// CreateConfiguredMediator creates a mediator with every handler registered and the given
// middleware installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.Use(mw)
	}

	if err := r.RegisterCatalogHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterDesignHandlers(m); err != nil {
		return nil, err
	}
	// Battles need somewhere to keep their reports
	if r.reportRepo != nil {
		if err := r.RegisterBattleHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
