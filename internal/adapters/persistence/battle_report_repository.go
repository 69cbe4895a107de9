package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

// GormBattleReportRepository implements combat.ReportRepository using GORM
type GormBattleReportRepository struct {
	db *gorm.DB
}

// NewGormBattleReportRepository creates a new GORM battle report repository
func NewGormBattleReportRepository(db *gorm.DB) *GormBattleReportRepository {
	return &GormBattleReportRepository{db: db}
}

// Save persists a report
func (r *GormBattleReportRepository) Save(ctx context.Context, report *combat.Report) error {
	model, err := r.reportToModel(report)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save battle report: %w", err)
	}
	return nil
}

// FindByID retrieves a report by id
func (r *GormBattleReportRepository) FindByID(ctx context.Context, id string) (*combat.Report, error) {
	var model BattleReportModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("battle report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find battle report: %w", result.Error)
	}
	return r.modelToReport(&model)
}

// List retrieves the most recent reports, newest first
func (r *GormBattleReportRepository) List(ctx context.Context, limit int) ([]*combat.Report, error) {
	var models []BattleReportModel
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list battle reports: %w", err)
	}

	reports := make([]*combat.Report, 0, len(models))
	for i := range models {
		report, err := r.modelToReport(&models[i])
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *GormBattleReportRepository) reportToModel(report *combat.Report) (*BattleReportModel, error) {
	outcomes := make(map[string]int, len(report.Tally.Outcomes))
	for k, v := range report.Tally.Outcomes {
		outcomes[string(k)] = v
	}
	bytes, err := json.Marshal(outcomes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcomes: %w", err)
	}

	t := report.Tally
	return &BattleReportModel{
		ID:                 report.ID,
		AttackerDesignID:   report.AttackerDesignID,
		TargetDesignID:     report.TargetDesignID,
		Seed:               strconv.FormatUint(report.Seed, 10),
		Distance:           report.Distance,
		TickSeconds:        report.TickSeconds,
		Ticks:              report.Ticks,
		Elapsed:            report.Elapsed,
		Result:             string(report.Result),
		AttackerHitPoints:  report.AttackerHitPoints,
		TargetHitPoints:    report.TargetHitPoints,
		TargetShields:      report.TargetShields,
		Shots:              t.Shots,
		Hits:               t.Hits,
		BeamShots:          t.BeamShots,
		BeamHits:           t.BeamHits,
		ShieldDamage:       t.ShieldDamage,
		ReducedDamage:      t.ReducedDamage,
		HullDamage:         t.HullDamage,
		ProjectilesFired:   t.ProjectilesFired,
		ProjectileImpacts:  t.ProjectileImpacts,
		SeekersLaunched:    t.SeekersLaunched,
		SeekersImpacted:    t.SeekersImpacted,
		SeekersExpired:     t.SeekersExpired,
		SeekersIntercepted: t.SeekersIntercepted,
		VehiclesLaunched:   t.VehiclesLaunched,
		Outcomes:           string(bytes),
		CreatedAt:          report.CreatedAt,
	}, nil
}

func (r *GormBattleReportRepository) modelToReport(model *BattleReportModel) (*combat.Report, error) {
	seed, err := strconv.ParseUint(model.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed in database for report %s: %w", model.ID, err)
	}

	var raw map[string]int
	if model.Outcomes != "" {
		if err := json.Unmarshal([]byte(model.Outcomes), &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcomes: %w", err)
		}
	}
	outcomes := make(map[combat.FireOutcome]int, len(raw))
	for k, v := range raw {
		outcomes[combat.FireOutcome(k)] = v
	}

	return &combat.Report{
		ID:                model.ID,
		AttackerDesignID:  model.AttackerDesignID,
		TargetDesignID:    model.TargetDesignID,
		Seed:              seed,
		Distance:          model.Distance,
		TickSeconds:       model.TickSeconds,
		Ticks:             model.Ticks,
		Elapsed:           model.Elapsed,
		Result:            combat.Result(model.Result),
		AttackerHitPoints: model.AttackerHitPoints,
		TargetHitPoints:   model.TargetHitPoints,
		TargetShields:     model.TargetShields,
		Tally: combat.Tally{
			Outcomes:           outcomes,
			Shots:              model.Shots,
			Hits:               model.Hits,
			BeamShots:          model.BeamShots,
			BeamHits:           model.BeamHits,
			ShieldDamage:       model.ShieldDamage,
			ReducedDamage:      model.ReducedDamage,
			HullDamage:         model.HullDamage,
			ProjectilesFired:   model.ProjectilesFired,
			ProjectileImpacts:  model.ProjectileImpacts,
			SeekersLaunched:    model.SeekersLaunched,
			SeekersImpacted:    model.SeekersImpacted,
			SeekersExpired:     model.SeekersExpired,
			SeekersIntercepted: model.SeekersIntercepted,
			VehiclesLaunched:   model.VehiclesLaunched,
		},
		CreatedAt: model.CreatedAt,
	}, nil
}
