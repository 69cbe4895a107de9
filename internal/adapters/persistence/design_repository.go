package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// GormDesignRepository implements ship.DesignRepository using GORM.
// A design is stored as its header row plus one row per installed component, in order.
type GormDesignRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormDesignRepository creates a new GORM design repository
func NewGormDesignRepository(db *gorm.DB, clock shared.Clock) *GormDesignRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormDesignRepository{db: db, clock: clock}
}

// Save upserts the design and replaces its component rows
func (r *GormDesignRepository) Save(ctx context.Context, bp ship.Blueprint) error {
	rows, err := r.componentsToModels(bp)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.clock.Now()

		var existing ShipDesignModel
		err := tx.Where("id = ?", bp.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = ShipDesignModel{ID: bp.ID, CreatedAt: now}
		case err != nil:
			return fmt.Errorf("failed to load design: %w", err)
		}

		existing.Name = bp.Name
		existing.ClassName = bp.ClassName
		existing.UpdatedAt = now
		if err := tx.Omit("Components").Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to save design: %w", err)
		}

		if err := tx.Where("design_id = ?", bp.ID).Delete(&ShipDesignComponentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear design components: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save design components: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a design by id
func (r *GormDesignRepository) FindByID(ctx context.Context, id string) (*ship.Blueprint, error) {
	var model ShipDesignModel
	result := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewDesignNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find design: %w", result.Error)
	}
	return r.modelToBlueprint(&model)
}

// List retrieves every design ordered by name
func (r *GormDesignRepository) List(ctx context.Context) ([]ship.Blueprint, error) {
	var models []ShipDesignModel
	result := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list designs: %w", result.Error)
	}

	designs := make([]ship.Blueprint, 0, len(models))
	for i := range models {
		bp, err := r.modelToBlueprint(&models[i])
		if err != nil {
			return nil, err
		}
		designs = append(designs, *bp)
	}
	return designs, nil
}

// Delete removes a design and its components
func (r *GormDesignRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("design_id = ?", id).Delete(&ShipDesignComponentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete design components: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&ShipDesignModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete design: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewDesignNotFoundError(id)
		}
		return nil
	})
}

func (r *GormDesignRepository) componentsToModels(bp ship.Blueprint) ([]ShipDesignComponentModel, error) {
	rows := make([]ShipDesignComponentModel, 0, len(bp.Components))
	for i, c := range bp.Components {
		var mods string
		if len(c.Modifiers) > 0 {
			bytes, err := json.Marshal(c.Modifiers)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal modifiers: %w", err)
			}
			mods = string(bytes)
		}
		rows = append(rows, ShipDesignComponentModel{
			DesignID:    bp.ID,
			Position:    i,
			InstanceID:  c.InstanceID,
			ComponentID: c.ComponentID,
			Layer:       string(c.Layer),
			Modifiers:   mods,
		})
	}
	return rows, nil
}

func (r *GormDesignRepository) modelToBlueprint(model *ShipDesignModel) (*ship.Blueprint, error) {
	bp := &ship.Blueprint{
		ID:         model.ID,
		Name:       model.Name,
		ClassName:  model.ClassName,
		Components: make([]ship.InstalledComponent, 0, len(model.Components)),
	}
	for _, row := range model.Components {
		layer, err := component.ParseLayer(row.Layer)
		if err != nil {
			return nil, fmt.Errorf("invalid layer in database for design %s: %w", model.ID, err)
		}
		var mods ability.Modifiers
		if row.Modifiers != "" {
			if err := json.Unmarshal([]byte(row.Modifiers), &mods); err != nil {
				return nil, fmt.Errorf("failed to unmarshal modifiers: %w", err)
			}
		}
		bp.Components = append(bp.Components, ship.InstalledComponent{
			InstanceID:  row.InstanceID,
			ComponentID: row.ComponentID,
			Layer:       layer,
			Modifiers:   mods,
		})
	}
	return bp, nil
}
