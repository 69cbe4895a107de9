package design

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// AddComponentCommand installs one catalog component into a design
type AddComponentCommand struct {
	DesignID    string
	ComponentID string
	Layer       string
	Modifiers   ability.Modifiers
}

// AddComponentResponse carries the new instance and every verdict, warnings included
type AddComponentResponse struct {
	InstanceID string
	Verdicts   []domainDesign.Verdict
	Stats      ship.DerivedStats
}

// AddComponentHandler validates the design with the candidate in place and installs it only
// when no rule fails
type AddComponentHandler struct {
	repo        ship.DesignRepository
	store       *catalog.Store
	validator   *domainDesign.Validator
	tickSeconds float64
}

func NewAddComponentHandler(repo ship.DesignRepository, store *catalog.Store, validator *domainDesign.Validator, tickSeconds float64) *AddComponentHandler {
	if validator == nil {
		validator = domainDesign.NewValidator()
	}
	return &AddComponentHandler{repo: repo, store: store, validator: validator, tickSeconds: tickSeconds}
}

// Handle executes the add component command
func (h *AddComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	s, snap, err := loadDesign(ctx, h.repo, h.store, cmd.DesignID, h.tickSeconds)
	if err != nil {
		return nil, err
	}

	layer, err := component.ParseLayer(cmd.Layer)
	if err != nil {
		return nil, shared.NewValidationError("layer", err.Error())
	}
	candidate, err := snap.Components.Instantiate(cmd.ComponentID, layer, cmd.Modifiers)
	if err != nil {
		return nil, err
	}

	verdicts := h.validator.Validate(s, candidate)
	metrics.RecordVerdicts(verdicts)

	logger := logging.LoggerFromContext(ctx)
	if domainDesign.HasFailures(verdicts) {
		metrics.RecordDesignChange("add", false)
		logger.Log(logging.LevelWarn, "component rejected", map[string]interface{}{
			"design_id":    s.ID(),
			"component_id": cmd.ComponentID,
			"failures":     domainDesign.Failures(verdicts),
		})
		return nil, shared.NewDesignRejectedError(cmd.ComponentID, domainDesign.Failures(verdicts))
	}

	if err := s.AddComponent(candidate); err != nil {
		return nil, err
	}
	if err := h.repo.Save(ctx, s.Blueprint()); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	metrics.RecordDesignChange("add", true)

	for _, w := range domainDesign.Warnings(verdicts) {
		logger.Log(logging.LevelWarn, "design warning", map[string]interface{}{
			"design_id": s.ID(),
			"warning":   w,
		})
	}
	logger.Log(logging.LevelInfo, "component added", map[string]interface{}{
		"design_id":    s.ID(),
		"component_id": cmd.ComponentID,
		"instance_id":  candidate.ID(),
		"layer":        string(layer),
	})

	return &AddComponentResponse{InstanceID: candidate.ID(), Verdicts: verdicts, Stats: s.Stats()}, nil
}
