package design

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// RemoveComponentCommand uninstalls one component instance. Removal is never blocked by
// validation; a design left invalid reports it on the next ValidateDesignQuery.
type RemoveComponentCommand struct {
	DesignID   string
	InstanceID string
}

type RemoveComponentResponse struct {
	ComponentID string
	Stats       ship.DerivedStats
}

type RemoveComponentHandler struct {
	repo        ship.DesignRepository
	store       *catalog.Store
	tickSeconds float64
}

func NewRemoveComponentHandler(repo ship.DesignRepository, store *catalog.Store, tickSeconds float64) *RemoveComponentHandler {
	return &RemoveComponentHandler{repo: repo, store: store, tickSeconds: tickSeconds}
}

// Handle executes the remove component command
func (h *RemoveComponentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveComponentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	s, _, err := loadDesign(ctx, h.repo, h.store, cmd.DesignID, h.tickSeconds)
	if err != nil {
		return nil, err
	}

	removed, err := s.RemoveComponent(cmd.InstanceID)
	if err != nil {
		metrics.RecordDesignChange("remove", false)
		return nil, err
	}
	if err := h.repo.Save(ctx, s.Blueprint()); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}
	metrics.RecordDesignChange("remove", true)

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "component removed", map[string]interface{}{
		"design_id":    s.ID(),
		"component_id": removed.ComponentID(),
		"instance_id":  removed.ID(),
	})
	return &RemoveComponentResponse{ComponentID: removed.ComponentID(), Stats: s.Stats()}, nil
}
