package design

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// CreateDesignCommand starts an empty design. An empty ClassName uses the unclassed default.
type CreateDesignCommand struct {
	Name      string
	ClassName string
}

type CreateDesignResponse struct {
	Design ship.Blueprint
}

// CreateDesignHandler handles CreateDesignCommand
type CreateDesignHandler struct {
	repo  ship.DesignRepository
	store *catalog.Store
}

func NewCreateDesignHandler(repo ship.DesignRepository, store *catalog.Store) *CreateDesignHandler {
	return &CreateDesignHandler{repo: repo, store: store}
}

// Handle executes the create design command
func (h *CreateDesignHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateDesignCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	var class *ship.Class
	if cmd.ClassName != "" && cmd.ClassName != ship.DefaultClass().Name() {
		c, err := h.store.Current().Classes.Get(cmd.ClassName)
		if err != nil {
			return nil, err
		}
		class = c
	}

	s, err := ship.NewShip(uuid.NewString(), cmd.Name, class)
	if err != nil {
		return nil, err
	}

	bp := s.Blueprint()
	if err := h.repo.Save(ctx, bp); err != nil {
		return nil, fmt.Errorf("failed to save design: %w", err)
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "design created", map[string]interface{}{
		"design_id": bp.ID,
		"name":      bp.Name,
		"class":     bp.ClassName,
	})
	return &CreateDesignResponse{Design: bp}, nil
}
