package design

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// ValidateDesignQuery runs every rule over a stored design
type ValidateDesignQuery struct {
	DesignID string
}

type ValidateDesignResponse struct {
	Verdicts []domainDesign.Verdict
	Valid    bool
}

// GetDesignStatsQuery returns a design's derived stats
type GetDesignStatsQuery struct {
	DesignID string
}

type GetDesignStatsResponse struct {
	Design ship.Blueprint
	Class  string
	Stats  ship.DerivedStats
	Layers []LayerUsage
}

// LayerUsage is one class layer with its budget and what is installed in it
type LayerUsage struct {
	Layer      component.Layer
	Mass       float64
	Budget     float64 // 0 means no budget
	Components []ComponentUsage
}

// ComponentUsage is one installed instance as shown by display code
type ComponentUsage struct {
	InstanceID  string
	ComponentID string
	Name        string
	Mass        float64
	Active      bool
}

// GetLogisticsQuery returns a design's per-resource summary
type GetLogisticsQuery struct {
	DesignID string
}

type GetLogisticsResponse struct {
	Rows []resource.LogisticsRow
}

// ListDesignsQuery lists every stored design
type ListDesignsQuery struct{}

type ListDesignsResponse struct {
	Designs []ship.Blueprint
}

// QueryHandler answers the read-only design queries
type QueryHandler struct {
	repo        ship.DesignRepository
	store       *catalog.Store
	validator   *domainDesign.Validator
	tickSeconds float64
}

func NewQueryHandler(repo ship.DesignRepository, store *catalog.Store, validator *domainDesign.Validator, tickSeconds float64) *QueryHandler {
	if validator == nil {
		validator = domainDesign.NewValidator()
	}
	return &QueryHandler{repo: repo, store: store, validator: validator, tickSeconds: tickSeconds}
}

// Handle executes a design query
func (h *QueryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch q := request.(type) {
	case *ValidateDesignQuery:
		s, _, err := loadDesign(ctx, h.repo, h.store, q.DesignID, h.tickSeconds)
		if err != nil {
			return nil, err
		}
		verdicts := h.validator.Validate(s, nil)
		metrics.RecordVerdicts(verdicts)
		return &ValidateDesignResponse{Verdicts: verdicts, Valid: !domainDesign.HasFailures(verdicts)}, nil

	case *GetDesignStatsQuery:
		s, _, err := loadDesign(ctx, h.repo, h.store, q.DesignID, h.tickSeconds)
		if err != nil {
			return nil, err
		}
		return &GetDesignStatsResponse{
			Design: s.Blueprint(),
			Class:  s.Class().Name(),
			Stats:  s.Stats(),
			Layers: layerUsage(s),
		}, nil

	case *GetLogisticsQuery:
		s, _, err := loadDesign(ctx, h.repo, h.store, q.DesignID, h.tickSeconds)
		if err != nil {
			return nil, err
		}
		return &GetLogisticsResponse{Rows: s.Stats().Logistics()}, nil

	case *ListDesignsQuery:
		designs, err := h.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list designs: %w", err)
		}
		return &ListDesignsResponse{Designs: designs}, nil
	}
	return nil, fmt.Errorf("invalid request type")
}

func layerUsage(s *ship.Ship) []LayerUsage {
	specs := s.Class().Layers()
	out := make([]LayerUsage, 0, len(specs))
	for _, spec := range specs {
		usage := LayerUsage{
			Layer:  spec.Layer,
			Mass:   s.LayerMass(spec.Layer),
			Budget: s.Class().LayerBudget(spec.Layer),
		}
		for _, inst := range s.ComponentsInLayer(spec.Layer) {
			usage.Components = append(usage.Components, ComponentUsage{
				InstanceID:  inst.ID(),
				ComponentID: inst.ComponentID(),
				Name:        inst.Definition().Name(),
				Mass:        inst.Mass(),
				Active:      s.IsActive(inst.ID()),
			})
		}
		out = append(out, usage)
	}
	return out
}
