package catalog

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// ListComponentsQuery lists catalog components, optionally only those with one ability kind
type ListComponentsQuery struct {
	AbilityKind string
}

type ListComponentsResponse struct {
	Components []*component.Definition
	Skipped    []SkippedEntry
	Source     string
	Version    int
}

// GetComponentQuery fetches one component definition
type GetComponentQuery struct {
	ComponentID string
}

type GetComponentResponse struct {
	Component *component.Definition
}

// ListClassesQuery lists the ship classes in the catalog
type ListClassesQuery struct{}

type ListClassesResponse struct {
	Classes []*ship.Class
}

// QueryHandler answers every catalog query from the store's current snapshot
type QueryHandler struct {
	store *Store
}

func NewQueryHandler(store *Store) *QueryHandler {
	return &QueryHandler{store: store}
}

// Handle executes a catalog query
func (h *QueryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	snap := h.store.Current()

	switch q := request.(type) {
	case *ListComponentsQuery:
		defs := snap.Components.All()
		if q.AbilityKind != "" {
			defs = snap.Components.WithAbility(ability.Kind(q.AbilityKind))
		}
		return &ListComponentsResponse{
			Components: defs,
			Skipped:    snap.Skipped,
			Source:     snap.Source,
			Version:    snap.Version,
		}, nil

	case *GetComponentQuery:
		def, err := snap.Components.Get(q.ComponentID)
		if err != nil {
			return nil, err
		}
		return &GetComponentResponse{Component: def}, nil

	case *ListClassesQuery:
		return &ListClassesResponse{Classes: snap.Classes.All()}, nil
	}
	return nil, fmt.Errorf("invalid request type")
}

// RegisterHandlers wires every catalog query into m
func RegisterHandlers(m mediator.Mediator, store *Store) error {
	h := NewQueryHandler(store)
	if err := mediator.RegisterHandler[*ListComponentsQuery](m, h); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*GetComponentQuery](m, h); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ListClassesQuery](m, h)
}
