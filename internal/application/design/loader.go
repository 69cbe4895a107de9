// Package design holds the commands and queries that edit and inspect stored ship designs.
package design

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// loadDesign fetches a blueprint and assembles it against the current catalog snapshot, with
// ledgers rated for a simulation driven at tickSeconds
func loadDesign(ctx context.Context, repo ship.DesignRepository, store *catalog.Store, designID string, tickSeconds float64) (*ship.Ship, *catalog.Snapshot, error) {
	if designID == "" {
		return nil, nil, fmt.Errorf("design id is required")
	}
	bp, err := repo.FindByID(ctx, designID)
	if err != nil {
		return nil, nil, err
	}
	snap := store.Current()
	s, err := ship.Assemble(*bp, snap.Components, snap.Classes)
	if err != nil {
		return nil, nil, err
	}
	s.SetTickSeconds(tickSeconds)
	return s, snap, nil
}
