package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// SkippedEntry is a catalog entry rejected during loading
type SkippedEntry struct {
	ID     string
	Reason string
}

// LoadResult is what a loader produces from one catalog source
type LoadResult struct {
	Components *component.Catalog
	Classes    *ship.ClassCatalog
	Skipped    []SkippedEntry
	Source     string
}

// Loader reads a catalog from its backing source
type Loader interface {
	Load(ctx context.Context) (*LoadResult, error)
}

// Snapshot is one published catalog version. Snapshots are immutable; a reload publishes a new
// one and readers holding the old one keep a consistent view.
type Snapshot struct {
	Components *component.Catalog
	Classes    *ship.ClassCatalog
	Skipped    []SkippedEntry
	Source     string
	Version    int
	LoadedAt   time.Time
}

// Store holds the current catalog snapshot. Reads are lock-free; reloads are serialized.
type Store struct {
	current atomic.Pointer[Snapshot]
	reload  sync.Mutex
	now     func() time.Time
}

// NewStore creates a store with an empty catalog at version 0
func NewStore() *Store {
	s := &Store{now: time.Now}
	empty, _ := component.NewCatalog(nil)
	classes, _ := ship.NewClassCatalog(nil)
	s.current.Store(&Snapshot{Components: empty, Classes: classes})
	return s
}

// Current returns the latest published snapshot
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload loads a fresh catalog and publishes it. On error the current snapshot stays in place.
func (s *Store) Reload(ctx context.Context, loader Loader) (*Snapshot, error) {
	s.reload.Lock()
	defer s.reload.Unlock()

	logger := logging.LoggerFromContext(ctx)

	result, err := loader.Load(ctx)
	if err != nil {
		metrics.RecordCatalogReload("error", 0, 0)
		logger.Log(logging.LevelError, "catalog reload failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, skipped := range result.Skipped {
		logger.Log(logging.LevelWarn, "catalog entry skipped", map[string]interface{}{
			"id":     skipped.ID,
			"reason": skipped.Reason,
			"source": result.Source,
		})
	}

	classes := result.Classes
	if classes == nil {
		classes, _ = ship.NewClassCatalog(nil)
	}
	next := &Snapshot{
		Components: result.Components,
		Classes:    classes,
		Skipped:    result.Skipped,
		Source:     result.Source,
		Version:    s.current.Load().Version + 1,
		LoadedAt:   s.now(),
	}
	s.current.Store(next)

	metrics.RecordCatalogReload("success", next.Components.Len(), len(next.Skipped))
	logger.Log(logging.LevelInfo, "catalog loaded", map[string]interface{}{
		"source":     next.Source,
		"version":    next.Version,
		"components": next.Components.Len(),
		"classes":    next.Classes.Len(),
		"skipped":    len(next.Skipped),
	})
	return next, nil
}
