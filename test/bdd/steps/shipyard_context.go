package steps

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/application/setup"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/test/helpers"
)

// shipyardContext provides shared state for application-layer scenarios
// Design and battle steps work against the same catalog, database and named designs
type shipyardContext struct {
	mu       sync.RWMutex
	store    *catalog.Store
	repos    *helpers.TestRepositories
	mediator mediator.Mediator
	designs  map[string]string // design name -> id
}

var (
	// Global shared context for application-layer tests
	globalShipyard = &shipyardContext{
		designs: make(map[string]string),
	}
)

// reset clears all shared state (called in Before hooks)
func (c *shipyardContext) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = nil
	c.repos = nil
	c.mediator = nil
	c.designs = make(map[string]string)
}

// useStandardCatalog loads the fixture catalog, empties the shared database and wires a
// mediator with every handler registered
func (c *shipyardContext) useStandardCatalog() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	store, err := helpers.BuildFixtureStore()
	if err != nil {
		return err
	}
	clock := shared.NewRealClock()
	repos := helpers.NewTestRepositories(clock)

	registry := setup.NewHandlerRegistry(store, repos.DesignRepo, repos.BattleReportRepo, battle.Defaults{}, clock)
	m, err := registry.CreateConfiguredMediator(setup.LoggingMiddleware())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
	c.repos = repos
	c.mediator = m
	return nil
}

func (c *shipyardContext) send(request mediator.Request) (mediator.Response, error) {
	c.mu.RLock()
	m := c.mediator
	c.mu.RUnlock()
	if m == nil {
		return nil, fmt.Errorf("no catalog loaded: start the scenario with 'the standard component catalog'")
	}
	return m.Send(context.Background(), request)
}

func (c *shipyardContext) addDesign(name, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.designs[name] = id
}

// designID returns the id of a named design; unknown names are passed through as ids
func (c *shipyardContext) designID(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id, ok := c.designs[name]; ok {
		return id
	}
	return name
}
