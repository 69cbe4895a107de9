package design

import (
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// RegisterHandlers wires every design command and query into m. Ledger rates are reported for a
// simulation driven at tickSeconds; zero means resource.DefaultTickSeconds.
func RegisterHandlers(m mediator.Mediator, repo ship.DesignRepository, store *catalog.Store, tickSeconds float64) error {
	validator := domainDesign.NewValidator()
	queries := NewQueryHandler(repo, store, validator, tickSeconds)

	registrations := []func() error{
		func() error { return mediator.RegisterHandler[*CreateDesignCommand](m, NewCreateDesignHandler(repo, store)) },
		func() error {
			return mediator.RegisterHandler[*AddComponentCommand](m, NewAddComponentHandler(repo, store, validator, tickSeconds))
		},
		func() error { return mediator.RegisterHandler[*RemoveComponentCommand](m, NewRemoveComponentHandler(repo, store, tickSeconds)) },
		func() error { return mediator.RegisterHandler[*ValidateDesignQuery](m, queries) },
		func() error { return mediator.RegisterHandler[*GetDesignStatsQuery](m, queries) },
		func() error { return mediator.RegisterHandler[*GetLogisticsQuery](m, queries) },
		func() error { return mediator.RegisterHandler[*ListDesignsQuery](m, queries) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
