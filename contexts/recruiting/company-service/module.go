package company

import (
	"log/slog"

	httpadapter "openings/contexts/recruiting/company-service/adapters/http"
	"openings/contexts/recruiting/company-service/adapters/memory"
	"openings/contexts/recruiting/company-service/application"
	"openings/contexts/recruiting/company-service/ports"
)

// Module is the company-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository   ports.Repository
	Adjudication ports.RequestAdjudicationChecker
	Clock        ports.Clock
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repository,
		Adjudication: deps.Adjudication,
		Clock:        deps.Clock,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The adjudication checker still comes from the caller because it
// crosses into the identity-access context.
func NewInMemoryModule(adjudication ports.RequestAdjudicationChecker, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:   store,
		Adjudication: adjudication,
		Clock:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
