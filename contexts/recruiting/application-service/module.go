package applicationworkflow

import (
	"log/slog"

	httpadapter "openings/contexts/recruiting/application-service/adapters/http"
	"openings/contexts/recruiting/application-service/adapters/memory"
	"openings/contexts/recruiting/application-service/application"
	"openings/contexts/recruiting/application-service/ports"
)

// Module is the application-service composition root exposed to runtime
// wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Openings   ports.OpeningDirectory
	Company    ports.CompanyPermissionChecker
	Clock      ports.Clock
	Logger     *slog.Logger

	AllowApplyToClosedOpening bool
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                      deps.Repository,
		Openings:                  deps.Openings,
		Company:                   deps.Company,
		Clock:                     deps.Clock,
		Logger:                    deps.Logger,
		AllowApplyToClosedOpening: deps.AllowApplyToClosedOpening,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The opening directory and permission checker still come from the
// caller because they cross service boundaries.
func NewInMemoryModule(openings ports.OpeningDirectory, company ports.CompanyPermissionChecker, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:                store,
		Openings:                  openings,
		Company:                   company,
		Clock:                     store,
		Logger:                    logger,
		AllowApplyToClosedOpening: true,
	})
	module.Store = store
	return module
}
