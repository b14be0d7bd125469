package opening

import (
	"log/slog"

	httpadapter "openings/contexts/recruiting/opening-service/adapters/http"
	"openings/contexts/recruiting/opening-service/adapters/memory"
	"openings/contexts/recruiting/opening-service/application"
	"openings/contexts/recruiting/opening-service/ports"
)

// Module is the opening-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Company    ports.CompanyPermissionChecker
	Clock      ports.Clock
	Logger     *slog.Logger

	AllowEditClosedOpening bool
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                   deps.Repository,
		Company:                deps.Company,
		Clock:                  deps.Clock,
		Logger:                 deps.Logger,
		AllowEditClosedOpening: deps.AllowEditClosedOpening,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The permission checker still comes from the caller because it
// crosses into the company-service.
func NewInMemoryModule(company ports.CompanyPermissionChecker, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:             store,
		Company:                company,
		Clock:                  store,
		Logger:                 logger,
		AllowEditClosedOpening: true,
	})
	module.Store = store
	return module
}
