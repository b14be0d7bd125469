package identity

import (
	"log/slog"

	"openings/contexts/identity-access/identity-service/adapters/crypto"
	httpadapter "openings/contexts/identity-access/identity-service/adapters/http"
	"openings/contexts/identity-access/identity-service/adapters/memory"
	"openings/contexts/identity-access/identity-service/application"
	"openings/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Hasher     ports.CredentialHasher
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Hasher: deps.Hasher,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     crypto.Hasher{},
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
