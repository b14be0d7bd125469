package bootstrap

import (
	"errors"
	"log/slog"
	"strings"

	authorization "openings/contexts/identity-access/authorization-service"
	authzpostgres "openings/contexts/identity-access/authorization-service/adapters/postgres"
	identity "openings/contexts/identity-access/identity-service"
	identitycrypto "openings/contexts/identity-access/identity-service/adapters/crypto"
	identitypostgres "openings/contexts/identity-access/identity-service/adapters/postgres"
	applicationworkflow "openings/contexts/recruiting/application-service"
	applicationpostgres "openings/contexts/recruiting/application-service/adapters/postgres"
	company "openings/contexts/recruiting/company-service"
	companypostgres "openings/contexts/recruiting/company-service/adapters/postgres"
	opening "openings/contexts/recruiting/opening-service"
	openingpostgres "openings/contexts/recruiting/opening-service/adapters/postgres"
	"openings/internal/platform/config"
	"openings/internal/platform/db"
	"openings/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	identityModule := identity.NewModule(identity.Dependencies{
		Repository: identitypostgres.NewRepository(pg.DB, logger),
		Hasher:     identitycrypto.Hasher{},
		Clock:      identitypostgres.SystemClock{},
		Logger:     logger,
	})

	authzModule := authorization.NewModule(authorization.Dependencies{
		Repository: authzpostgres.NewRepository(pg.DB, logger),
		Logger:     logger,
	})

	companyModule := company.NewModule(company.Dependencies{
		Repository:   companypostgres.NewRepository(pg.DB, logger),
		Adjudication: AdjudicationChecker{Authorization: authzModule.Service},
		Clock:        companypostgres.SystemClock{},
		Logger:       logger,
	})

	openingModule := opening.NewModule(opening.Dependencies{
		Repository:             openingpostgres.NewRepository(pg.DB, logger),
		Company:                CompanyPermissionChecker{Company: companyModule.Service},
		Clock:                  openingpostgres.SystemClock{},
		Logger:                 logger,
		AllowEditClosedOpening: cfg.AllowEditClosedOpening,
	})

	applicationModule := applicationworkflow.NewModule(applicationworkflow.Dependencies{
		Repository:                applicationpostgres.NewRepository(pg.DB, logger),
		Openings:                  OpeningDirectory{Opening: openingModule.Service},
		Company:                   CompanyPermissionChecker{Company: companyModule.Service},
		Clock:                     applicationpostgres.SystemClock{},
		Logger:                    logger,
		AllowApplyToClosedOpening: cfg.AllowApplyToClosedOpening,
	})

	server := httpserver.New(httpserver.Modules{
		Identity:      identityModule,
		Authorization: authzModule,
		Company:       companyModule,
		Opening:       openingModule,
		Application:   applicationModule,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	defer func() { _ = a.postgres.Close() }()
	return a.server.Start()
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
