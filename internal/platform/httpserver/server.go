package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	authorization "openings/contexts/identity-access/authorization-service"
	identity "openings/contexts/identity-access/identity-service"
	applicationworkflow "openings/contexts/recruiting/application-service"
	company "openings/contexts/recruiting/company-service"
	opening "openings/contexts/recruiting/opening-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "openings/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	identity      identity.Module
	authorization authorization.Module
	company       company.Module
	opening       opening.Module
	application   applicationworkflow.Module
}

type Modules struct {
	Identity      identity.Module
	Authorization authorization.Module
	Company       company.Module
	Opening       opening.Module
	Application   applicationworkflow.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		identity:      modules.Identity,
		authorization: modules.Authorization,
		company:       modules.Company,
		opening:       modules.Opening,
		application:   modules.Application,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler returns the routed handler wrapped in request-id and access-log
// middleware. Exposed separately so tests can drive the server without a
// listener.
func (s *Server) Handler() http.Handler {
	return withRequestID(withAccessLog(s.logger, s.mux))
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerIdentityRoutes()
	s.registerAuthorizationRoutes()
	s.registerCompanyRoutes()
	s.registerOpeningRoutes()
	s.registerApplicationRoutes()
}

// actorID resolves the authenticated caller from the X-User-Id header.
// Authentication itself happens at the edge; this process trusts the header.
func actorID(r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
