package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	companyerrors "openings/contexts/recruiting/company-service/domain/errors"
	companyhttp "openings/contexts/recruiting/company-service/transport/http"
)

func (s *Server) registerCompanyRoutes() {
	s.mux.HandleFunc("POST /api/companies/v1/requests", s.handleRequestCreateCompany)
	s.mux.HandleFunc("GET /api/companies/v1/requests", s.handleListCompanyRequests)
	s.mux.HandleFunc("GET /api/companies/v1/requests/my", s.handleListMyCompanyRequests)
	s.mux.HandleFunc("POST /api/companies/v1/requests/{request_id}/cancel", s.handleCancelCompanyRequest)
	s.mux.HandleFunc("POST /api/companies/v1/requests/{request_id}/accept", s.handleAcceptCompanyRequest)
	s.mux.HandleFunc("POST /api/companies/v1/requests/{request_id}/deny", s.handleDenyCompanyRequest)

	s.mux.HandleFunc("GET /api/companies/v1/companies", s.handleListCompanies)
	s.mux.HandleFunc("GET /api/companies/v1/companies/administered", s.handleListAdministeredCompanies)
	s.mux.HandleFunc("GET /api/companies/v1/companies/by-name/{name}", s.handleGetCompanyByName)
	s.mux.HandleFunc("GET /api/companies/v1/companies/{company_id}", s.handleGetCompany)

	s.mux.HandleFunc("POST /api/companies/v1/companies/{company_id}/permissions/grant", s.handleGrantCompanyPermission)
	s.mux.HandleFunc("POST /api/companies/v1/companies/{company_id}/permissions/revoke", s.handleRevokeCompanyPermission)
	s.mux.HandleFunc("GET /api/companies/v1/companies/{company_id}/permissions/{user_id}", s.handleListCompanyPermissions)
	s.mux.HandleFunc("GET /api/companies/v1/companies/{company_id}/permissions/{user_id}/{permission}", s.handleHasCompanyPermission)
	s.mux.HandleFunc("GET /api/companies/v1/permissions/{permission}/companies", s.handleListCompaniesWithPermission)
}

func (s *Server) handleRequestCreateCompany(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req companyhttp.RequestCreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.company.Handler.RequestCreateCompanyHandler(r.Context(), actor, req)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCompanyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.company.Handler.ListRequestsHandler(r.Context(), actor)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMyCompanyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.company.Handler.ListMyRequestsHandler(r.Context(), actor)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelCompanyRequest(w http.ResponseWriter, r *http.Request) {
	actor, requestID, ok := s.companyRequestScope(w, r)
	if !ok {
		return
	}
	if err := s.company.Handler.CancelRequestHandler(r.Context(), actor, requestID); err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAcceptCompanyRequest(w http.ResponseWriter, r *http.Request) {
	actor, requestID, ok := s.companyRequestScope(w, r)
	if !ok {
		return
	}
	resp, err := s.company.Handler.AcceptRequestHandler(r.Context(), actor, requestID)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDenyCompanyRequest(w http.ResponseWriter, r *http.Request) {
	actor, requestID, ok := s.companyRequestScope(w, r)
	if !ok {
		return
	}
	if err := s.company.Handler.DenyRequestHandler(r.Context(), actor, requestID); err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.company.Handler.ListCompaniesHandler(r.Context())
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAdministeredCompanies(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.company.Handler.ListAdministeredCompaniesHandler(r.Context(), actor)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "company_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_company_id", "company_id must be a positive integer")
		return
	}
	resp, err := s.company.Handler.GetCompanyHandler(r.Context(), companyID)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCompanyByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeCompanyError(w, http.StatusBadRequest, "invalid_name", "name must not be empty")
		return
	}
	resp, err := s.company.Handler.GetCompanyByNameHandler(r.Context(), name)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantCompanyPermission(w http.ResponseWriter, r *http.Request) {
	actor, companyID, req, ok := s.companyPermissionScope(w, r)
	if !ok {
		return
	}
	if err := s.company.Handler.GrantCompanyPermissionHandler(r.Context(), actor, companyID, req); err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeCompanyPermission(w http.ResponseWriter, r *http.Request) {
	actor, companyID, req, ok := s.companyPermissionScope(w, r)
	if !ok {
		return
	}
	if err := s.company.Handler.RevokeCompanyPermissionHandler(r.Context(), actor, companyID, req); err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCompanyPermissions(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "company_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_company_id", "company_id must be a positive integer")
		return
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.company.Handler.ListCompanyPermissionsHandler(r.Context(), userID, companyID)
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasCompanyPermission(w http.ResponseWriter, r *http.Request) {
	companyID, ok := pathID(r, "company_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_company_id", "company_id must be a positive integer")
		return
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.company.Handler.HasCompanyPermissionHandler(r.Context(), userID, companyID, r.PathValue("permission"))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCompaniesWithPermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.company.Handler.ListCompaniesWithPermissionHandler(r.Context(), actor, r.PathValue("permission"))
	if err != nil {
		writeCompanyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) companyRequestScope(w http.ResponseWriter, r *http.Request) (actor int64, requestID int64, ok bool) {
	actor, ok = actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return 0, 0, false
	}
	requestID, ok = pathID(r, "request_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_request_id", "request_id must be a positive integer")
		return 0, 0, false
	}
	return actor, requestID, true
}

func (s *Server) companyPermissionScope(w http.ResponseWriter, r *http.Request) (actor int64, companyID int64, req companyhttp.CompanyPermissionRequest, ok bool) {
	actor, ok = actorID(r)
	if !ok {
		writeCompanyError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return 0, 0, req, false
	}
	companyID, ok = pathID(r, "company_id")
	if !ok {
		writeCompanyError(w, http.StatusBadRequest, "invalid_company_id", "company_id must be a positive integer")
		return 0, 0, req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCompanyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return 0, 0, req, false
	}
	return actor, companyID, req, true
}

func writeCompanyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, companyerrors.ErrCompanyNotFound),
		errors.Is(err, companyerrors.ErrRequestNotFound):
		writeCompanyError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, companyerrors.ErrNotRequestOwner),
		errors.Is(err, companyerrors.ErrNoPermissionToAdjudicate),
		errors.Is(err, companyerrors.ErrNoRightToGrantCompanyPerm),
		errors.Is(err, companyerrors.ErrNoRightToRevokeCompanyPerm):
		writeCompanyError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, companyerrors.ErrDuplicateRequest),
		errors.Is(err, companyerrors.ErrRequestAlreadyCancelled),
		errors.Is(err, companyerrors.ErrRequestAlreadyProceeded),
		errors.Is(err, companyerrors.ErrRequestAlreadyAccepted),
		errors.Is(err, companyerrors.ErrRequestAlreadyDenied),
		errors.Is(err, companyerrors.ErrCannotAcceptCancelled),
		errors.Is(err, companyerrors.ErrCannotDenyAccepted),
		errors.Is(err, companyerrors.ErrCannotDenyCancelled):
		writeCompanyError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, companyerrors.ErrCompanyNameEmpty),
		errors.Is(err, companyerrors.ErrInvalidPermission):
		writeCompanyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCompanyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCompanyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, companyhttp.ErrorResponse{Code: code, Message: message})
}
