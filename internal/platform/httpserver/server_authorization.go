package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzerrors "openings/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "openings/contexts/identity-access/authorization-service/transport/http"
)

func (s *Server) registerAuthorizationRoutes() {
	s.mux.HandleFunc("GET /api/authz/v1/admins/{user_id}", s.handleHasAdminGrant)
	s.mux.HandleFunc("POST /api/authz/v1/admins/grant", s.handleGrantAdmin)
	s.mux.HandleFunc("POST /api/authz/v1/admins/revoke", s.handleRevokeAdmin)
	s.mux.HandleFunc("GET /api/authz/v1/users/{user_id}/permissions", s.handleListUserPermissions)
	s.mux.HandleFunc("GET /api/authz/v1/users/{user_id}/permissions/{permission}", s.handleHasUserPermission)
	s.mux.HandleFunc("POST /api/authz/v1/permissions/grant", s.handleGrantUserPermission)
	s.mux.HandleFunc("POST /api/authz/v1/permissions/revoke", s.handleRevokeUserPermission)
}

func (s *Server) handleHasAdminGrant(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeAuthzError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.authorization.Handler.HasAdminGrantHandler(r.Context(), userID)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeAuthzError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req authzhttp.AdminGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.authorization.Handler.GrantAdminHandler(r.Context(), actor, req); err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeAuthzError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req authzhttp.AdminGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.authorization.Handler.RevokeAdminHandler(r.Context(), actor, req); err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeAuthzError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.authorization.Handler.ListUserPermissionsHandler(r.Context(), userID)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasUserPermission(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeAuthzError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.authorization.Handler.HasUserPermissionHandler(r.Context(), userID, r.PathValue("permission"))
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantUserPermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeAuthzError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req authzhttp.UserPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.authorization.Handler.GrantUserPermissionHandler(r.Context(), actor, req); err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeUserPermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeAuthzError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req authzhttp.UserPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.authorization.Handler.RevokeUserPermissionHandler(r.Context(), actor, req); err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrInvalidPermission):
		writeAuthzError(w, http.StatusBadRequest, "invalid_permission", err.Error())
	case errors.Is(err, authzerrors.ErrNoRightToGrantAdmin),
		errors.Is(err, authzerrors.ErrNoRightToRevokeAdmin),
		errors.Is(err, authzerrors.ErrNoRightToGrantUserPerm),
		errors.Is(err, authzerrors.ErrNoRightToRevokeUserPerm):
		writeAuthzError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeAuthzError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{Code: code, Message: message})
}
