package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	identityerrors "openings/contexts/identity-access/identity-service/domain/errors"
	identityhttp "openings/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) registerIdentityRoutes() {
	s.mux.HandleFunc("POST /api/identity/v1/users", s.handleRegisterUser)
	s.mux.HandleFunc("GET /api/identity/v1/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/identity/v1/users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("GET /api/identity/v1/users/by-username/{username}", s.handleGetUserByUsername)
	s.mux.HandleFunc("PUT /api/identity/v1/users/{user_id}/profile", s.handleUpdateProfile)
	s.mux.HandleFunc("PUT /api/identity/v1/users/{user_id}/password", s.handleUpdatePassword)
	s.mux.HandleFunc("POST /api/identity/v1/users/{user_id}/password/verify", s.handleVerifyPassword)
	s.mux.HandleFunc("DELETE /api/identity/v1/users/{user_id}", s.handleDeleteUser)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.identity.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}
	resp, err := s.identity.Handler.GetUserHandler(r.Context(), userID)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeIdentityError(w, http.StatusBadRequest, "invalid_username", "username must not be empty")
		return
	}
	resp, err := s.identity.Handler.GetUserByUsernameHandler(r.Context(), username)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSelf(w, r)
	if !ok {
		return
	}
	var req identityhttp.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.identity.Handler.UpdateProfileHandler(r.Context(), userID, req); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSelf(w, r)
	if !ok {
		return
	}
	var req identityhttp.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.identity.Handler.UpdatePasswordHandler(r.Context(), userID, req); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSelf(w, r)
	if !ok {
		return
	}
	var req identityhttp.VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.VerifyPasswordHandler(r.Context(), userID, req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireSelf(w, r)
	if !ok {
		return
	}
	var req identityhttp.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.identity.Handler.DeleteUserHandler(r.Context(), userID, req); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireSelf allows account-mutating routes only for the account owner.
func (s *Server) requireSelf(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return 0, false
	}
	actor, ok := actorID(r)
	if !ok {
		writeIdentityError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return 0, false
	}
	if actor != userID {
		writeIdentityError(w, http.StatusForbidden, "forbidden", "you can only manage your own account")
		return 0, false
	}
	return userID, true
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identityerrors.ErrUsernameTaken):
		writeIdentityError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, identityerrors.ErrUsernameEmpty),
		errors.Is(err, identityerrors.ErrUsernameTooLong),
		errors.Is(err, identityerrors.ErrNameTooLong):
		writeIdentityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, identityerrors.ErrIncorrectPassword):
		writeIdentityError(w, http.StatusForbidden, "incorrect_password", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{Code: code, Message: message})
}
