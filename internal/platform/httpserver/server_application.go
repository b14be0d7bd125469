package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "openings/contexts/recruiting/application-service/domain/errors"
	apphttp "openings/contexts/recruiting/application-service/transport/http"
)

func (s *Server) registerApplicationRoutes() {
	s.mux.HandleFunc("POST /api/applications/v1/resumes", s.handleStoreResume)
	s.mux.HandleFunc("GET /api/applications/v1/resumes", s.handleListMyResumes)
	s.mux.HandleFunc("GET /api/applications/v1/resumes/{resume_id}", s.handleGetResume)

	s.mux.HandleFunc("POST /api/applications/v1/applications", s.handlePostApplication)
	s.mux.HandleFunc("GET /api/applications/v1/applications/my", s.handleListMyApplications)
	s.mux.HandleFunc("GET /api/applications/v1/applications/managed", s.handleListManagedApplications)
	s.mux.HandleFunc("GET /api/applications/v1/applications/{application_id}", s.handleGetApplication)
	s.mux.HandleFunc("POST /api/applications/v1/applications/{application_id}/cancel", s.handleCancelApplication)
	s.mux.HandleFunc("POST /api/applications/v1/applications/{application_id}/accept", s.handleAcceptApplication)
	s.mux.HandleFunc("POST /api/applications/v1/applications/{application_id}/deny", s.handleDenyApplication)
}

func (s *Server) handleStoreResume(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req apphttp.StoreResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeApplicationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.application.Handler.StoreResumeHandler(r.Context(), actor, req)
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMyResumes(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.application.Handler.ListMyResumesHandler(r.Context(), actor)
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resumeID, ok := pathID(r, "resume_id")
	if !ok {
		writeApplicationError(w, http.StatusBadRequest, "invalid_resume_id", "resume_id must be a positive integer")
		return
	}
	resp, err := s.application.Handler.GetResumeHandler(r.Context(), actor, resumeID)
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePostApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req apphttp.PostApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeApplicationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.application.Handler.PostApplicationHandler(r.Context(), actor, req)
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.application.Handler.ListMyApplicationsHandler(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListManagedApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.application.Handler.ListApplicationsForMyOpeningsHandler(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	actor, applicationID, ok := s.applicationScope(w, r)
	if !ok {
		return
	}
	resp, err := s.application.Handler.GetApplicationHandler(r.Context(), actor, applicationID)
	if err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelApplication(w http.ResponseWriter, r *http.Request) {
	actor, applicationID, ok := s.applicationScope(w, r)
	if !ok {
		return
	}
	if err := s.application.Handler.CancelApplicationHandler(r.Context(), actor, applicationID); err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAcceptApplication(w http.ResponseWriter, r *http.Request) {
	actor, applicationID, ok := s.applicationScope(w, r)
	if !ok {
		return
	}
	if err := s.application.Handler.AcceptApplicationHandler(r.Context(), actor, applicationID); err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDenyApplication(w http.ResponseWriter, r *http.Request) {
	actor, applicationID, ok := s.applicationScope(w, r)
	if !ok {
		return
	}
	if err := s.application.Handler.DenyApplicationHandler(r.Context(), actor, applicationID); err != nil {
		writeApplicationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) applicationScope(w http.ResponseWriter, r *http.Request) (actor int64, applicationID int64, ok bool) {
	actor, ok = actorID(r)
	if !ok {
		writeApplicationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return 0, 0, false
	}
	applicationID, ok = pathID(r, "application_id")
	if !ok {
		writeApplicationError(w, http.StatusBadRequest, "invalid_application_id", "application_id must be a positive integer")
		return 0, 0, false
	}
	return actor, applicationID, true
}

func writeApplicationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResumeNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrOpeningNotFound):
		writeApplicationError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, apperrors.ErrNotResumeOwner),
		errors.Is(err, apperrors.ErrNotApplicationOwner),
		errors.Is(err, apperrors.ErrCannotManageApplication),
		errors.Is(err, apperrors.ErrCannotViewApplication):
		writeApplicationError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, apperrors.ErrAlreadyCancelled),
		errors.Is(err, apperrors.ErrAlreadyProceeded),
		errors.Is(err, apperrors.ErrAlreadyAccepted),
		errors.Is(err, apperrors.ErrAlreadyDenied),
		errors.Is(err, apperrors.ErrCannotAcceptCancelled),
		errors.Is(err, apperrors.ErrCannotDenyCancelled),
		errors.Is(err, apperrors.ErrCannotDenyAccepted),
		errors.Is(err, apperrors.ErrOpeningClosed):
		writeApplicationError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, apperrors.ErrResumeFilenameEmpty):
		writeApplicationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeApplicationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeApplicationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, apphttp.ErrorResponse{Code: code, Message: message})
}
