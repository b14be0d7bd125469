package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	openingerrors "openings/contexts/recruiting/opening-service/domain/errors"
	openinghttp "openings/contexts/recruiting/opening-service/transport/http"
)

func (s *Server) registerOpeningRoutes() {
	s.mux.HandleFunc("POST /api/openings/v1/openings", s.handleCreateOpening)
	s.mux.HandleFunc("GET /api/openings/v1/openings", s.handleListOpenings)
	s.mux.HandleFunc("GET /api/openings/v1/openings/{opening_id}", s.handleGetOpening)
	s.mux.HandleFunc("PUT /api/openings/v1/openings/{opening_id}", s.handleUpdateOpening)
	s.mux.HandleFunc("POST /api/openings/v1/openings/{opening_id}/close", s.handleCloseOpening)
}

func (s *Server) handleCreateOpening(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeOpeningError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req openinghttp.CreateOpeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpeningError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.opening.Handler.CreateOpeningHandler(r.Context(), actor, req)
	if err != nil {
		writeOpeningDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListOpenings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listQuery := openinghttp.ListOpeningsQuery{Status: query.Get("status")}

	if raw := query.Get("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeOpeningError(w, http.StatusBadRequest, "invalid_company_id", "company_id must be an integer")
			return
		}
		listQuery.CompanyID = id
	}
	if raw := query.Get("creator_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeOpeningError(w, http.StatusBadRequest, "invalid_creator_id", "creator_id must be an integer")
			return
		}
		listQuery.CreatorID = id
	}

	resp, err := s.opening.Handler.ListOpeningsHandler(r.Context(), listQuery)
	if err != nil {
		writeOpeningDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOpening(w http.ResponseWriter, r *http.Request) {
	openingID, ok := pathID(r, "opening_id")
	if !ok {
		writeOpeningError(w, http.StatusBadRequest, "invalid_opening_id", "opening_id must be a positive integer")
		return
	}
	resp, err := s.opening.Handler.GetOpeningHandler(r.Context(), openingID)
	if err != nil {
		writeOpeningDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateOpening(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeOpeningError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	openingID, ok := pathID(r, "opening_id")
	if !ok {
		writeOpeningError(w, http.StatusBadRequest, "invalid_opening_id", "opening_id must be a positive integer")
		return
	}
	var req openinghttp.UpdateOpeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpeningError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.opening.Handler.UpdateOpeningHandler(r.Context(), actor, openingID, req); err != nil {
		writeOpeningDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseOpening(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeOpeningError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	openingID, ok := pathID(r, "opening_id")
	if !ok {
		writeOpeningError(w, http.StatusBadRequest, "invalid_opening_id", "opening_id must be a positive integer")
		return
	}
	if err := s.opening.Handler.CloseOpeningHandler(r.Context(), actor, openingID); err != nil {
		writeOpeningDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeOpeningDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, openingerrors.ErrOpeningNotFound):
		writeOpeningError(w, http.StatusNotFound, "opening_not_found", err.Error())
	case errors.Is(err, openingerrors.ErrNoRightToWorkWithOpenings):
		writeOpeningError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, openingerrors.ErrOpeningClosed):
		writeOpeningError(w, http.StatusConflict, "opening_closed", err.Error())
	case errors.Is(err, openingerrors.ErrTitleEmpty):
		writeOpeningError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeOpeningError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeOpeningError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, openinghttp.ErrorResponse{Code: code, Message: message})
}
