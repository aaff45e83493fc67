package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/TiberiuRabi/LLM-Library/internal/service"
)

type recommendRequest struct {
	Query string `json:"query" validate:"required"`
	K     int    `json:"k" validate:"omitempty,min=1"`
}

// handleHealth is a side-effect-free liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "query is required and k must be at least 1")
		return
	}

	rec, err := s.svc.Recommend(r.Context(), req.Query, req.K)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// respondError maps classified failures to their distinct statuses and
// collapses everything else to a generic 500. Known errors are surfaced as-is,
// never re-wrapped; unclassified ones are logged with full detail and reach
// the client as text only.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoMatches):
		respondDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoTitle):
		respondDetail(w, http.StatusInternalServerError, err.Error())
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("recommendation failed")
		respondDetail(w, http.StatusInternalServerError, "Eroare internă: "+err.Error())
	}
}
