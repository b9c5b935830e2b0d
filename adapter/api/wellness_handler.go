package api

import (
	"net/http"
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/commands"
	"github.com/felixgeelhaar/tempo/internal/wellness/application/queries"
	"github.com/google/uuid"
)

// getEnergyPatterns handles GET /api/energy-patterns[?day_of_week=N]
func (s *Server) getEnergyPatterns(w http.ResponseWriter, r *http.Request) {
	var query queries.GetEnergyHistogramQuery
	if raw := r.URL.Query().Get("day_of_week"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "day_of_week must be 0-6")
			return
		}
		query.Weekday = &day
	}

	dto, err := s.app.GetEnergyHistogramHandler.Handle(r.Context(), query)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// recordEnergy handles POST /api/energy-patterns
func (s *Server) recordEnergy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weekday     int    `json:"day_of_week"`
		Hour        int    `json:"hour"`
		EnergyLevel string `json:"energy_level"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.RecordEnergyHandler.Handle(r.Context(), commands.RecordEnergyCommand{
		Weekday: req.Weekday,
		Hour:    req.Hour,
		Level:   req.EnergyLevel,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      result.ObservationID,
		"message": "Energy pattern recorded",
	})
}

// recordStudySession handles POST /api/study-sessions
func (s *Server) recordStudySession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID             *uuid.UUID `json:"task_id"`
		StartTime          string     `json:"start_time"`
		EndTime            string     `json:"end_time"`
		EnergyLevel        string     `json:"energy_level"`
		ProductivityRating int        `json:"productivity_rating"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := parseTimestamp(req.StartTime, s.app.Location)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	end, err := parseTimestamp(req.EndTime, s.app.Location)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.app.RecordStudySessionHandler.Handle(r.Context(), commands.RecordStudySessionCommand{
		TaskID:             req.TaskID,
		Start:              start,
		End:                end,
		EnergyLevel:        req.EnergyLevel,
		ProductivityRating: req.ProductivityRating,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":               result.SessionID,
		"duration_minutes": result.DurationMinutes,
		"message":          "Study session recorded",
	})
}

// parseTimestamp accepts RFC 3339 or a local "YYYY-MM-DDTHH:MM" wall clock.
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, sharedDomain.InvalidInputf("timestamp %q is not RFC 3339", raw)
}

// getRecommendations handles GET /api/recommendations
func (s *Server) getRecommendations(w http.ResponseWriter, r *http.Request) {
	dto, err := s.app.GetRecommendationsHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}
