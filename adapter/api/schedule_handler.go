package api

import (
	"net/http"

	"github.com/felixgeelhaar/tempo/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/tempo/internal/scheduling/application/queries"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/google/uuid"
)

// getSleepSchedule handles GET /api/sleep-schedule
func (s *Server) getSleepSchedule(w http.ResponseWriter, r *http.Request) {
	sleep, err := s.app.GetSleepScheduleHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if sleep == nil {
		writeError(w, http.StatusNotFound, "no sleep schedule saved")
		return
	}
	writeJSON(w, http.StatusOK, sleep)
}

// saveSleepSchedule handles PUT /api/sleep-schedule. The stored schedule is
// replaced wholesale.
func (s *Server) saveSleepSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bedtime      string  `json:"bedtime"`
		WakeTime     string  `json:"wake_time"`
		DesiredHours float64 `json:"desired_hours"`
		Optimize     bool    `json:"optimize"`
		Flexible     bool    `json:"flexible"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sleep, err := s.app.SaveSleepScheduleHandler.Handle(r.Context(), commands.SaveSleepScheduleCommand{
		Bedtime:      req.Bedtime,
		WakeTime:     req.WakeTime,
		DesiredHours: req.DesiredHours,
		Optimize:     req.Optimize,
		Flexible:     req.Flexible,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, queries.ToSleepDTO(sleep))
}

// generateSchedule handles GET /api/schedule/generate?date=YYYY-MM-DD
func (s *Server) generateSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	dto, err := s.app.GenerateScheduleHandler.Handle(r.Context(), queries.GenerateScheduleQuery{Date: date})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// exportSchedule handles GET /api/schedule/export?date=YYYY-MM-DD
func (s *Server) exportSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	data, err := s.app.ExportScheduleHandler.Handle(r.Context(), queries.ExportScheduleQuery{Date: date})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule-`+date.Format(schedulingDomain.DateLayout)+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// listPinned handles GET /api/schedule?date=YYYY-MM-DD
func (s *Server) listPinned(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	pinned, err := s.app.ListPinnedHandler.Handle(r.Context(), queries.ListPinnedQuery{Date: date})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pinned)
}

// pinAssignment handles POST /api/schedule
func (s *Server) pinAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID      uuid.UUID `json:"task_id"`
		Date        string    `json:"scheduled_date"`
		StartTime   string    `json:"start_time"`
		EndTime     string    `json:"end_time"`
		EnergyLevel string    `json:"energy_level"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := schedulingDomain.ParseDate(req.Date)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.app.PinAssignmentHandler.Handle(r.Context(), commands.PinAssignmentCommand{
		TaskID:      req.TaskID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		EnergyLevel: req.EnergyLevel,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusCreated, map[string]any{
		"assignment": queries.ToAssignmentDTO(result.Assignment),
		"replaced":   result.Replaced,
	})
}

// unpinAssignment handles DELETE /api/schedule/{id}
func (s *Server) unpinAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.app.UnpinAssignmentHandler.Handle(r.Context(), commands.UnpinAssignmentCommand{AssignmentID: id}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Scheduled task removed"})
}
