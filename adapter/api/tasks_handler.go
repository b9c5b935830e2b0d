package api

import (
	"net/http"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/application/commands"
	"github.com/felixgeelhaar/tempo/internal/productivity/application/queries"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	// Type is the older name of Category.
	Type           *string  `json:"type"`
	Priority       *string  `json:"priority"`
	Status         *string  `json:"status"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	CompletedHours *float64 `json:"completed_hours"`
	EnergyLevel    *string  `json:"energy_level"`
}

func (r taskRequest) category() *string {
	if r.Category != nil {
		return r.Category
	}
	return r.Type
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := schedulingDomain.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// listTasks handles GET /api/tasks
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.app.ListTasksHandler.Handle(r.Context(), queries.ListTasksQuery{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// getTask handles GET /api/tasks/{id}
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	dto, err := s.app.GetTaskHandler.Handle(r.Context(), queries.GetTaskQuery{TaskID: id})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// createTask handles POST /api/tasks
func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.app.CreateTaskHandler.Handle(r.Context(), commands.CreateTaskCommand{
		Title:          deref(req.Title),
		Description:    deref(req.Description),
		Category:       deref(req.category()),
		Priority:       deref(req.Priority),
		DueDate:        due,
		EstimatedHours: req.EstimatedHours,
		EnergyLevel:    deref(req.EnergyLevel),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)

	dto, err := s.app.GetTaskHandler.Handle(r.Context(), queries.GetTaskQuery{TaskID: result.TaskID})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// updateTask handles PUT /api/tasks/{id}. Absent fields are left unchanged;
// an empty due_date clears it.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cmd := commands.UpdateTaskCommand{
		TaskID:         id,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.category(),
		Priority:       req.Priority,
		Status:         req.Status,
		EstimatedHours: req.EstimatedHours,
		CompletedHours: req.CompletedHours,
		EnergyLevel:    req.EnergyLevel,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		cmd.DueDate = due
		cmd.ClearDueDate = due == nil
	}

	if err := s.app.UpdateTaskHandler.Handle(r.Context(), cmd); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)

	dto, err := s.app.GetTaskHandler.Handle(r.Context(), queries.GetTaskQuery{TaskID: id})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// deleteTask handles DELETE /api/tasks/{id}
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.app.DeleteTaskHandler.Handle(r.Context(), commands.DeleteTaskCommand{TaskID: id}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// updateSubtask handles PUT /api/subtasks/{id}
func (s *Server) updateSubtask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.app.UpdateSubtaskStatusHandler.Handle(r.Context(), commands.UpdateSubtaskStatusCommand{
		SubtaskID: id,
		Status:    req.Status,
	}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.flush(r)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

// getStats handles GET /api/stats
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.GetStatsHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
