package queries

import (
	"context"
	"math"
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
)

// StatsDTO summarises progress across all tasks.
type StatsDTO struct {
	TotalTasks      int     `json:"total_tasks"`
	PendingTasks    int     `json:"pending_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	TotalStudyHours float64 `json:"total_study_hours"`
}

// GetStatsHandler computes StatsDTO.
type GetStatsHandler struct {
	taskRepo    task.Repository
	sessionRepo wellness.StudySessionRepository
	now         func() time.Time
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(taskRepo task.Repository, sessionRepo wellness.StudySessionRepository) *GetStatsHandler {
	return &GetStatsHandler{taskRepo: taskRepo, sessionRepo: sessionRepo, now: time.Now}
}

// Handle returns the current statistics. Study hours are rounded to one
// decimal place.
func (h *GetStatsHandler) Handle(ctx context.Context) (*StatsDTO, error) {
	tasks, err := h.taskRepo.List(ctx, task.ListFilter{})
	if err != nil {
		return nil, err
	}
	minutes, err := h.sessionRepo.TotalMinutes(ctx)
	if err != nil {
		return nil, err
	}

	today := h.now()
	stats := &StatsDTO{
		TotalTasks:      len(tasks),
		TotalStudyHours: math.Round(float64(minutes)/60*10) / 10,
	}
	for _, t := range tasks {
		switch t.Status() {
		case task.StatusPending:
			stats.PendingTasks++
		case task.StatusInProgress:
			stats.InProgressTasks++
		case task.StatusCompleted:
			stats.CompletedTasks++
		}
		if t.IsOverdue(today) {
			stats.OverdueTasks++
		}
	}
	return stats, nil
}
