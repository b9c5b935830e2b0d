package queries

import (
	"time"

	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Category       string       `json:"category"`
	Priority       string       `json:"priority"`
	Status         string       `json:"status"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	EnergyLevel    string       `json:"energy_level,omitempty"`
	CompletedHours float64      `json:"completed_hours"`
	Overdue        bool         `json:"overdue"`
	CreatedAt      time.Time    `json:"created_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	Subtasks       []SubtaskDTO `json:"subtasks"`
}

// SubtaskDTO is a data transfer object for subtasks.
type SubtaskDTO struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
	Order  int       `json:"order_index"`
}

func toTaskDTO(t *task.Task, today time.Time) TaskDTO {
	dto := TaskDTO{
		ID:             t.ID(),
		Title:          t.Title(),
		Description:    t.Description(),
		Category:       t.Category().String(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		DueDate:        t.DueDate(),
		CompletedHours: t.CompletedHours(),
		Overdue:        t.IsOverdue(today),
		CreatedAt:      t.CreatedAt(),
		CompletedAt:    t.CompletedAt(),
		Subtasks:       make([]SubtaskDTO, 0, len(t.Subtasks())),
	}
	if h := t.EstimatedHours(); h != nil {
		v := h.Float()
		dto.EstimatedHours = &v
	}
	if e := t.EnergyPreference(); e != nil {
		dto.EnergyLevel = e.String()
	}
	for _, s := range t.Subtasks() {
		dto.Subtasks = append(dto.Subtasks, SubtaskDTO{
			ID:     s.ID(),
			Title:  s.Title(),
			Status: s.Status().String(),
			Order:  s.OrderIndex(),
		})
	}
	return dto
}
