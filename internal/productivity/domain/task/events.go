package task

import (
	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated = "task.created"
	RoutingKeyUpdated = "task.updated"
	RoutingKeyDeleted = "task.deleted"
)

// TaskCreated is emitted when a task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Subtasks int    `json:"subtasks"`
}

func NewTaskCreated(taskID uuid.UUID, title, priority string, subtasks int) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
		Priority:  priority,
		Subtasks:  subtasks,
	}
}

// TaskUpdated lists the fields that changed.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"`
}

func NewTaskUpdated(taskID uuid.UUID, fields []string) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskDeleted is emitted when a task and its subtasks are removed.
type TaskDeleted struct {
	domain.BaseEvent
}

func NewTaskDeleted(taskID uuid.UUID) *TaskDeleted {
	return &TaskDeleted{BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted)}
}
