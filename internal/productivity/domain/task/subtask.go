package task

import (
	"strings"

	"github.com/google/uuid"
)

// Subtask is a step of a task. It lives and dies with its parent.
type Subtask struct {
	id         uuid.UUID
	taskID     uuid.UUID
	title      string
	status     Status
	orderIndex int
}

// RehydrateSubtask rebuilds a stored subtask.
func RehydrateSubtask(id, taskID uuid.UUID, title string, status Status, orderIndex int) Subtask {
	return Subtask{id: id, taskID: taskID, title: title, status: status, orderIndex: orderIndex}
}

func (s Subtask) ID() uuid.UUID     { return s.id }
func (s Subtask) TaskID() uuid.UUID { return s.taskID }
func (s Subtask) Title() string     { return s.title }
func (s Subtask) Status() Status    { return s.status }
func (s Subtask) OrderIndex() int   { return s.orderIndex }

// AddSubtask appends a step at the end of the list.
func (t *Task) AddSubtask(title string) (Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Subtask{}, ErrEmptyTitle
	}
	s := Subtask{
		id:         uuid.New(),
		taskID:     t.ID(),
		title:      title,
		status:     StatusPending,
		orderIndex: len(t.subtasks),
	}
	t.subtasks = append(t.subtasks, s)
	t.Touch()
	return s, nil
}

// SetSubtaskStatus changes one step's status.
func (t *Task) SetSubtaskStatus(subtaskID uuid.UUID, status Status) error {
	for i := range t.subtasks {
		if t.subtasks[i].id == subtaskID {
			t.subtasks[i].status = status
			t.Touch()
			t.AddDomainEvent(NewTaskUpdated(t.ID(), []string{"subtasks"}))
			return nil
		}
	}
	return ErrSubtaskNotFound
}
