package queries

import (
	"context"
	"time"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
)

// GetSleepScheduleHandler returns the stored sleep preference, nil when
// none was saved.
type GetSleepScheduleHandler struct {
	sleepRepo schedulingDomain.SleepRepository
}

// NewGetSleepScheduleHandler creates a new GetSleepScheduleHandler.
func NewGetSleepScheduleHandler(sleepRepo schedulingDomain.SleepRepository) *GetSleepScheduleHandler {
	return &GetSleepScheduleHandler{sleepRepo: sleepRepo}
}

// Handle executes the query.
func (h *GetSleepScheduleHandler) Handle(ctx context.Context) (*SleepDTO, error) {
	s, err := h.sleepRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ToSleepDTO(s), nil
}

// ListPinnedQuery selects the manual assignments of one date.
type ListPinnedQuery struct {
	Date time.Time
}

// ListPinnedHandler handles ListPinnedQuery.
type ListPinnedHandler struct {
	assignmentRepo schedulingDomain.AssignmentRepository
}

// NewListPinnedHandler creates a new ListPinnedHandler.
func NewListPinnedHandler(assignmentRepo schedulingDomain.AssignmentRepository) *ListPinnedHandler {
	return &ListPinnedHandler{assignmentRepo: assignmentRepo}
}

// Handle returns the pins ordered by start time.
func (h *ListPinnedHandler) Handle(ctx context.Context, query ListPinnedQuery) ([]AssignmentDTO, error) {
	pinned, err := h.assignmentRepo.FindByDate(ctx, schedulingDomain.DateOf(query.Date))
	if err != nil {
		return nil, err
	}
	return toAssignmentDTOs(pinned), nil
}
