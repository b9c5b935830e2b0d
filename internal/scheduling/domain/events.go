package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateTypeAssignment = "ScheduledAssignment"
	AggregateTypeSleep      = "SleepSchedule"

	RoutingKeyAssignmentPinned   = "schedule.pinned"
	RoutingKeyAssignmentUnpinned = "schedule.unpinned"
	RoutingKeySleepSaved         = "sleep.saved"
)

// SleepScheduleID is the fixed identity of the singleton sleep preference.
var SleepScheduleID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// AssignmentPinned is emitted when a manual assignment replaces earlier ones.
type AssignmentPinned struct {
	sharedDomain.BaseEvent
	TaskID   uuid.UUID `json:"task_id"`
	Date     string    `json:"date"`
	Start    string    `json:"start_time"`
	End      string    `json:"end_time"`
	Replaced int       `json:"replaced"`
}

func NewAssignmentPinned(a Assignment, replaced int) *AssignmentPinned {
	return &AssignmentPinned{
		BaseEvent: sharedDomain.NewBaseEvent(a.ID, AggregateTypeAssignment, RoutingKeyAssignmentPinned),
		TaskID:    a.TaskID,
		Date:      a.Date.Format(DateLayout),
		Start:     a.Start.String(),
		End:       a.End.String(),
		Replaced:  replaced,
	}
}

// AssignmentUnpinned is emitted when a manual assignment is removed.
type AssignmentUnpinned struct {
	sharedDomain.BaseEvent
}

func NewAssignmentUnpinned(id uuid.UUID) *AssignmentUnpinned {
	return &AssignmentUnpinned{BaseEvent: sharedDomain.NewBaseEvent(id, AggregateTypeAssignment, RoutingKeyAssignmentUnpinned)}
}

// SleepSaved is emitted when the sleep preference is overwritten.
type SleepSaved struct {
	sharedDomain.BaseEvent
	Bedtime  string    `json:"bedtime"`
	WakeTime string    `json:"wake_time"`
	SavedAt  time.Time `json:"saved_at"`
}

func NewSleepSaved(s SleepSchedule) *SleepSaved {
	return &SleepSaved{
		BaseEvent: sharedDomain.NewBaseEvent(SleepScheduleID, AggregateTypeSleep, RoutingKeySleepSaved),
		Bedtime:   s.Bedtime.String(),
		WakeTime:  s.WakeTime.String(),
		SavedAt:   time.Now().UTC(),
	}
}
