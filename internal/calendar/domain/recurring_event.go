package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyName              = sharedDomain.InvalidInputf("recurring event name cannot be empty")
	ErrRecurringEventNotFound = errors.New("recurring event not found")
)

// Pattern says how often an event repeats.
type Pattern string

const (
	PatternDaily  Pattern = "daily"
	PatternWeekly Pattern = "weekly"
)

// ParsePattern parses "daily" or "weekly".
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case PatternDaily, PatternWeekly:
		return p, nil
	}
	return "", sharedDomain.InvalidInputf("unknown recurrence pattern %q", s)
}

// Category classifies a commitment.
type Category string

const (
	CategoryClass    Category = "class"
	CategoryWork     Category = "work"
	CategoryActivity Category = "activity"
	CategoryOther    Category = "other"
)

// ParseCategory parses a category; empty means other.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryOther, nil
	case CategoryClass, CategoryWork, CategoryActivity, CategoryOther:
		return c, nil
	}
	return "", sharedDomain.InvalidInputf("unknown event category %q", s)
}

// Weekdays is a set of days, Sunday = 0.
type Weekdays []time.Weekday

// NewWeekdays validates, sorts and deduplicates day numbers.
func NewWeekdays(days []int) (Weekdays, error) {
	seen := make(map[int]bool, len(days))
	out := make(Weekdays, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, sharedDomain.InvalidInputf("weekday %d out of range 0-6", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, time.Weekday(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Ints returns the days as plain numbers.
func (w Weekdays) Ints() []int {
	out := make([]int, len(w))
	for i, d := range w {
		out[i] = int(d)
	}
	return out
}

// RecurringEvent is a fixed commitment such as a class or a shift.
type RecurringEvent struct {
	sharedDomain.BaseAggregateRoot
	name        string
	description string
	category    Category
	start       schedulingDomain.Clock
	end         schedulingDomain.Clock
	pattern     Pattern
	weekdays    Weekdays
	validFrom   *time.Time
	validUntil  *time.Time
}

// Details holds the editable fields of a recurring event.
type Details struct {
	Name        string
	Description string
	Category    Category
	Start       schedulingDomain.Clock
	End         schedulingDomain.Clock
	Pattern     Pattern
	Weekdays    Weekdays
	ValidFrom   *time.Time
	ValidUntil  *time.Time
}

func (d Details) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Pattern != PatternDaily && d.Pattern != PatternWeekly {
		return sharedDomain.InvalidInputf("unknown recurrence pattern %q", d.Pattern)
	}
	if d.ValidFrom != nil && d.ValidUntil != nil && d.ValidUntil.Before(*d.ValidFrom) {
		return sharedDomain.InvalidInputf("end date precedes start date")
	}
	return nil
}

// NewRecurringEvent validates and creates an event.
func NewRecurringEvent(d Details) (*RecurringEvent, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	e := &RecurringEvent{BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot()}
	e.assign(d)
	e.AddDomainEvent(NewRecurringEventSaved(e))
	return e, nil
}

// RehydrateRecurringEvent rebuilds a stored event.
func RehydrateRecurringEvent(id uuid.UUID, createdAt, updatedAt time.Time, d Details) *RecurringEvent {
	e := &RecurringEvent{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
	}
	e.assign(d)
	return e
}

// Update replaces every editable field.
func (e *RecurringEvent) Update(d Details) error {
	if err := d.validate(); err != nil {
		return err
	}
	e.assign(d)
	e.Touch()
	e.AddDomainEvent(NewRecurringEventSaved(e))
	return nil
}

// MarkDeleted records the removal.
func (e *RecurringEvent) MarkDeleted() {
	e.AddDomainEvent(NewRecurringEventDeleted(e.ID()))
}

func (e *RecurringEvent) assign(d Details) {
	e.name = strings.TrimSpace(d.Name)
	e.description = strings.TrimSpace(d.Description)
	e.category = d.Category
	if e.category == "" {
		e.category = CategoryOther
	}
	e.start = d.Start
	e.end = d.End
	e.pattern = d.Pattern
	e.weekdays = d.Weekdays
	e.validFrom = d.ValidFrom
	e.validUntil = d.ValidUntil
}

func (e *RecurringEvent) Name() string                  { return e.name }
func (e *RecurringEvent) Description() string           { return e.description }
func (e *RecurringEvent) Category() Category            { return e.category }
func (e *RecurringEvent) Start() schedulingDomain.Clock { return e.start }
func (e *RecurringEvent) End() schedulingDomain.Clock   { return e.end }
func (e *RecurringEvent) Pattern() Pattern              { return e.pattern }
func (e *RecurringEvent) Weekdays() Weekdays            { return e.weekdays }
func (e *RecurringEvent) ValidFrom() *time.Time         { return e.validFrom }
func (e *RecurringEvent) ValidUntil() *time.Time        { return e.validUntil }

// Details returns the editable fields.
func (e *RecurringEvent) Details() Details {
	return Details{
		Name:        e.name,
		Description: e.description,
		Category:    e.category,
		Start:       e.start,
		End:         e.end,
		Pattern:     e.pattern,
		Weekdays:    e.weekdays,
		ValidFrom:   e.validFrom,
		ValidUntil:  e.validUntil,
	}
}

// AppliesOn reports whether the event occurs on the weekday. Daily events
// always apply; weekly events apply on their listed days. The validity
// dates are not consulted.
func (e *RecurringEvent) AppliesOn(day time.Weekday) bool {
	switch e.pattern {
	case PatternDaily:
		return true
	case PatternWeekly:
		return e.weekdays.Contains(day)
	}
	return false
}

// Blocks reports whether the event occupies the given hour, using the
// half-open hour range [start, end).
func (e *RecurringEvent) Blocks(hour int) bool {
	return schedulingDomain.HourRange{Start: e.start.Hour, End: e.end.Hour}.Contains(hour)
}
