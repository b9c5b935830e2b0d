package domain

import (
	"testing"
	"time"

	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lecture(t *testing.T, pattern Pattern, days ...int) *RecurringEvent {
	t.Helper()
	weekdays, err := NewWeekdays(days)
	require.NoError(t, err)
	e, err := NewRecurringEvent(Details{
		Name:     "Lecture",
		Category: CategoryClass,
		Start:    schedulingDomain.MustClock("09:00"),
		End:      schedulingDomain.MustClock("12:00"),
		Pattern:  pattern,
		Weekdays: weekdays,
	})
	require.NoError(t, err)
	return e
}

func TestRecurringEvent_AppliesOn(t *testing.T) {
	daily := lecture(t, PatternDaily)
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, daily.AppliesOn(d))
	}

	weekly := lecture(t, PatternWeekly, 1, 3)
	assert.True(t, weekly.AppliesOn(time.Monday))
	assert.True(t, weekly.AppliesOn(time.Wednesday))
	assert.False(t, weekly.AppliesOn(time.Tuesday))

	noDays := lecture(t, PatternWeekly)
	assert.False(t, noDays.AppliesOn(time.Monday))
}

func TestRecurringEvent_Blocks(t *testing.T) {
	e := lecture(t, PatternDaily)
	assert.False(t, e.Blocks(8))
	assert.True(t, e.Blocks(9))
	assert.True(t, e.Blocks(11))
	assert.False(t, e.Blocks(12))
}

func TestNewRecurringEvent_Validation(t *testing.T) {
	_, err := NewRecurringEvent(Details{Name: " ", Pattern: PatternDaily})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)

	_, err = NewRecurringEvent(Details{Name: "Gym", Pattern: "monthly"})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, -1)
	_, err = NewRecurringEvent(Details{Name: "Gym", Pattern: PatternDaily, ValidFrom: &from, ValidUntil: &until})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)

	e, err := NewRecurringEvent(Details{Name: "Gym", Pattern: PatternDaily})
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, e.Category())
	require.Len(t, e.DomainEvents(), 1)
	assert.Equal(t, RoutingKeyEventSaved, e.DomainEvents()[0].RoutingKey())
}

func TestNewWeekdays(t *testing.T) {
	w, err := NewWeekdays([]int{5, 1, 5, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 5}, w.Ints())

	_, err = NewWeekdays([]int{7})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
}

func TestParsePatternAndCategory(t *testing.T) {
	p, err := ParsePattern("Weekly")
	require.NoError(t, err)
	assert.Equal(t, PatternWeekly, p)

	c, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, c)

	_, err = ParseCategory("party")
	assert.Error(t, err)
}
