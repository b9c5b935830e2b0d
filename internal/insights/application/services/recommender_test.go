package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/felixgeelhaar/tempo/internal/insights/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tuesday mid-morning.
var now = time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC)

func newTask(t *testing.T, title string, category task.Category, p value_objects.Priority, due *time.Time, hours float64) *task.Task {
	t.Helper()
	var est *value_objects.Hours
	if hours > 0 {
		h, err := value_objects.NewHours(hours)
		require.NoError(t, err)
		est = &h
	}
	tk, err := task.NewTask(title, category, p, est)
	require.NoError(t, err)
	if due != nil {
		tk.SetDueDate(due)
	}
	return tk
}

func day(d int) *time.Time {
	v := time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func histogram(t *testing.T, cells ...[2]int) *wellness.Histogram {
	t.Helper()
	var obs []wellness.Observation
	for _, c := range cells {
		o, err := wellness.NewObservation(c[0], c[1], wellness.EnergyHigh, now)
		require.NoError(t, err)
		obs = append(obs, o)
	}
	return wellness.NewHistogram(obs)
}

// cells repeats each cell n times.
func cells(n int, cs ...[2]int) [][2]int {
	var out [][2]int
	for _, c := range cs {
		for range n {
			out = append(out, c)
		}
	}
	return out
}

func titles(refs []domain.TaskRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Title)
	}
	return out
}

func TestRecommender_AllAdvisories(t *testing.T) {
	r := NewRecommender(DefaultRecommenderConfig())

	done := newTask(t, "Old quiz", task.CategoryExam, value_objects.PriorityHigh, day(21), 1)
	done.Complete()
	tasks := []*task.Task{
		newTask(t, "Essay", task.CategoryAssignment, value_objects.PriorityHigh, day(22), 2),
		newTask(t, "Reading", task.CategoryAssignment, value_objects.PriorityLow, day(30), 1),
		newTask(t, "Thesis", task.CategoryOther, value_objects.PriorityHigh, nil, 5),
		done,
		newTask(t, "Late lab", task.CategoryActivity, value_objects.PriorityMedium, day(19), 1),
	}

	candidates := r.SelectCandidates(tasks)
	require.Len(t, candidates, 4)
	assert.Equal(t, "Thesis", candidates[0].Title)
	assert.Equal(t, "Late lab", candidates[1].Title)

	advisories := r.Recommend(candidates, histogram(t, [2]int{2, 9}, [2]int{4, 8}, [2]int{2, 15}), now)
	require.Len(t, advisories, 4)

	assert.Equal(t, domain.AdvisoryUrgent, advisories[0].Type)
	assert.Equal(t, []string{"Essay"}, titles(advisories[0].Tasks))
	assert.Contains(t, advisories[0].Suggestion, "3 days")

	assert.Equal(t, domain.AdvisoryOptimalTime, advisories[1].Type)
	require.NotNil(t, advisories[1].Time)
	assert.Equal(t, 2, advisories[1].Time.Weekday)
	assert.Equal(t, 15, advisories[1].Time.Hour)
	assert.Equal(t, "Tuesday at 15:00", advisories[1].Time.Description)
	assert.Equal(t, []string{"Thesis", "Essay"}, titles(advisories[1].RecommendedTasks))

	assert.Equal(t, domain.AdvisoryBreak, advisories[2].Type)
	assert.Equal(t, []string{"Thesis"}, titles(advisories[2].Tasks))

	assert.Equal(t, domain.AdvisoryBalance, advisories[3].Type)
	assert.Equal(t, map[string]int{"assignment": 2, "other": 1, "activity": 1}, advisories[3].Distribution)
}

func TestRecommender_UrgencyWindow(t *testing.T) {
	r := NewRecommender(DefaultRecommenderConfig())
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tests := []struct {
		name   string
		due    *time.Time
		urgent bool
	}{
		{"earlier today", at(-2 * time.Hour), false},
		{"overdue by days", at(-50 * time.Hour), false},
		{"due now", at(0), true},
		{"tomorrow", at(20 * time.Hour), true},
		{"end of window", at(72 * time.Hour), true},
		{"just past window", at(72*time.Hour + time.Nanosecond), false},
		{"same calendar day as window end", at(72*time.Hour + 10*time.Hour), false},
		{"undated", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := r.SelectCandidates([]*task.Task{
				newTask(t, "Task", task.CategoryOther, value_objects.PriorityMedium, tt.due, 1),
			})
			var urgent []string
			for _, a := range r.Recommend(candidates, nil, now) {
				if a.Type == domain.AdvisoryUrgent {
					urgent = titles(a.Tasks)
				}
			}
			if tt.urgent {
				assert.Equal(t, []string{"Task"}, urgent)
			} else {
				assert.Empty(t, urgent)
			}
		})
	}
}

func TestRecommender_BalanceAlwaysPresent(t *testing.T) {
	r := NewRecommender(RecommenderConfig{})

	advisories := r.Recommend(nil, wellness.NewHistogram(nil), now)
	require.Len(t, advisories, 1)
	assert.Equal(t, domain.AdvisoryBalance, advisories[0].Type)
	assert.Empty(t, advisories[0].Distribution)
}

func TestRecommender_OptimalTimeNeedsHighPriorityAndHighEnergy(t *testing.T) {
	r := NewRecommender(DefaultRecommenderConfig())
	low := r.SelectCandidates([]*task.Task{newTask(t, "Reading", task.CategoryAssignment, value_objects.PriorityLow, nil, 1)})
	high := r.SelectCandidates([]*task.Task{newTask(t, "Essay", task.CategoryAssignment, value_objects.PriorityHigh, nil, 1)})

	for name, tc := range map[string]struct {
		candidates []Candidate
		energy     *wellness.Histogram
	}{
		"no high priority": {low, histogram(t, [2]int{3, 9})},
		"no high energy":   {high, wellness.NewHistogram(nil)},
		"no histogram":     {high, nil},
	} {
		t.Run(name, func(t *testing.T) {
			for _, a := range r.Recommend(tc.candidates, tc.energy, now) {
				assert.NotEqual(t, domain.AdvisoryOptimalTime, a.Type)
			}
		})
	}
}

func TestRecommender_CandidateLimit(t *testing.T) {
	r := NewRecommender(DefaultRecommenderConfig())
	var tasks []*task.Task
	for i := 0; i < 12; i++ {
		tasks = append(tasks, newTask(t, fmt.Sprintf("Task %d", i), task.CategoryOther, value_objects.PriorityMedium, day(i+1), 1))
	}
	candidates := r.SelectCandidates(tasks)
	require.Len(t, candidates, 10)
	assert.Equal(t, "Task 0", candidates[0].Title)
	assert.Equal(t, "Task 9", candidates[9].Title)
}

func TestRecommender_SameDueDateOrdersByPriority(t *testing.T) {
	r := NewRecommender(DefaultRecommenderConfig())
	candidates := r.SelectCandidates([]*task.Task{
		newTask(t, "Low", task.CategoryOther, value_objects.PriorityLow, day(25), 1),
		newTask(t, "High", task.CategoryOther, value_objects.PriorityHigh, day(25), 1),
	})
	require.Len(t, candidates, 2)
	assert.Equal(t, "High", candidates[0].Title)
}

func TestNextHighEnergySlot(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
		want  *domain.TimeRef
	}{
		{"later today", [][2]int{{2, 11}}, &domain.TimeRef{Weekday: 2, Hour: 11, Description: "Tuesday at 11:00"}},
		{"current hour is not after now", [][2]int{{2, 10}, {3, 7}}, &domain.TimeRef{Weekday: 3, Hour: 7, Description: "Wednesday at 07:00"}},
		{"wraps the week", [][2]int{{1, 8}}, &domain.TimeRef{Weekday: 1, Hour: 8, Description: "Monday at 08:00"}},
		{"earlier today only", [][2]int{{2, 9}}, nil},
		{
			"rare cell is outranked",
			append(cells(1, [2]int{2, 11}), cells(5, [2]int{3, 9}, [2]int{3, 10}, [2]int{3, 11}, [2]int{3, 12}, [2]int{3, 13})...),
			&domain.TimeRef{Weekday: 3, Hour: 9, Description: "Wednesday at 09:00"},
		},
		{
			"most frequent hour within a day",
			append(cells(1, [2]int{3, 8}), cells(3, [2]int{3, 15})...),
			&domain.TimeRef{Weekday: 3, Hour: 15, Description: "Wednesday at 15:00"},
		},
		{"nothing recorded", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextHighEnergySlot(histogram(t, tt.cells...), now)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, *tt.want, got)
		})
	}
}
