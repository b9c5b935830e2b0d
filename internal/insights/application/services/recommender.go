package services

import (
	"sort"
	"time"

	"github.com/felixgeelhaar/tempo/internal/insights/domain"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/value_objects"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"
	"github.com/google/uuid"
)

// Candidate is the read-only view of a task the recommender works on.
type Candidate struct {
	ID             uuid.UUID
	Title          string
	Category       task.Category
	Priority       value_objects.Priority
	DueDate        *time.Time
	EstimatedHours *float64
}

// CandidateFrom copies the fields the recommender reads.
func CandidateFrom(t *task.Task) Candidate {
	c := Candidate{
		ID:       t.ID(),
		Title:    t.Title(),
		Category: t.Category(),
		Priority: t.Priority(),
		DueDate:  t.DueDate(),
	}
	if h := t.EstimatedHours(); h != nil {
		v := h.Float()
		c.EstimatedHours = &v
	}
	return c
}

func (c Candidate) ref() domain.TaskRef {
	return domain.TaskRef{
		ID:             c.ID,
		Title:          c.Title,
		DueDate:        c.DueDate,
		Priority:       c.Priority.String(),
		EstimatedHours: c.EstimatedHours,
	}
}

// RecommenderConfig tunes the recommendation heuristics.
type RecommenderConfig struct {
	// CandidateLimit caps how many open tasks are considered.
	CandidateLimit int
	// UrgencyWindowDays is how many days ahead a due date counts as urgent.
	UrgencyWindowDays int
	// LongTaskHours is the estimate above which a break is suggested.
	LongTaskHours float64
	// OptimalTaskLimit caps the tasks recommended for a high-energy hour.
	OptimalTaskLimit int
}

// DefaultRecommenderConfig returns the standard heuristics.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		CandidateLimit:    10,
		UrgencyWindowDays: 3,
		LongTaskHours:     3,
		OptimalTaskLimit:  3,
	}
}

// Recommender turns open tasks and the energy log into advisories. It is a
// pure function of its inputs.
type Recommender struct {
	config RecommenderConfig
}

// NewRecommender creates a recommender; zero fields take their defaults.
func NewRecommender(config RecommenderConfig) *Recommender {
	def := DefaultRecommenderConfig()
	if config.CandidateLimit <= 0 {
		config.CandidateLimit = def.CandidateLimit
	}
	if config.UrgencyWindowDays <= 0 {
		config.UrgencyWindowDays = def.UrgencyWindowDays
	}
	if config.LongTaskHours <= 0 {
		config.LongTaskHours = def.LongTaskHours
	}
	if config.OptimalTaskLimit <= 0 {
		config.OptimalTaskLimit = def.OptimalTaskLimit
	}
	return &Recommender{config: config}
}

// SelectCandidates drops completed tasks and keeps the first CandidateLimit
// of the rest: undated tasks first, then by due date, then by priority.
func (r *Recommender) SelectCandidates(tasks []*task.Task) []Candidate {
	out := make([]Candidate, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted() {
			out = append(out, CandidateFrom(t))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di == nil && dj != nil:
			return true
		case di != nil && dj == nil:
			return false
		case di != nil && !di.Equal(*dj):
			return di.Before(*dj)
		}
		return out[i].Priority.Weight() > out[j].Priority.Weight()
	})

	if len(out) > r.config.CandidateLimit {
		out = out[:r.config.CandidateLimit]
	}
	return out
}

// Recommend produces advisories in fixed order: urgent, optimal time,
// break, balance. Only the balance advisory is always present.
func (r *Recommender) Recommend(candidates []Candidate, energy *wellness.Histogram, now time.Time) []domain.Advisory {
	var advisories []domain.Advisory

	if urgent := r.urgent(candidates, now); len(urgent) > 0 {
		advisories = append(advisories, domain.NewUrgentAdvisory(urgent, r.config.UrgencyWindowDays))
	}

	if energy != nil {
		if focus := r.highPriority(candidates); len(focus) > 0 {
			if at, ok := NextHighEnergySlot(energy, now); ok {
				advisories = append(advisories, domain.NewOptimalTimeAdvisory(at, focus))
			}
		}
	}

	var long []domain.TaskRef
	for _, c := range candidates {
		if c.EstimatedHours != nil && *c.EstimatedHours > r.config.LongTaskHours {
			long = append(long, c.ref())
		}
	}
	if len(long) > 0 {
		advisories = append(advisories, domain.NewBreakAdvisory(long))
	}

	distribution := make(map[string]int)
	for _, c := range candidates {
		distribution[string(c.Category)]++
	}
	return append(advisories, domain.NewBalanceAdvisory(distribution))
}

// urgent lists tasks due in [now, now+UrgencyWindowDays*24h].
func (r *Recommender) urgent(candidates []Candidate, now time.Time) []domain.TaskRef {
	window := time.Duration(r.config.UrgencyWindowDays) * 24 * time.Hour
	var out []domain.TaskRef
	for _, c := range candidates {
		if c.DueDate == nil {
			continue
		}
		if d := c.DueDate.Sub(now); d >= 0 && d <= window {
			out = append(out, c.ref())
		}
	}
	return out
}

func (r *Recommender) highPriority(candidates []Candidate) []domain.TaskRef {
	var out []domain.TaskRef
	for _, c := range candidates {
		if c.Priority != value_objects.PriorityHigh {
			continue
		}
		out = append(out, c.ref())
		if len(out) == r.config.OptimalTaskLimit {
			break
		}
	}
	return out
}

// HighEnergyBucketLimit is how many of the most frequent high-energy cells
// NextHighEnergySlot considers.
const HighEnergyBucketLimit = 5

// NextHighEnergySlot finds the nearest weekday after now holding one of the
// most frequent high-energy cells and returns that day's most frequent one.
// It searches today and the six following days; on today only later hours
// qualify.
func NextHighEnergySlot(energy *wellness.Histogram, now time.Time) (domain.TimeRef, bool) {
	buckets := energy.TopBuckets(wellness.EnergyHigh, HighEnergyBucketLimit)
	if len(buckets) == 0 {
		return domain.TimeRef{}, false
	}

	for offset := 0; offset < 7; offset++ {
		day := time.Weekday((int(now.Weekday()) + offset) % 7)
		for _, b := range buckets {
			if b.Weekday != day || (offset == 0 && b.Hour <= now.Hour()) {
				continue
			}
			return domain.TimeRef{
				Weekday:     int(day),
				Hour:        b.Hour,
				Description: day.String() + " at " + schedulingDomain.FormatHour(b.Hour),
			}, true
		}
	}
	return domain.TimeRef{}, false
}
