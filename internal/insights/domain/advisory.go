// Package domain holds the advisories the recommendation engine produces.
package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AdvisoryType tags an advisory.
type AdvisoryType string

const (
	AdvisoryUrgent      AdvisoryType = "urgent"
	AdvisoryOptimalTime AdvisoryType = "optimal_time"
	AdvisoryBreak       AdvisoryType = "break_suggestion"
	AdvisoryBalance     AdvisoryType = "balance"
)

// TaskRef is the slice of a task an advisory quotes.
type TaskRef struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
}

// TimeRef is a recurring weekday and hour.
type TimeRef struct {
	Weekday     int    `json:"day"`
	Hour        int    `json:"hour"`
	Description string `json:"description"`
}

// Advisory is one recommendation. Which payload fields are set depends on
// Type: Tasks for urgent and break advisories, Time and RecommendedTasks for
// optimal-time, Distribution for balance.
type Advisory struct {
	Type             AdvisoryType   `json:"type"`
	Title            string         `json:"title"`
	Suggestion       string         `json:"suggestion"`
	Tasks            []TaskRef      `json:"tasks,omitempty"`
	Time             *TimeRef       `json:"time,omitempty"`
	RecommendedTasks []TaskRef      `json:"recommended_tasks,omitempty"`
	Distribution     map[string]int `json:"distribution,omitempty"`
}

// NewUrgentAdvisory flags tasks due within the urgency window.
func NewUrgentAdvisory(tasks []TaskRef, windowDays int) Advisory {
	return Advisory{
		Type:       AdvisoryUrgent,
		Title:      "Urgent Deadlines Approaching",
		Suggestion: "These tasks are due within " + plural(windowDays, "day") + ". Consider scheduling focused study sessions today.",
		Tasks:      tasks,
	}
}

// NewOptimalTimeAdvisory points at the next high-energy hour.
func NewOptimalTimeAdvisory(at TimeRef, tasks []TaskRef) Advisory {
	return Advisory{
		Type:             AdvisoryOptimalTime,
		Title:            "Optimal Study Time Detected",
		Suggestion:       "Based on your energy patterns, " + at.Description + " is a great time for focused work.",
		Time:             &at,
		RecommendedTasks: tasks,
	}
}

// NewBreakAdvisory suggests interval work for long tasks.
func NewBreakAdvisory(tasks []TaskRef) Advisory {
	return Advisory{
		Type:       AdvisoryBreak,
		Title:      "Long Tasks Detected",
		Suggestion: "Consider using the Pomodoro technique (25 min work, 5 min break) for these longer tasks.",
		Tasks:      tasks,
	}
}

// NewBalanceAdvisory reports how the workload splits across categories.
func NewBalanceAdvisory(distribution map[string]int) Advisory {
	return Advisory{
		Type:         AdvisoryBalance,
		Title:        "Task Distribution",
		Suggestion:   "Maintain a balanced schedule across different types of activities.",
		Distribution: distribution,
	}
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
