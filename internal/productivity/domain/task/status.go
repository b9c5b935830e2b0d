package task

import (
	"strings"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// Status is the lifecycle state shared by tasks and subtasks.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus parses a status token. An empty string means pending.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusPending, nil
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", domain.InvalidInputf("unknown status %q", s)
}

func (s Status) String() string { return string(s) }

// Category groups tasks for workload balance reporting.
type Category string

const (
	CategoryAssignment Category = "assignment"
	CategoryExam       Category = "exam"
	CategoryActivity   Category = "activity"
	CategoryOther      Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAssignment, CategoryExam, CategoryActivity, CategoryOther}

// ParseCategory parses a category token.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", domain.InvalidInputf("unknown category %q", s)
}

func (c Category) String() string { return string(c) }
