package value_objects

import (
	"strings"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// Priority is a task's declared importance.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// ParsePriority parses "high", "medium" or "low". An empty string means medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium", "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return 0, domain.InvalidInputf("unknown priority %q", s)
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Weight orders priorities; higher is more important.
func (p Priority) Weight() int { return int(p) }
