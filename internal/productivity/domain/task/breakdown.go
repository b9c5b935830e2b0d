package task

import "math"

// BreakdownThreshold is the estimate above which a task is split into
// project phases on creation.
const BreakdownThreshold = 4.0

const maxPhases = 8

var projectPhases = [maxPhases]string{
	"Research and planning",
	"Outline and structure",
	"Draft first section",
	"Draft middle sections",
	"Draft final section",
	"Review and edit",
	"Finalize and polish",
	"Final review",
}

// PlanPhases returns the subtask titles for a project of the given size:
// one phase per two estimated hours, capped at eight. Estimates at or below
// the threshold produce no phases.
func PlanPhases(estimatedHours float64) []string {
	if estimatedHours <= BreakdownThreshold {
		return nil
	}
	n := int(math.Ceil(estimatedHours / 2))
	if n > maxPhases {
		n = maxPhases
	}
	out := make([]string, n)
	copy(out, projectPhases[:n])
	return out
}
