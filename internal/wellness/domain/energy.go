package domain

import (
	"strings"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// EnergyLevel is a self-reported or inferred energy state.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// EnergyLevels lists levels in tie-break preference order.
var EnergyLevels = []EnergyLevel{EnergyHigh, EnergyMedium, EnergyLow}

// ParseEnergyLevel parses "high", "medium" or "low" (case-insensitive).
func ParseEnergyLevel(s string) (EnergyLevel, error) {
	level := EnergyLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", domain.InvalidInputf("unknown energy level %q", s)
	}
	return level, nil
}

// ParseOptionalEnergyLevel treats the empty string as "no preference".
func ParseOptionalEnergyLevel(s string) (*EnergyLevel, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	level, err := ParseEnergyLevel(s)
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (l EnergyLevel) IsValid() bool {
	switch l {
	case EnergyHigh, EnergyMedium, EnergyLow:
		return true
	}
	return false
}

func (l EnergyLevel) String() string { return string(l) }
