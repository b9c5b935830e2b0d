package domain

import wellness "github.com/felixgeelhaar/tempo/internal/wellness/domain"

// Slot is one free hour of the day tagged with the energy level the
// histogram infers for it.
type Slot struct {
	Hour   int                  `json:"hour"`
	Energy wellness.EnergyLevel `json:"energy_level"`
}

// Time renders the slot start as "HH:00".
func (s Slot) Time() string { return FormatHour(s.Hour) }
