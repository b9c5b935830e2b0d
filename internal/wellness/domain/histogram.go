package domain

import (
	"sort"
	"time"
)

// LevelCounts tallies observations of each level in one bucket.
type LevelCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Total returns the number of observations in the bucket.
func (c LevelCounts) Total() int { return c.High + c.Medium + c.Low }

func (c LevelCounts) count(level EnergyLevel) int {
	switch level {
	case EnergyHigh:
		return c.High
	case EnergyMedium:
		return c.Medium
	case EnergyLow:
		return c.Low
	}
	return 0
}

func (c *LevelCounts) add(level EnergyLevel) {
	switch level {
	case EnergyHigh:
		c.High++
	case EnergyMedium:
		c.Medium++
	case EnergyLow:
		c.Low++
	}
}

// DominantLevel returns the level with the greatest count. Ties go to the
// earlier entry of EnergyLevels (high, then medium, then low) and an empty
// bucket yields medium.
func DominantLevel(c LevelCounts) EnergyLevel {
	if c.Total() == 0 {
		return EnergyMedium
	}
	best := EnergyLevels[0]
	for _, level := range EnergyLevels[1:] {
		if c.count(level) > c.count(best) {
			best = level
		}
	}
	return best
}

// Histogram counts observations per (weekday, hour). It is rebuilt from the
// full log in a single pass.
type Histogram struct {
	buckets [7][24]LevelCounts
	size    int
}

// NewHistogram aggregates the observation log.
func NewHistogram(observations []Observation) *Histogram {
	h := &Histogram{}
	for _, o := range observations {
		h.Add(o)
	}
	return h
}

// Add counts one more observation. Out-of-range entries are ignored.
func (h *Histogram) Add(o Observation) {
	if o.Weekday < time.Sunday || o.Weekday > time.Saturday || o.Hour < 0 || o.Hour > 23 {
		return
	}
	h.buckets[o.Weekday][o.Hour].add(o.Level)
	h.size++
}

// Size is the number of observations counted.
func (h *Histogram) Size() int { return h.size }

// DistributionFor returns hour-indexed counts for one weekday.
func (h *Histogram) DistributionFor(weekday time.Weekday) [24]LevelCounts {
	return h.buckets[weekday]
}

// Dominant returns the inferred level for a weekday and hour.
func (h *Histogram) Dominant(weekday time.Weekday, hour int) EnergyLevel {
	return DominantLevel(h.buckets[weekday][hour])
}

// Bucket is one populated (weekday, hour) cell with a count for some level.
type Bucket struct {
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`
	Count   int          `json:"count"`
}

// BucketsWith lists cells that recorded the level at least once, ordered by
// weekday then hour.
func (h *Histogram) BucketsWith(level EnergyLevel) []Bucket {
	var out []Bucket
	for d := range h.buckets {
		for hour, c := range h.buckets[d] {
			if n := c.count(level); n > 0 {
				out = append(out, Bucket{Weekday: time.Weekday(d), Hour: hour, Count: n})
			}
		}
	}
	return out
}

// TopBuckets returns at most n cells that recorded the level, most frequent
// first. Equal counts keep weekday then hour order.
func (h *Histogram) TopBuckets(level EnergyLevel, n int) []Bucket {
	out := h.BucketsWith(level)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
