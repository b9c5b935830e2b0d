package value_objects

import (
	"math"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// Hours is a non-negative, possibly fractional, number of hours.
type Hours float64

// NewHours rejects negative and non-finite values.
func NewHours(h float64) (Hours, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0, domain.InvalidInputf("hours must be a non-negative number, got %v", h)
	}
	return Hours(h), nil
}

// NewOptionalHours validates h when present.
func NewOptionalHours(h *float64) (*Hours, error) {
	if h == nil {
		return nil, nil
	}
	v, err := NewHours(*h)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h Hours) Float() float64 { return float64(h) }

// WholeHours rounds up to whole hours with a floor of one.
func (h Hours) WholeHours() int {
	n := int(math.Ceil(float64(h)))
	if n < 1 {
		return 1
	}
	return n
}
