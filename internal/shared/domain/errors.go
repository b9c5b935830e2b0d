package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks input rejected before any work is done: malformed
// dates or times, negative durations and unknown enum tokens.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputf wraps ErrInvalidInput with a formatted detail.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
