package value_objects

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input string
		want  Priority
	}{
		{"high", PriorityHigh},
		{"HIGH", PriorityHigh},
		{"medium", PriorityMedium},
		{"", PriorityMedium},
		{" low ", PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePriority(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	_, err := ParsePriority("urgent")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPriority_Weight(t *testing.T) {
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
	assert.Equal(t, "unknown", Priority(0).String())
}

func TestHours(t *testing.T) {
	_, err := NewHours(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	h, err := NewHours(2.5)
	require.NoError(t, err)
	assert.Equal(t, 3, h.WholeHours())

	zero, err := NewHours(0)
	require.NoError(t, err)
	assert.Equal(t, 1, zero.WholeHours())

	none, err := NewOptionalHours(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
