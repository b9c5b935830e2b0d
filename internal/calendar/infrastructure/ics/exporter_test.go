package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	start := time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)
	data, err := Export([]Entry{
		{UID: "a-1", Title: "Essay", Description: "Optimal energy match", Start: start, End: start.Add(2 * time.Hour)},
		{UID: "b-2", Title: "Reading", Start: start.Add(3 * time.Hour), End: start.Add(4 * time.Hour)},
	}, start)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "PRODID:"+productID)
	assert.Contains(t, text, "DTSTART:20260309T140000Z")
	assert.Contains(t, text, "SUMMARY:Essay")
	assert.Equal(t, 2, strings.Count(text, "BEGIN:VEVENT"))

	cal, err := ical.NewDecoder(strings.NewReader(text)).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestExport_RoundTripsThroughParser(t *testing.T) {
	start := time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)
	data, err := Export([]Entry{{UID: "x", Title: "Flashcards", Start: start, End: start.Add(2 * time.Hour)}}, start)
	require.NoError(t, err)

	result := Parse(string(data))
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Flashcards", result.Events[0].Name)
	assert.Equal(t, 2, *result.Events[0].DurationHours)
}
