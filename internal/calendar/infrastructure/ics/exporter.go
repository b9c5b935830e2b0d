package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const productID = "-//Tempo//Study Planner//EN"

// Entry is one block of time to publish.
type Entry struct {
	UID         string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Export renders entries as an iCalendar document.
func Export(entries []Entry, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, e := range entries {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, e.UID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, e.Start.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, e.End.UTC())
		event.Props.SetText(ical.PropSummary, e.Title)
		if e.Description != "" {
			event.Props.SetText(ical.PropDescription, e.Description)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
