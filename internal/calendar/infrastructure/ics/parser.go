// Package ics reads and writes the iCalendar export format.
package ics

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
	"time"

	calendarDomain "github.com/felixgeelhaar/tempo/internal/calendar/domain"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	"github.com/teambition/rrule-go"
)

var (
	timeToken = regexp.MustCompile(`T(\d{2})(\d{2})`)
	dateToken = regexp.MustCompile(`:(\d{8})`)
)

// Candidate is what could be recovered from one VEVENT block. Fields the
// block did not carry stay nil.
type Candidate struct {
	Name        string
	Description string
	Start       *schedulingDomain.Clock
	End         *schedulingDomain.Clock
	// DurationHours is the end hour minus the start hour, unclamped. It can
	// be zero or negative for short or overnight events.
	DurationHours *int
	StartDate     *time.Time
	Recurring     bool
	Pattern       calendarDomain.Pattern
	Weekdays      []int
}

// ImportResult pairs the candidates with the number of VEVENT blocks seen so
// callers can judge how much of the input survived.
type ImportResult struct {
	Blocks int
	Events []Candidate
}

// Parse scans exported calendar text. It never fails: malformed lines are
// ignored and blocks without a SUMMARY are dropped.
func Parse(text string) ImportResult {
	var (
		result  ImportResult
		current *Candidate
		rule    string
	)

	for _, line := range unfold(text) {
		switch {
		case line == "BEGIN:VEVENT":
			result.Blocks++
			current = &Candidate{}
			rule = ""
		case line == "END:VEVENT":
			if current != nil && current.Name != "" {
				finish(current, rule)
				result.Events = append(result.Events, *current)
			}
			current = nil
		case current == nil:
		case strings.HasPrefix(line, "SUMMARY"):
			current.Name = strings.TrimSpace(valueOf(line))
		case strings.HasPrefix(line, "DESCRIPTION"):
			current.Description = strings.TrimSpace(unescape(valueOf(line)))
		case strings.HasPrefix(line, "DTSTART"):
			current.Start = clockOf(line)
			current.StartDate = dateOf(line)
		case strings.HasPrefix(line, "DTEND"):
			current.End = clockOf(line)
			if current.Start != nil && current.End != nil {
				d := current.End.Hour - current.Start.Hour
				current.DurationHours = &d
			}
		case strings.HasPrefix(line, "RRULE"):
			current.Recurring = true
			rule = valueOf(line)
		}
	}

	return result
}

func finish(c *Candidate, rule string) {
	if !c.Recurring {
		c.Pattern = calendarDomain.PatternDaily
		return
	}
	c.Pattern = calendarDomain.PatternWeekly
	days, freq := ruleDays(rule)
	switch {
	case len(days) > 0:
		c.Weekdays = days
	case freq == rrule.DAILY:
		c.Weekdays = []int{0, 1, 2, 3, 4, 5, 6}
	case c.StartDate != nil:
		c.Weekdays = []int{int(c.StartDate.Weekday())}
	}
}

// ruleDays extracts BYDAY as Sunday-based day numbers.
func ruleDays(rule string) ([]int, rrule.Frequency) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return byDayFallback(rule), -1
	}
	seen := map[int]bool{}
	var days []int
	for _, wd := range opt.Byweekday {
		// rrule-go numbers Monday as 0.
		d := (wd.Day() + 1) % 7
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, opt.Freq
}

var dayCodes = map[string]int{"SU": 0, "MO": 1, "TU": 2, "WE": 3, "TH": 4, "FR": 5, "SA": 6}

// byDayFallback reads BYDAY from rules rrule-go rejects, such as ones
// missing FREQ.
func byDayFallback(rule string) []int {
	var days []int
	for _, part := range strings.Split(rule, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "BYDAY") {
			continue
		}
		for _, code := range strings.Split(value, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if len(code) < 2 {
				continue
			}
			if d, ok := dayCodes[code[len(code)-2:]]; ok {
				days = append(days, d)
			}
		}
	}
	return days
}

// valueOf returns the text after the first colon, skipping parameters.
func valueOf(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return value
}

func clockOf(line string) *schedulingDomain.Clock {
	m := timeToken.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return nil
	}
	return &schedulingDomain.Clock{Hour: hour, Minute: minute}
}

func dateOf(line string) *time.Time {
	m := dateToken.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	d, err := time.Parse("20060102", m[1])
	if err != nil {
		return nil
	}
	return &d
}

// unfold joins continuation lines (RFC 5545 folding) and trims line endings.
func unfold(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

var unescaper = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

func unescape(s string) string { return unescaper.Replace(s) }
