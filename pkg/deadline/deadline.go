// Package deadline parses the deadline strings carried by goals and
// milestones and turns them into days-remaining counts, display strings, and
// urgency buckets.
package deadline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Never is the days-left value for deadlines that cannot be parsed. It
// compares greater than any real window, so unparseable deadlines fall out
// of every "due within N days" filter.
const Never = math.MaxInt32

const layoutISO = "2006-01-02"

var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Parse accepts "YYYY-MM-DD", "DD/MM", or "DD/MM/YYYY" (year defaulting to
// the current year). The boolean is false for anything else; a bad deadline
// is not an error, it just never becomes due.
func Parse(s string) (time.Time, bool) {
	return ParseAt(s, time.Now())
}

// ParseAt is Parse with an explicit reference time for the default year.
func ParseAt(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if isoPattern.MatchString(s) {
		t, err := time.ParseInLocation(layoutISO, s, now.Location())
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year := now.Year()
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		year, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
}

// DaysLeft returns the whole days between today and the deadline, counting
// any partial day forward. Negative means overdue, zero means due today,
// Never means unparseable.
func DaysLeft(s string) int {
	return DaysLeftAt(s, time.Now())
}

// DaysLeftAt is DaysLeft with an explicit "today".
func DaysLeftAt(s string, now time.Time) int {
	due, ok := ParseAt(s, now)
	if !ok {
		return Never
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}

// FormatDisplay renders a deadline for humans: an overdue count, "Today",
// "Tomorrow", a short day count up to a week, or a DD/MM date beyond that.
// Unparseable deadlines are echoed back unchanged.
func FormatDisplay(s string) string {
	return FormatDisplayAt(s, time.Now())
}

// FormatDisplayAt is FormatDisplay with an explicit "today".
func FormatDisplayAt(s string, now time.Time) string {
	daysLeft := DaysLeftAt(s, now)
	switch {
	case daysLeft == Never:
		return s
	case daysLeft < 0:
		return fmt.Sprintf("Overdue %d days", -daysLeft)
	case daysLeft == 0:
		return "Today"
	case daysLeft == 1:
		return "Tomorrow"
	case daysLeft <= 7:
		return fmt.Sprintf("%d days left", daysLeft)
	}
	due, _ := ParseAt(s, now)
	return due.Format("02/01")
}

// Urgency buckets a days-left count for display emphasis.
type Urgency int

const (
	// None means no parseable deadline.
	None Urgency = iota
	// Normal is a deadline beyond the urgent window.
	Normal
	// Urgent is due within the caller's window (0..threshold days).
	Urgent
	// Overdue is past due.
	Overdue
)

// Classify buckets daysLeft. The urgent window is caller-chosen: goal views
// use 7, compact list widgets use 3.
func Classify(daysLeft, urgentWithin int) Urgency {
	switch {
	case daysLeft == Never:
		return None
	case daysLeft < 0:
		return Overdue
	case daysLeft <= urgentWithin:
		return Urgent
	default:
		return Normal
	}
}
