// Package model defines the persisted entities tracked by strive and the
// derived records computed from them.
package model

import (
	"time"

	"github.com/google/uuid"
)

const dayLayout = "2006-01-02"

// NewID returns a fresh unique identifier for any entity.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current time as Unix milliseconds, the timestamp unit used
// by every entity and by the interchange formats.
func Now() int64 {
	return time.Now().UnixMilli()
}

// DayStamp reduces a time to its calendar day. Habit completion is tracked
// per day, so equality of day stamps is the "same day" test.
func DayStamp(t time.Time) string {
	return t.Local().Format(dayLayout)
}

// Millis converts a Unix-millisecond timestamp back to a time.Time.
func Millis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
