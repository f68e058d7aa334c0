// Package interchange serializes tracker collections to the JSON backup
// envelope and the per-entity CSV formats, and parses them back with
// per-row validation. Import never touches live state; it returns a fully
// parsed candidate data set for the caller to merge.
package interchange

import (
	"tableflip.dev/strive/pkg/model"
)

// Version is the backup envelope format version.
const Version = "1.0.0"

// ExportData is the JSON backup envelope. Focus tasks are local-only and
// not part of the interchange surface.
type ExportData struct {
	Goals          []model.Goal         `json:"goals"`
	Habits         []model.Habit        `json:"habits"`
	JournalEntries []model.JournalEntry `json:"journalEntries"`
	ExportedAt     string               `json:"exportedAt"`
	Version        string               `json:"version"`
}

// DataSet is a parsed candidate collection produced by an import.
type DataSet struct {
	Goals   []model.Goal
	Habits  []model.Habit
	Journal []model.JournalEntry
}

// ImportResult is the outcome of any import. Success reports whether the
// file as a whole was usable; individual bad rows land in Errors without
// failing the import.
type ImportResult struct {
	Success bool
	Message string
	Data    *DataSet
	Errors  []string
}

func failure(message string) ImportResult {
	return ImportResult{Success: false, Message: message}
}
