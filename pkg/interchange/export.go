package interchange

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/strive/pkg/model"
)

// bom keeps spreadsheet apps from mangling non-ASCII cells.
const bom = "\ufeff"

// ExportJSON writes the backup envelope.
func ExportJSON(w io.Writer, goals []model.Goal, habits []model.Habit, journal []model.JournalEntry, now time.Time) error {
	data := ExportData{
		Goals:          goals,
		Habits:         habits,
		JournalEntries: journal,
		ExportedAt:     now.UTC().Format(time.RFC3339),
		Version:        Version,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("interchange: encode backup: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("interchange: write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("interchange: write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("interchange: write rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ExportGoalsCSV writes one row per goal; milestones appear only as a count
// and have their own file.
func ExportGoalsCSV(w io.Writer, goals []model.Goal) error {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.ID,
			g.Title,
			g.Category.String(),
			strconv.Itoa(g.Progress),
			g.Deadline,
			g.ColorClass,
			g.Notes,
			strconv.FormatInt(g.CreatedAt, 10),
			strconv.Itoa(len(g.Milestones)),
		})
	}
	return writeCSV(w, []string{"id", "title", "category", "progress", "deadline", "colorClass", "notes", "createdAt", "milestones_count"}, rows)
}

// ExportMilestonesCSV flattens every goal's milestones into one file.
func ExportMilestonesCSV(w io.Writer, goals []model.Goal) error {
	rows := [][]string{}
	for _, g := range goals {
		for _, ms := range g.Milestones {
			rows = append(rows, []string{
				ms.ID,
				g.ID,
				g.Title,
				ms.Title,
				strconv.FormatBool(ms.Completed),
				ms.DueDate,
			})
		}
	}
	return writeCSV(w, []string{"id", "goalId", "goalTitle", "title", "completed", "dueDate"}, rows)
}

// ExportHabitsCSV writes one row per habit.
func ExportHabitsCSV(w io.Writer, habits []model.Habit) error {
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			h.ID,
			h.Name,
			h.Category,
			strconv.Itoa(h.Streak),
			strconv.FormatBool(h.CompletedToday),
			h.LastCompletedDate,
			h.LinkedGoalID,
		})
	}
	return writeCSV(w, []string{"id", "name", "category", "streak", "completedToday", "lastCompletedDate", "linkedGoalId"}, rows)
}

// ExportJournalCSV writes one row per entry with a human-readable date
// column alongside the raw timestamp.
func ExportJournalCSV(w io.Writer, entries []model.JournalEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			strconv.FormatInt(e.CreatedAt, 10),
			model.Millis(e.CreatedAt).Format("02/01/2006"),
			e.Content,
			e.Mood,
			e.LinkedGoalID,
		})
	}
	return writeCSV(w, []string{"id", "createdAt", "date", "content", "mood", "linkedGoalId"}, rows)
}

// ExportFocusCSV writes one row per focus session with durations rounded to
// whole minutes and the session log joined into a single cell.
func ExportFocusCSV(w io.Writer, tasks []model.FocusTask) error {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID,
			t.Title,
			string(t.Status),
			formatStamp(t.StartTime),
			formatStamp(t.EndTime),
			minutes(t.Duration),
			strconv.Itoa(t.Rating),
			strings.Join(t.Logs, "; "),
			t.Notes,
			minutes(t.RestDuration),
		})
	}
	return writeCSV(w, []string{"ID", "Title", "Status", "StartTime", "EndTime", "Duration(min)", "Rating", "Log", "Notes", "Rest(min)"}, rows)
}

func formatStamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	return model.Millis(ms).Format("2006-01-02 15:04:05")
}

func minutes(ms int64) string {
	if ms == 0 {
		return ""
	}
	return strconv.Itoa(int(math.Round(float64(ms) / 60000)))
}
