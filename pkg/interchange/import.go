package interchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/model"
)

var validate = validator.New()

// ImportJSON parses a backup envelope. All three collections must be
// present; the result replaces live state wholesale, so a truncated file
// must never pass.
func ImportJSON(data []byte) ImportResult {
	var probe struct {
		Goals          *[]model.Goal         `json:"goals"`
		Habits         *[]model.Habit        `json:"habits"`
		JournalEntries *[]model.JournalEntry `json:"journalEntries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return failure("invalid JSON backup file")
	}
	if probe.Goals == nil || probe.Habits == nil || probe.JournalEntries == nil {
		return failure("backup file is missing one of goals, habits, journalEntries")
	}

	goals := *probe.Goals
	for i := range goals {
		if goals[i].Milestones == nil {
			goals[i].Milestones = []model.Milestone{}
		}
	}
	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("imported %d goals, %d habits, %d journal entries",
			len(goals), len(*probe.Habits), len(*probe.JournalEntries)),
		Data: &DataSet{
			Goals:   goals,
			Habits:  *probe.Habits,
			Journal: *probe.JournalEntries,
		},
	}
}

// csvRows reads every record, dropping a UTF-8 BOM and tolerating ragged
// rows. Rows that fail CSV parsing are reported with their line number and
// skipped; reading continues on the next line.
func csvRows(data []byte) (header []string, rows [][]string, lines []int, rowErrs []string, err error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte(bom))))
	r.FieldsPerRecord = -1

	for {
		record, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				if header == nil {
					return nil, nil, nil, nil, fmt.Errorf("line %d: %v", parseErr.Line, parseErr.Err)
				}
				rowErrs = append(rowErrs, fmt.Sprintf("line %d: %v", parseErr.Line, parseErr.Err))
				continue
			}
			return nil, nil, nil, nil, readErr
		}
		line, _ := r.FieldPos(0)
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
		lines = append(lines, line)
	}
	return header, rows, lines, rowErrs, nil
}

// columnIndex maps lower-cased header names to positions and checks the
// required set. Missing columns fail the whole import.
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	missing := []string{}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellInt(row []string, idx map[string]int, name string) int {
	n, err := strconv.Atoi(cell(row, idx, name))
	if err != nil {
		return 0
	}
	return n
}

func cellInt64(row []string, idx map[string]int, name string, fallback int64) int64 {
	n, err := strconv.ParseInt(cell(row, idx, name), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func cellBool(row []string, idx map[string]int, name string) bool {
	return strings.EqualFold(cell(row, idx, name), "true")
}

func cellID(row []string, idx map[string]int) string {
	if id := cell(row, idx, "id"); id != "" {
		return id
	}
	return model.NewID()
}

// rowErrors flattens validator failures into per-line messages.
func rowErrors(line int, err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fmt.Sprintf("line %d: %s is required", line, strings.ToLower(fe.Field())))
		}
		return out
	}
	return []string{fmt.Sprintf("line %d: %v", line, err)}
}

type goalRow struct {
	Title    string `validate:"required"`
	Category string
	Deadline string
}

// ImportGoalsCSV parses a goals CSV into candidate goals. Parsed rows are
// appended to the live collection by the caller.
func ImportGoalsCSV(data []byte, now time.Time) ImportResult {
	header, rows, lines, rowErrs, err := csvRows(data)
	if err != nil {
		return failure(fmt.Sprintf("unreadable CSV file: %v", err))
	}
	idx, err := columnIndex(header, []string{"title", "category", "deadline"})
	if err != nil {
		return failure(err.Error())
	}

	goals := []model.Goal{}
	for i, row := range rows {
		r := goalRow{
			Title:    cell(row, idx, "title"),
			Category: cell(row, idx, "category"),
			Deadline: cell(row, idx, "deadline"),
		}
		if err := validate.Struct(r); err != nil {
			rowErrs = append(rowErrs, rowErrors(lines[i], err)...)
			continue
		}
		if r.Deadline == "" {
			r.Deadline = now.Format("2006-01-02")
		}
		cat := category.Parse(r.Category)
		goals = append(goals, model.Goal{
			ID:         cellID(row, idx),
			Title:      r.Title,
			Category:   cat,
			Progress:   model.ClampProgress(cellInt(row, idx, "progress")),
			Deadline:   r.Deadline,
			ColorClass: cat.ColorClass(),
			Milestones: []model.Milestone{},
			CreatedAt:  cellInt64(row, idx, "createdat", now.UnixMilli()),
			Notes:      cell(row, idx, "notes"),
		})
	}

	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("parsed %d goals", len(goals)),
		Data:    &DataSet{Goals: goals},
		Errors:  rowErrs,
	}
}

type habitRow struct {
	Name     string `validate:"required"`
	Category string
}

// ImportHabitsCSV parses a habits CSV into candidate habits.
func ImportHabitsCSV(data []byte) ImportResult {
	header, rows, lines, rowErrs, err := csvRows(data)
	if err != nil {
		return failure(fmt.Sprintf("unreadable CSV file: %v", err))
	}
	idx, err := columnIndex(header, []string{"name", "category"})
	if err != nil {
		return failure(err.Error())
	}

	habits := []model.Habit{}
	for i, row := range rows {
		r := habitRow{
			Name:     cell(row, idx, "name"),
			Category: cell(row, idx, "category"),
		}
		if err := validate.Struct(r); err != nil {
			rowErrs = append(rowErrs, rowErrors(lines[i], err)...)
			continue
		}
		habits = append(habits, model.Habit{
			ID:                cellID(row, idx),
			Name:              r.Name,
			Streak:            cellInt(row, idx, "streak"),
			CompletedToday:    cellBool(row, idx, "completedtoday"),
			LastCompletedDate: cell(row, idx, "lastcompleteddate"),
			Category:          r.Category,
			LinkedGoalID:      cell(row, idx, "linkedgoalid"),
		})
	}

	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("parsed %d habits", len(habits)),
		Data:    &DataSet{Habits: habits},
		Errors:  rowErrs,
	}
}

type journalRow struct {
	Content string `validate:"required"`
	Mood    string
}

// ImportJournalCSV parses a journal CSV into candidate entries. Entries
// keep newest-first order, so the caller prepends them.
func ImportJournalCSV(data []byte, now time.Time) ImportResult {
	header, rows, lines, rowErrs, err := csvRows(data)
	if err != nil {
		return failure(fmt.Sprintf("unreadable CSV file: %v", err))
	}
	idx, err := columnIndex(header, []string{"content", "mood"})
	if err != nil {
		return failure(err.Error())
	}

	entries := []model.JournalEntry{}
	for i, row := range rows {
		r := journalRow{
			Content: cell(row, idx, "content"),
			Mood:    cell(row, idx, "mood"),
		}
		if err := validate.Struct(r); err != nil {
			rowErrs = append(rowErrs, rowErrors(lines[i], err)...)
			continue
		}
		if r.Mood == "" {
			r.Mood = "😊"
		}
		entries = append(entries, model.JournalEntry{
			ID:           cellID(row, idx),
			CreatedAt:    cellInt64(row, idx, "createdat", now.UnixMilli()),
			Content:      r.Content,
			Mood:         r.Mood,
			LinkedGoalID: cell(row, idx, "linkedgoalid"),
		})
	}

	return ImportResult{
		Success: true,
		Message: fmt.Sprintf("parsed %d journal entries", len(entries)),
		Data:    &DataSet{Journal: entries},
		Errors:  rowErrs,
	}
}
