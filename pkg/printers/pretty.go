package printers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/deadline"
	"tableflip.dev/strive/pkg/model"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

// Goals prints a table of goals with a progress bar and an urgency-colored
// deadline column.
func (pp *PrettyPrint) Goals(goals ...model.Goal) {
	if len(goals) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, g := range goals {
		row := []interface{}{
			categoryColor(g.Category).Sprint(g.Category.String()),
			g.Title,
			progressBar(g.Progress),
			deadlineCell(g.Deadline, 7),
		}
		if pp.ShowID {
			row = append([]interface{}{faintID(g.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Milestones prints one goal's milestones with completion marks.
func (pp *PrettyPrint) Milestones(g model.Goal) {
	if len(g.Milestones) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	done := color.New(color.FgGreen)
	todo := color.New(color.Faint)
	for _, ms := range g.Milestones {
		mark := todo.Sprint("·")
		if ms.Completed {
			mark = done.Sprint("✓")
		}
		row := []interface{}{mark, ms.Title}
		if ms.DueDate != "" {
			row = append(row, deadlineCell(ms.DueDate, 3))
		}
		if pp.ShowID {
			row = append([]interface{}{faintID(ms.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Habits prints a table of habits with streaks and today's state.
func (pp *PrettyPrint) Habits(habits ...model.Habit) {
	if len(habits) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	done := color.New(color.FgGreen)
	todo := color.New(color.Faint)
	streak := color.New(color.FgHiYellow)
	for _, h := range habits {
		mark := todo.Sprint("·")
		if h.CompletedToday {
			mark = done.Sprint("✓")
		}
		row := []interface{}{
			mark,
			h.Name,
			streak.Sprintf("%d🔥", h.Streak),
			color.New(color.Faint).Sprint(h.Category),
		}
		if pp.ShowID {
			row = append([]interface{}{faintID(h.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Journal prints entries with their day and mood.
func (pp *PrettyPrint) Journal(entries ...model.JournalEntry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	day := color.New(color.Faint)
	for _, e := range entries {
		if pp.ShowID {
			_, _ = color.New(color.FgHiYellow, color.Italic, color.Faint).Print(padID(e.ID))
		}
		_, _ = day.Print(model.Millis(e.CreatedAt).Format("02/01/2006 "))
		fmt.Printf("%s  %s\n", e.Mood, e.Content)
	}
	fmt.Println("")
}

// Focus prints focus sessions with durations in minutes.
func (pp *PrettyPrint) Focus(tasks ...model.FocusTask) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		row := []interface{}{
			statusColor(t.Status).Sprint(string(t.Status)),
			t.Title,
			durationCell(t.Duration),
			ratingCell(t.Rating),
		}
		if pp.ShowID {
			row = append([]interface{}{faintID(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Deadlines prints the upcoming deadline view, soonest first.
func (pp *PrettyPrint) Deadlines(ds ...model.UpcomingDeadline) {
	if len(ds) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	faint := color.New(color.Faint)
	for _, d := range ds {
		title := d.GoalTitle
		if d.Type == model.DeadlineMilestone {
			title = fmt.Sprintf("%s %s", d.MilestoneTitle, faint.Sprintf("(%s)", d.GoalTitle))
		}
		tbl.AddRow(
			urgencyColor(d.DaysLeft, 3).Sprint(deadline.FormatDisplay(d.Deadline)),
			title,
			progressBar(d.Progress),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Priorities prints today's priority list.
func (pp *PrettyPrint) Priorities(ps ...model.Priority) {
	if len(ps) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	faint := color.New(color.Faint)
	for i, p := range ps {
		tbl.AddRow(
			faint.Sprintf("%d.", i+1),
			p.Title,
			faint.Sprint(p.GoalTitle),
			urgencyColor(p.DaysLeft, 3).Sprint(deadline.FormatDisplay(p.DueDate)),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// CategorySummary prints mean progress per category.
func (pp *PrettyPrint) CategorySummary(progress map[category.Category]int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, cat := range category.All() {
		tbl.AddRow(
			categoryColor(cat).Sprint(cat.String()),
			progressBar(progress[cat]),
		)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

const barWidth = 10

// progressBar renders a ten-segment bar plus the numeric percentage.
func progressBar(progress int) string {
	progress = model.ClampProgress(progress)
	filled := progress * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %3s%%", bar, strconv.Itoa(progress))
}

func deadlineCell(s string, urgentWithin int) string {
	return urgencyColor(deadline.DaysLeft(s), urgentWithin).Sprint(deadline.FormatDisplay(s))
}

func urgencyColor(daysLeft, urgentWithin int) *color.Color {
	switch deadline.Classify(daysLeft, urgentWithin) {
	case deadline.Overdue:
		return color.New(color.FgRed, color.Bold)
	case deadline.Urgent:
		return color.New(color.FgYellow)
	case deadline.Normal:
		return color.New(color.FgWhite)
	}
	return color.New(color.Faint)
}

func statusColor(status model.FocusStatus) *color.Color {
	switch status {
	case model.FocusActive:
		return color.New(color.FgGreen, color.Bold)
	case model.FocusResting:
		return color.New(color.FgCyan)
	case model.FocusCompleted:
		return color.New(color.Faint)
	}
	return color.New(color.FgWhite)
}

// categoryColor gives each category a stable terminal color, derived from
// the same assignments the color classes use.
func categoryColor(cat category.Category) *color.Color {
	switch cat.ColorClass() {
	case "bg-neo-blue":
		return color.New(color.FgBlue)
	case "bg-neo-lime":
		return color.New(color.FgGreen)
	case "bg-neo-red":
		return color.New(color.FgRed)
	case "bg-neo-orange":
		return color.New(color.FgYellow)
	case "bg-neo-purple":
		return color.New(color.FgMagenta)
	case "bg-neo-teal":
		return color.New(color.FgCyan)
	}
	return color.New(color.FgWhite)
}

func durationCell(ms int64) string {
	if ms == 0 {
		return ""
	}
	return fmt.Sprintf("%dm", ms/60000)
}

func ratingCell(rating int) string {
	if rating <= 0 {
		return ""
	}
	if rating > 10 {
		rating = 10
	}
	return fmt.Sprintf("%d/10", rating)
}

func faintID(id string) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(id)
}

func padID(id string) string {
	if len(id) >= len(spacing) {
		return id[:len(spacing)-2] + "  "
	}
	return id + strings.Repeat(" ", len(spacing)-len(id))
}
