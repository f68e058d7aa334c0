package model

// DeadlineType distinguishes goal-level from milestone-level deadline records.
type DeadlineType string

const (
	DeadlineGoal      DeadlineType = "goal"
	DeadlineMilestone DeadlineType = "milestone"
)

// UpcomingDeadline is a derived record; it is computed from current goal
// state and never persisted.
type UpcomingDeadline struct {
	GoalID         string       `json:"goalId"`
	GoalTitle      string       `json:"goalTitle"`
	Deadline       string       `json:"deadline"`
	DaysLeft       int          `json:"daysLeft"`
	Progress       int          `json:"progress"`
	ColorClass     string       `json:"colorClass"`
	Type           DeadlineType `json:"type"`
	MilestoneTitle string       `json:"milestoneTitle,omitempty"`
}

// Priority is a derived "do this today" record: an incomplete milestone due
// soon, or a synthetic finish-the-goal item for milestone-less goals.
type Priority struct {
	GoalID      string       `json:"goalId"`
	GoalTitle   string       `json:"goalTitle"`
	Title       string       `json:"title"`
	DueDate     string       `json:"dueDate"`
	DaysLeft    int          `json:"daysLeft"`
	Type        DeadlineType `json:"type"`
	MilestoneID string       `json:"milestoneId,omitempty"`
}
