package model

// Habit is a recurring daily action tracked with a completion streak.
// LastCompletedDate is a day stamp (see DayStamp); it is empty until the
// habit is first completed. CompletedToday is only meaningful for the day
// named by LastCompletedDate and must be reset when the stamp goes stale.
type Habit struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Streak            int    `json:"streak"`
	CompletedToday    bool   `json:"completedToday"`
	LastCompletedDate string `json:"lastCompletedDate"`
	Category          string `json:"category"`
	LinkedGoalID      string `json:"linkedGoalId,omitempty"`
}

// NewHabit builds a habit in its initial state.
func NewHabit(name, category, linkedGoalID string) Habit {
	return Habit{
		ID:           NewID(),
		Name:         name,
		Category:     category,
		LinkedGoalID: linkedGoalID,
	}
}

// CloneHabits copies a habit collection.
func CloneHabits(habits []Habit) []Habit {
	return append([]Habit(nil), habits...)
}
