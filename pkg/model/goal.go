package model

import "tableflip.dev/strive/pkg/category"

// Milestone is a sub-task owned by exactly one goal. Its identity is the
// (goal id, milestone id) pair.
type Milestone struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate,omitempty"`
}

// Goal is a top-level tracked objective. Progress is always within [0,100];
// when the goal has milestones, progress is recomputed from their completion
// ratio on every toggle.
type Goal struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Category   category.Category `json:"category"`
	Progress   int               `json:"progress"`
	Deadline   string            `json:"deadline"`
	Image      string            `json:"image,omitempty"`
	ColorClass string            `json:"colorClass"`
	Milestones []Milestone       `json:"milestones"`
	CreatedAt  int64             `json:"createdAt"`
	Notes      string            `json:"notes,omitempty"`
}

// NewGoal builds a goal in its initial state.
func NewGoal(title string, cat category.Category, deadline string) Goal {
	return Goal{
		ID:         NewID(),
		Title:      title,
		Category:   cat,
		Progress:   0,
		Deadline:   deadline,
		ColorClass: cat.ColorClass(),
		Milestones: []Milestone{},
		CreatedAt:  Now(),
	}
}

// NewMilestone builds an incomplete milestone.
func NewMilestone(title, dueDate string) Milestone {
	return Milestone{
		ID:      NewID(),
		Title:   title,
		DueDate: dueDate,
	}
}

// Clone returns a deep copy; the milestone slice is never shared.
func (g Goal) Clone() Goal {
	cp := g
	cp.Milestones = append([]Milestone(nil), g.Milestones...)
	return cp
}

// CloneGoals deep-copies a goal collection.
func CloneGoals(goals []Goal) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
