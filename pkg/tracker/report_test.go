package tracker

import (
	"testing"
	"time"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/model"
)

func TestActivityReport(t *testing.T) {
	s := newTestService(t, nil)
	now := s.now()

	s.mu.Lock()
	s.focus = []model.FocusTask{
		{ID: "f1", Status: model.FocusCompleted, EndTime: now.Add(-2 * time.Hour).UnixMilli(),
			Duration: (45 * time.Minute).Milliseconds(), Rating: 4},
		{ID: "f2", Status: model.FocusCompleted, EndTime: now.Add(-3 * 24 * time.Hour).UnixMilli(),
			Duration: (30 * time.Minute).Milliseconds(), Rating: 2},
		// Outside the window.
		{ID: "f3", Status: model.FocusCompleted, EndTime: now.Add(-10 * 24 * time.Hour).UnixMilli(),
			Duration: (90 * time.Minute).Milliseconds(), Rating: 5},
		// Never completed.
		{ID: "f4", Status: model.FocusPending},
	}
	s.journal = []model.JournalEntry{
		{ID: "j1", CreatedAt: now.Add(-time.Hour).UnixMilli()},
		{ID: "j2", CreatedAt: now.Add(-9 * 24 * time.Hour).UnixMilli()},
	}
	s.habits = []model.Habit{
		{ID: "h1", CompletedToday: true},
		{ID: "h2"},
	}
	s.mu.Unlock()

	done := s.AddGoal("done", category.Career, "")
	hundred := 100
	s.UpdateGoal(done.ID, GoalUpdate{Progress: &hundred})
	s.AddGoal("in progress", category.Career, "")

	r := s.ActivityReport(7 * 24 * time.Hour)
	if r.FocusSessions != 2 {
		t.Fatalf("expected 2 focus sessions in window, got %d", r.FocusSessions)
	}
	if r.FocusedMs != (75 * time.Minute).Milliseconds() {
		t.Fatalf("expected 75min focused, got %dms", r.FocusedMs)
	}
	if r.MeanRating != 3 {
		t.Fatalf("expected mean rating 3, got %v", r.MeanRating)
	}
	if r.JournalEntries != 1 || r.HabitsDoneToday != 1 || r.GoalsCompleted != 1 {
		t.Fatalf("unexpected report: %#v", r)
	}
}
