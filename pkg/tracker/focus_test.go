package tracker

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/strive/pkg/model"
)

func TestFocusLifecycle(t *testing.T) {
	s := newTestService(t, nil)
	clock := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	s.now = func() time.Time { return clock }

	task := s.AddFocusTask("Draft the proposal")

	task, err := s.StartFocus(task.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if task.StartTime != clock.UnixMilli() {
		t.Fatalf("start time not stamped: %#v", task)
	}
	if active, ok := s.ActiveFocus(); !ok || active.ID != task.ID {
		t.Fatalf("expected the started task to be active, got %#v %v", active, ok)
	}

	if _, err := s.LogFocus(task.ID, "outline done"); err != nil {
		t.Fatalf("log: %v", err)
	}

	clock = clock.Add(40 * time.Minute)
	task, err = s.CompleteFocus(task.ID, "wrapped up", 7, "solid session")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if task.Status != model.FocusCompleted {
		t.Fatalf("expected completed, got %s", task.Status)
	}
	if task.Duration != (40 * time.Minute).Milliseconds() {
		t.Fatalf("duration wrong: %d", task.Duration)
	}
	if task.SuggestedRestTime != (8 * time.Minute).Milliseconds() {
		t.Fatalf("40min of work earns 8min of rest, got %dms", task.SuggestedRestTime)
	}
	if task.Rating != 7 || len(task.Logs) != 2 || task.Logs[1] != "wrapped up" {
		t.Fatalf("rating or logs lost: %#v", task)
	}

	task, err = s.StartRest(task.ID)
	if err != nil {
		t.Fatalf("start rest: %v", err)
	}
	if task.Status != model.FocusResting {
		t.Fatalf("expected resting, got %s", task.Status)
	}

	clock = clock.Add(10 * time.Minute)
	task, err = s.EndRest(task.ID)
	if err != nil {
		t.Fatalf("end rest: %v", err)
	}
	if task.Status != model.FocusCompleted {
		t.Fatalf("expected completed after rest, got %s", task.Status)
	}
	if task.RestDuration != (10 * time.Minute).Milliseconds() {
		t.Fatalf("rest duration wrong: %d", task.RestDuration)
	}

	// The single rest cycle never repeats.
	if _, err := s.StartRest(task.ID); !errors.Is(err, ErrFocusState) {
		t.Fatalf("expected ErrFocusState on second rest, got %v", err)
	}
}

func TestFocusSingleActiveSession(t *testing.T) {
	s := newTestService(t, nil)
	a := s.AddFocusTask("a")
	b := s.AddFocusTask("b")

	if _, err := s.StartFocus(a.ID); err != nil {
		t.Fatalf("start a: %v", err)
	}
	if _, err := s.StartFocus(b.ID); !errors.Is(err, ErrFocusActive) {
		t.Fatalf("expected ErrFocusActive, got %v", err)
	}

	if _, err := s.CompleteFocus(a.ID, "", 3, ""); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	// A completed session no longer blocks a new start.
	if _, err := s.StartFocus(b.ID); err != nil {
		t.Fatalf("start b after a completes: %v", err)
	}
}

func TestFocusSingleRestingSession(t *testing.T) {
	s := newTestService(t, nil)
	a := s.AddFocusTask("a")
	b := s.AddFocusTask("b")

	s.StartFocus(a.ID)
	s.CompleteFocus(a.ID, "", 0, "")
	s.StartFocus(b.ID)
	s.CompleteFocus(b.ID, "", 0, "")

	if _, err := s.StartRest(a.ID); err != nil {
		t.Fatalf("rest a: %v", err)
	}
	if _, err := s.StartRest(b.ID); !errors.Is(err, ErrFocusResting) {
		t.Fatalf("expected ErrFocusResting, got %v", err)
	}
}

func TestFocusStateErrors(t *testing.T) {
	s := newTestService(t, nil)
	task := s.AddFocusTask("t")

	if _, err := s.StartFocus("nope"); !errors.Is(err, ErrFocusNotFound) {
		t.Fatalf("expected ErrFocusNotFound, got %v", err)
	}
	if _, err := s.LogFocus(task.ID, "note"); !errors.Is(err, ErrFocusState) {
		t.Fatalf("logging a pending task: expected ErrFocusState, got %v", err)
	}
	if _, err := s.CompleteFocus(task.ID, "", 3, ""); !errors.Is(err, ErrFocusState) {
		t.Fatalf("completing a pending task: expected ErrFocusState, got %v", err)
	}
	if _, err := s.StartRest(task.ID); !errors.Is(err, ErrFocusState) {
		t.Fatalf("resting a pending task: expected ErrFocusState, got %v", err)
	}
	if _, err := s.EndRest(task.ID); !errors.Is(err, ErrFocusState) {
		t.Fatalf("ending rest on a pending task: expected ErrFocusState, got %v", err)
	}

	s.StartFocus(task.ID)
	if _, err := s.StartFocus(task.ID); !errors.Is(err, ErrFocusActive) {
		t.Fatalf("restarting the active task: expected ErrFocusActive, got %v", err)
	}
}

func TestSuggestedRestPolicy(t *testing.T) {
	tests := []struct {
		work time.Duration
		rest time.Duration
	}{
		{10 * time.Minute, 5 * time.Minute},
		{24*time.Minute + 59*time.Second, 5 * time.Minute},
		{25 * time.Minute, 8 * time.Minute},
		{50 * time.Minute, 8 * time.Minute},
		{51 * time.Minute, 12 * time.Minute},
		{3 * time.Hour, 12 * time.Minute},
	}
	for _, tt := range tests {
		if got := SuggestedRest(tt.work); got != tt.rest {
			t.Errorf("SuggestedRest(%v) = %v, want %v", tt.work, got, tt.rest)
		}
	}
}

func TestRecentFocusTasksNewestFirstCapped(t *testing.T) {
	s := newTestService(t, nil)
	base := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		clock := base.Add(time.Duration(i) * time.Minute)
		s.AddFocusTask("t")
		// CreatedAt comes from the wall clock; pin it for ordering.
		s.mu.Lock()
		s.focus[len(s.focus)-1].CreatedAt = clock.UnixMilli()
		s.mu.Unlock()
	}

	recent := s.RecentFocusTasks(10)
	if len(recent) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i-1].CreatedAt < recent[i].CreatedAt {
			t.Fatal("expected newest-first ordering")
		}
	}
}
