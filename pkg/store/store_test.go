package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/model"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Remote() RemoteConfig {
	return RemoteConfig{}
}

func TestRoundTripCollections(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	goal := model.NewGoal("Ship the garden shed", category.SideProject, "2025-10-01")
	goal.Milestones = append(goal.Milestones, model.NewMilestone("Pour foundation", "2025-09-01"))
	if err := p.SaveGoals([]model.Goal{goal}); err != nil {
		t.Fatalf("save goals: %v", err)
	}

	habit := model.NewHabit("Stretch", "Health", "")
	if err := p.SaveHabits([]model.Habit{habit}); err != nil {
		t.Fatalf("save habits: %v", err)
	}

	entry := model.NewJournalEntry("long day", "🙂", goal.ID)
	if err := p.SaveJournal([]model.JournalEntry{entry}); err != nil {
		t.Fatalf("save journal: %v", err)
	}

	task := model.NewFocusTask("Write report")
	if err := p.SaveFocusTasks([]model.FocusTask{task}); err != nil {
		t.Fatalf("save focus tasks: %v", err)
	}

	goals := p.Goals()
	if len(goals) != 1 || goals[0].ID != goal.ID {
		t.Fatalf("unexpected goals after reload: %#v", goals)
	}
	if len(goals[0].Milestones) != 1 || goals[0].Milestones[0].Title != "Pour foundation" {
		t.Fatalf("milestones did not survive reload: %#v", goals[0].Milestones)
	}
	if habits := p.Habits(); len(habits) != 1 || habits[0].Name != "Stretch" {
		t.Fatalf("unexpected habits after reload: %#v", habits)
	}
	if journal := p.Journal(); len(journal) != 1 || journal[0].Content != "long day" {
		t.Fatalf("unexpected journal after reload: %#v", journal)
	}
	if tasks := p.FocusTasks(); len(tasks) != 1 || tasks[0].Status != model.FocusPending {
		t.Fatalf("unexpected focus tasks after reload: %#v", tasks)
	}
}

func TestMissingAndCorruptDataLoadAsDefaults(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if goals := p.Goals(); len(goals) != 0 {
		t.Fatalf("expected no goals, got %d", len(goals))
	}

	if err := os.WriteFile(filepath.Join(base, "goals"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt goals: %v", err)
	}
	if goals := p.Goals(); len(goals) != 0 {
		t.Fatalf("expected corrupt goals to load as empty, got %d", len(goals))
	}
}

func TestResetErasesEverything(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	if err := p.SaveGoals([]model.Goal{model.NewGoal("g", category.Other, "")}); err != nil {
		t.Fatalf("save goals: %v", err)
	}
	if err := p.SaveFocusTasks([]model.FocusTask{model.NewFocusTask("t")}); err != nil {
		t.Fatalf("save focus tasks: %v", err)
	}

	if err := p.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(p.Goals()) != 0 || len(p.FocusTasks()) != 0 {
		t.Fatal("expected all collections empty after reset")
	}
	// A second reset over a now-empty store must also succeed.
	if err := p.Reset(); err != nil {
		t.Fatalf("second reset: %v", err)
	}
}

func TestWatchEmitsCollectionChanges(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveHabits([]model.Habit{model.NewHabit("Read", "Learning", "")}); err != nil {
		t.Fatalf("save habits: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStoreInvalidated {
				return
			}
			if evt.Type == EventCollectionChanged {
				if evt.Collection != "habits" {
					t.Fatalf("expected collection 'habits', got %q", evt.Collection)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for collection change event")
		}
	}
}
