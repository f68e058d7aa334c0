package tracker

import (
	"testing"
	"time"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/model"
)

func iso(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

func TestUpcomingDeadlinesWindows(t *testing.T) {
	s := newTestService(t, nil)
	now := s.now()

	s.AddGoal("in window", category.Career, iso(now, 10))
	s.AddGoal("just overdue", category.Career, iso(now, -7))
	s.AddGoal("too far overdue", category.Career, iso(now, -8))
	s.AddGoal("too far out", category.Career, iso(now, 31))
	s.AddGoal("no deadline", category.Career, "")

	g := s.AddGoal("milestone holder", category.Health, iso(now, 60))
	s.AddMilestone(g.ID, "soon", iso(now, 5))
	s.AddMilestone(g.ID, "too far", iso(now, 15))
	s.AddMilestone(g.ID, "too stale", iso(now, -4))
	g, _ = s.AddMilestone(g.ID, "done", iso(now, 2))
	s.ToggleMilestone(g.ID, g.Milestones[3].ID)

	got := s.UpcomingDeadlines()
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d: %#v", len(got), got)
	}
	// Sorted soonest first: overdue goal, milestone at +5, goal at +10.
	if got[0].GoalTitle != "just overdue" || got[0].DaysLeft != -7 {
		t.Fatalf("unexpected first record: %#v", got[0])
	}
	if got[1].Type != model.DeadlineMilestone || got[1].MilestoneTitle != "soon" {
		t.Fatalf("unexpected second record: %#v", got[1])
	}
	if got[2].GoalTitle != "in window" || got[2].Type != model.DeadlineGoal {
		t.Fatalf("unexpected third record: %#v", got[2])
	}
}

func TestTodaysPriorities(t *testing.T) {
	s := newTestService(t, nil)
	now := s.now()

	// Milestone-less goal inside the two week window becomes a synthetic item.
	s.AddGoal("quick win", category.Finance, iso(now, 3))

	// A finished milestone-less goal is never a priority.
	done := s.AddGoal("done", category.Finance, iso(now, 2))
	hundred := 100
	s.UpdateGoal(done.ID, GoalUpdate{Progress: &hundred})

	// Milestone-less goal outside the window is skipped.
	s.AddGoal("later", category.Finance, iso(now, 20))

	g := s.AddGoal("big goal", category.Career, iso(now, 40))
	s.AddMilestone(g.ID, "due tomorrow", iso(now, 1))
	s.AddMilestone(g.ID, "due next week", iso(now, 7))
	s.AddMilestone(g.ID, "not yet", iso(now, 8))
	g, _ = s.AddMilestone(g.ID, "already done", iso(now, 1))
	s.ToggleMilestone(g.ID, g.Milestones[3].ID)

	got := s.TodaysPriorities()
	if len(got) != 3 {
		t.Fatalf("expected 3 priorities, got %d: %#v", len(got), got)
	}
	if got[0].Title != "due tomorrow" || got[0].MilestoneID == "" {
		t.Fatalf("unexpected first priority: %#v", got[0])
	}
	if got[1].Title != "Finish: quick win" || got[1].Type != model.DeadlineGoal {
		t.Fatalf("unexpected second priority: %#v", got[1])
	}
	if got[2].Title != "due next week" {
		t.Fatalf("unexpected third priority: %#v", got[2])
	}
}

func TestTodaysPrioritiesTruncatesToFive(t *testing.T) {
	s := newTestService(t, nil)
	now := s.now()

	g := s.AddGoal("overloaded", category.Learning, iso(now, 30))
	for i := 0; i < 8; i++ {
		s.AddMilestone(g.ID, "task", iso(now, 1))
	}

	if got := s.TodaysPriorities(); len(got) != 5 {
		t.Fatalf("expected at most 5 priorities, got %d", len(got))
	}
}

func TestCategoryProgress(t *testing.T) {
	s := newTestService(t, nil)

	a := s.AddGoal("a", category.Health, "")
	b := s.AddGoal("b", category.Health, "")
	ten, twentyFive := 10, 25
	s.UpdateGoal(a.ID, GoalUpdate{Progress: &ten})
	s.UpdateGoal(b.ID, GoalUpdate{Progress: &twentyFive})

	progress := s.CategoryProgress()
	// (10+25)/2 = 17.5 rounds to 18.
	if progress[category.Health] != 18 {
		t.Fatalf("expected Health 18, got %d", progress[category.Health])
	}
	if progress[category.Finance] != 0 {
		t.Fatalf("empty category must report 0, got %d", progress[category.Finance])
	}
}

func TestGoalsByCategory(t *testing.T) {
	s := newTestService(t, nil)
	s.AddGoal("a", category.Health, "")
	s.AddGoal("b", category.Finance, "")
	s.AddGoal("c", category.Health, "")

	got := s.GoalsByCategory(category.Health)
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "c" {
		t.Fatalf("unexpected goals: %#v", got)
	}
}
