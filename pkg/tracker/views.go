package tracker

import (
	"math"
	"sort"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/deadline"
	"tableflip.dev/strive/pkg/model"
)

// Deadline windows for the derived views, in days relative to today.
// Goal-level deadlines stay visible a week past due; milestone-level ones
// only three days.
const (
	goalWindowPast    = -7
	goalWindowFuture  = 30
	mileWindowPast    = -3
	mileWindowFuture  = 14
	priorityMilestone = 7
	priorityGoal      = 14
	priorityLimit     = 5
)

// UpcomingDeadlines scans every goal and incomplete milestone for deadlines
// inside their display windows and returns them soonest first.
func (s *Service) UpcomingDeadlines() []model.UpcomingDeadline {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := []model.UpcomingDeadline{}
	for _, g := range s.goals {
		if days := deadline.DaysLeftAt(g.Deadline, now); days >= goalWindowPast && days <= goalWindowFuture {
			out = append(out, model.UpcomingDeadline{
				GoalID:     g.ID,
				GoalTitle:  g.Title,
				Deadline:   g.Deadline,
				DaysLeft:   days,
				Progress:   g.Progress,
				ColorClass: g.ColorClass,
				Type:       model.DeadlineGoal,
			})
		}
		for _, ms := range g.Milestones {
			if ms.Completed || ms.DueDate == "" {
				continue
			}
			if days := deadline.DaysLeftAt(ms.DueDate, now); days >= mileWindowPast && days <= mileWindowFuture {
				out = append(out, model.UpcomingDeadline{
					GoalID:         g.ID,
					GoalTitle:      g.Title,
					Deadline:       ms.DueDate,
					DaysLeft:       days,
					Progress:       g.Progress,
					ColorClass:     g.ColorClass,
					Type:           model.DeadlineMilestone,
					MilestoneTitle: ms.Title,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

// TodaysPriorities picks at most five items to work on: incomplete
// milestones due within a week, plus a synthetic finish-the-goal item for
// milestone-less unfinished goals due within two weeks. Soonest first.
func (s *Service) TodaysPriorities() []model.Priority {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := []model.Priority{}
	for _, g := range s.goals {
		if len(g.Milestones) == 0 {
			if g.Progress >= 100 {
				continue
			}
			if days := deadline.DaysLeftAt(g.Deadline, now); days <= priorityGoal {
				out = append(out, model.Priority{
					GoalID:    g.ID,
					GoalTitle: g.Title,
					Title:     "Finish: " + g.Title,
					DueDate:   g.Deadline,
					DaysLeft:  days,
					Type:      model.DeadlineGoal,
				})
			}
			continue
		}
		for _, ms := range g.Milestones {
			if ms.Completed || ms.DueDate == "" {
				continue
			}
			if days := deadline.DaysLeftAt(ms.DueDate, now); days <= priorityMilestone {
				out = append(out, model.Priority{
					GoalID:      g.ID,
					GoalTitle:   g.Title,
					Title:       ms.Title,
					DueDate:     ms.DueDate,
					DaysLeft:    days,
					Type:        model.DeadlineMilestone,
					MilestoneID: ms.ID,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	if len(out) > priorityLimit {
		out = out[:priorityLimit]
	}
	return out
}

// GoalsByCategory returns copies of the goals in one category, in insertion
// order.
func (s *Service) GoalsByCategory(cat category.Category) []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Goal{}
	for _, g := range s.goals {
		if g.Category == cat {
			out = append(out, g.Clone())
		}
	}
	return out
}

// CategoryProgress computes the rounded mean progress per category. A
// category with no goals reports zero.
func (s *Service) CategoryProgress() map[category.Category]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := map[category.Category]int{}
	counts := map[category.Category]int{}
	for _, g := range s.goals {
		sums[g.Category] += g.Progress
		counts[g.Category]++
	}

	out := map[category.Category]int{}
	for _, cat := range category.All() {
		if counts[cat] == 0 {
			out[cat] = 0
			continue
		}
		out[cat] = int(math.Round(float64(sums[cat]) / float64(counts[cat])))
	}
	return out
}
