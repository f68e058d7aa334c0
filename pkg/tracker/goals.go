package tracker

import (
	"math"

	"tableflip.dev/strive/pkg/category"
	"tableflip.dev/strive/pkg/model"
	"tableflip.dev/strive/pkg/remote"
)

// GoalUpdate carries the fields of a goal update. Nil fields are left as
// they are.
type GoalUpdate struct {
	Title    *string
	Category *category.Category
	Deadline *string
	Progress *int
	Image    *string
	Notes    *string
}

// Goals returns a copy of every goal.
func (s *Service) Goals() []model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneGoals(s.goals)
}

// Goal looks up one goal by id.
func (s *Service) Goal(id string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			return s.goals[i].Clone(), true
		}
	}
	return model.Goal{}, false
}

// AddGoal creates and stores a new goal.
func (s *Service) AddGoal(title string, cat category.Category, deadline string) model.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := model.NewGoal(title, cat, deadline)
	s.goals = append(s.goals, g)
	s.saveGoals()
	s.enqueueGoal(remote.VerbCreate, g)
	return g.Clone()
}

// UpdateGoal applies the non-nil fields of upd. Once a goal has milestones
// its progress is derived from them, so a manual progress value is
// recomputed away.
func (s *Service) UpdateGoal(id string, upd GoalUpdate) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findGoal(id)
	if g == nil {
		return model.Goal{}, false
	}
	if upd.Title != nil {
		g.Title = *upd.Title
	}
	if upd.Category != nil {
		g.Category = *upd.Category
		g.ColorClass = upd.Category.ColorClass()
	}
	if upd.Deadline != nil {
		g.Deadline = *upd.Deadline
	}
	if upd.Progress != nil {
		g.Progress = model.ClampProgress(*upd.Progress)
	}
	if upd.Image != nil {
		g.Image = *upd.Image
	}
	if upd.Notes != nil {
		g.Notes = *upd.Notes
	}
	recomputeProgress(g)

	s.saveGoals()
	s.enqueueGoal(remote.VerbUpdate, *g)
	return g.Clone(), true
}

// DeleteGoal removes a goal. Unknown ids are a no-op.
func (s *Service) DeleteGoal(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.saveGoals()
			s.mirror.Enqueue(remote.Op{Entity: "goals", Verb: remote.VerbDelete, ID: id})
			return true
		}
	}
	return false
}

// AddMilestone appends a milestone to a goal and re-derives the goal's
// progress.
func (s *Service) AddMilestone(goalID, title, dueDate string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findGoal(goalID)
	if g == nil {
		return model.Goal{}, false
	}
	ms := model.NewMilestone(title, dueDate)
	g.Milestones = append(g.Milestones, ms)
	recomputeProgress(g)

	s.saveGoals()
	s.mirror.Enqueue(remote.Op{
		Entity:  "milestones",
		Verb:    remote.VerbCreate,
		ID:      ms.ID,
		Payload: remote.MilestoneRecord{Milestone: ms, GoalID: goalID},
	})
	return g.Clone(), true
}

// MilestoneUpdate carries the fields of a milestone update. Nil fields are
// left as they are.
type MilestoneUpdate struct {
	Title   *string
	DueDate *string
}

// UpdateMilestone applies the non-nil fields of upd to a milestone.
func (s *Service) UpdateMilestone(goalID, milestoneID string, upd MilestoneUpdate) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findGoal(goalID)
	if g == nil {
		return model.Goal{}, false
	}
	for i := range g.Milestones {
		if g.Milestones[i].ID != milestoneID {
			continue
		}
		if upd.Title != nil {
			g.Milestones[i].Title = *upd.Title
		}
		if upd.DueDate != nil {
			g.Milestones[i].DueDate = *upd.DueDate
		}

		s.saveGoals()
		s.mirror.Enqueue(remote.Op{
			Entity:  "milestones",
			Verb:    remote.VerbUpdate,
			ID:      milestoneID,
			Payload: remote.MilestoneRecord{Milestone: g.Milestones[i], GoalID: goalID},
		})
		return g.Clone(), true
	}
	return model.Goal{}, false
}

// ToggleMilestone flips a milestone's completion and re-derives the goal's
// progress from the completed fraction.
func (s *Service) ToggleMilestone(goalID, milestoneID string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findGoal(goalID)
	if g == nil {
		return model.Goal{}, false
	}
	for i := range g.Milestones {
		if g.Milestones[i].ID != milestoneID {
			continue
		}
		g.Milestones[i].Completed = !g.Milestones[i].Completed
		recomputeProgress(g)

		s.saveGoals()
		s.mirror.Enqueue(remote.Op{
			Entity:  "milestones",
			Verb:    remote.VerbUpdate,
			ID:      milestoneID,
			Payload: remote.MilestoneRecord{Milestone: g.Milestones[i], GoalID: goalID},
		})
		return g.Clone(), true
	}
	return model.Goal{}, false
}

// DeleteMilestone removes a milestone from its goal. The goal's progress is
// re-derived from whatever milestones remain; removing the last one leaves
// the progress value as it was.
func (s *Service) DeleteMilestone(goalID, milestoneID string) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findGoal(goalID)
	if g == nil {
		return model.Goal{}, false
	}
	for i := range g.Milestones {
		if g.Milestones[i].ID != milestoneID {
			continue
		}
		g.Milestones = append(g.Milestones[:i], g.Milestones[i+1:]...)
		recomputeProgress(g)

		s.saveGoals()
		s.mirror.Enqueue(remote.Op{Entity: "milestones", Verb: remote.VerbDelete, ID: milestoneID})
		return g.Clone(), true
	}
	return model.Goal{}, false
}

// findGoal returns a pointer into s.goals. Callers hold s.mu.
func (s *Service) findGoal(id string) *model.Goal {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return &s.goals[i]
		}
	}
	return nil
}

// recomputeProgress derives progress as the rounded completed percentage of
// the goal's milestones. Goals without milestones keep manual progress.
func recomputeProgress(g *model.Goal) {
	if len(g.Milestones) == 0 {
		return
	}
	completed := 0
	for _, ms := range g.Milestones {
		if ms.Completed {
			completed++
		}
	}
	g.Progress = int(math.Round(100 * float64(completed) / float64(len(g.Milestones))))
}

// enqueueGoal mirrors a goal mutation without its milestones; the remote
// keeps those in their own collection.
func (s *Service) enqueueGoal(verb remote.Verb, g model.Goal) {
	bare := g
	bare.Milestones = nil
	s.mirror.Enqueue(remote.Op{Entity: "goals", Verb: verb, ID: g.ID, Payload: bare})
}
