package tracker

import (
	"tableflip.dev/strive/pkg/model"
	"tableflip.dev/strive/pkg/remote"
)

// Habits returns a copy of every habit.
func (s *Service) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneHabits(s.habits)
}

// Habit looks up one habit by id.
func (s *Service) Habit(id string) (model.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return model.Habit{}, false
}

// AddHabit creates and stores a new habit.
func (s *Service) AddHabit(name, category, linkedGoalID string) model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := model.NewHabit(name, category, linkedGoalID)
	s.habits = append(s.habits, h)
	s.saveHabits()
	s.mirror.Enqueue(remote.Op{Entity: "habits", Verb: remote.VerbCreate, ID: h.ID, Payload: h})
	return h
}

// HabitUpdate carries the fields of a habit update. Nil fields are left as
// they are.
type HabitUpdate struct {
	Name         *string
	Category     *string
	LinkedGoalID *string
}

// UpdateHabit applies the non-nil fields of upd.
func (s *Service) UpdateHabit(id string, upd HabitUpdate) (model.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		h := &s.habits[i]
		if upd.Name != nil {
			h.Name = *upd.Name
		}
		if upd.Category != nil {
			h.Category = *upd.Category
		}
		if upd.LinkedGoalID != nil {
			h.LinkedGoalID = *upd.LinkedGoalID
		}

		s.saveHabits()
		s.mirror.Enqueue(remote.Op{Entity: "habits", Verb: remote.VerbUpdate, ID: id, Payload: *h})
		return *h, true
	}
	return model.Habit{}, false
}

// ToggleHabit flips today's completion. Completing bumps the streak and
// stamps the last-completed date; un-completing decrements the streak but
// leaves the stale date in place, which the next day-reset relies on.
func (s *Service) ToggleHabit(id string) (model.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		h := &s.habits[i]
		if h.CompletedToday {
			h.CompletedToday = false
			if h.Streak > 0 {
				h.Streak--
			}
		} else {
			h.CompletedToday = true
			h.Streak++
			h.LastCompletedDate = model.DayStamp(s.now())
		}

		s.saveHabits()
		s.mirror.Enqueue(remote.Op{Entity: "habits", Verb: remote.VerbUpdate, ID: id, Payload: *h})
		return *h, true
	}
	return model.Habit{}, false
}

// DeleteHabit removes a habit. Unknown ids are a no-op.
func (s *Service) DeleteHabit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			s.saveHabits()
			s.mirror.Enqueue(remote.Op{Entity: "habits", Verb: remote.VerbDelete, ID: id})
			return true
		}
	}
	return false
}
