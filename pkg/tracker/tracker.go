// Package tracker owns the authoritative in-memory state of the tracker and
// is the only writer of the persistence layer. Every mutation follows the
// same shape: update the in-memory collection, persist it, then hand a copy
// of the change to the remote outbox.
package tracker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/strive/pkg/model"
	"tableflip.dev/strive/pkg/remote"
	"tableflip.dev/strive/pkg/store"
)

// Service guards the entity collections with a single mutex. Reads hand out
// deep copies so callers can never alias internal state.
type Service struct {
	mu     sync.Mutex
	p      store.Persistence
	mirror *remote.Mirror
	now    func() time.Time

	goals   []model.Goal
	habits  []model.Habit
	journal []model.JournalEntry
	focus   []model.FocusTask
}

// New loads every collection from persistence and normalizes habits for the
// current day: a habit completed on an earlier day has its CompletedToday
// flag cleared while its streak and last-completed date are kept.
func New(p store.Persistence, mirror *remote.Mirror) *Service {
	s := &Service{
		p:       p,
		mirror:  mirror,
		now:     time.Now,
		goals:   p.Goals(),
		habits:  p.Habits(),
		journal: p.Journal(),
		focus:   p.FocusTasks(),
	}
	if s.resetHabitsForToday() {
		s.saveHabits()
	}
	return s
}

// Mirror exposes the remote mirror for health checks and flushes.
func (s *Service) Mirror() *remote.Mirror {
	return s.mirror
}

// resetHabitsForToday clears stale CompletedToday flags. Returns true when
// anything changed.
func (s *Service) resetHabitsForToday() bool {
	today := model.DayStamp(s.now())
	changed := false
	for i := range s.habits {
		if s.habits[i].CompletedToday && s.habits[i].LastCompletedDate != today {
			s.habits[i].CompletedToday = false
			changed = true
		}
	}
	return changed
}

// Persist failures never roll back memory. The in-memory state stays
// authoritative for the life of the process and the next successful save
// writes it out whole.
func (s *Service) saveGoals() {
	if err := s.p.SaveGoals(s.goals); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
}

func (s *Service) saveHabits() {
	if err := s.p.SaveHabits(s.habits); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
}

func (s *Service) saveJournal() {
	if err := s.p.SaveJournal(s.journal); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
}

func (s *Service) saveFocus() {
	if err := s.p.SaveFocusTasks(s.focus); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
}

// Snapshot returns deep copies of every collection, taken under one lock so
// the four slices are mutually consistent.
func (s *Service) Snapshot() ([]model.Goal, []model.Habit, []model.JournalEntry, []model.FocusTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneGoals(s.goals),
		model.CloneHabits(s.habits),
		model.CloneJournal(s.journal),
		model.CloneFocusTasks(s.focus)
}

// ResetAll wipes memory and durable storage.
func (s *Service) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = []model.Goal{}
	s.habits = []model.Habit{}
	s.journal = []model.JournalEntry{}
	s.focus = []model.FocusTask{}
	return s.p.Reset()
}

// ReplaceAll swaps in an entire imported data set. Focus tasks are not part
// of the interchange envelope and are left alone.
func (s *Service) ReplaceAll(goals []model.Goal, habits []model.Habit, journal []model.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = model.CloneGoals(goals)
	s.habits = model.CloneHabits(habits)
	s.journal = model.CloneJournal(journal)
	s.resetHabitsForToday()
	s.saveGoals()
	s.saveHabits()
	s.saveJournal()
}

// AppendGoals merges imported goals after the existing ones.
func (s *Service) AppendGoals(goals []model.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, model.CloneGoals(goals)...)
	s.saveGoals()
}

// AppendHabits merges imported habits after the existing ones.
func (s *Service) AppendHabits(habits []model.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = append(s.habits, model.CloneHabits(habits)...)
	s.saveHabits()
}

// PrependJournal merges imported entries ahead of the existing ones so the
// journal stays newest-first.
func (s *Service) PrependJournal(entries []model.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = append(model.CloneJournal(entries), s.journal...)
	s.saveJournal()
}

// Refresh replaces local goals, habits and journal entries with the remote
// copy. Milestones arrive as their own collection and are folded back into
// their owning goals. Focus tasks are local-only and untouched.
func (s *Service) Refresh(ctx context.Context) error {
	if s.mirror.LocalOnly() {
		return fmt.Errorf("tracker: refresh requires a remote backend")
	}

	goals, err := s.mirror.FetchGoals(ctx)
	if err != nil {
		return err
	}
	milestones, err := s.mirror.FetchMilestones(ctx)
	if err != nil {
		return err
	}
	habits, err := s.mirror.FetchHabits(ctx)
	if err != nil {
		return err
	}
	journal, err := s.mirror.FetchJournal(ctx)
	if err != nil {
		return err
	}

	byGoal := make(map[string][]model.Milestone)
	for _, rec := range milestones {
		byGoal[rec.GoalID] = append(byGoal[rec.GoalID], rec.Milestone)
	}
	for i := range goals {
		ms := byGoal[goals[i].ID]
		if ms == nil {
			ms = []model.Milestone{}
		}
		goals[i].Milestones = ms
	}

	s.ReplaceAll(goals, habits, journal)
	return nil
}
