package tracker

import (
	"errors"
	"sort"
	"time"

	"tableflip.dev/strive/pkg/model"
)

// Focus session state machine errors. The lifecycle is pending -> active ->
// completed, with one optional completed -> resting -> completed rest cycle.
// At most one task may be active, and at most one resting, at a time.
var (
	ErrFocusNotFound = errors.New("tracker: no such focus task")
	ErrFocusActive   = errors.New("tracker: another focus task is already active")
	ErrFocusResting  = errors.New("tracker: another focus task is already resting")
	ErrFocusState    = errors.New("tracker: focus task is not in a state that allows this")
)

// FocusTasks returns a copy of every focus task.
func (s *Service) FocusTasks() []model.FocusTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneFocusTasks(s.focus)
}

// RecentFocusTasks returns up to limit tasks, newest first.
func (s *Service) RecentFocusTasks(limit int) []model.FocusTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := model.CloneFocusTasks(s.focus)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ActiveFocus returns the running session, if any.
func (s *Service) ActiveFocus() (model.FocusTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.focus {
		if s.focus[i].Status == model.FocusActive {
			return s.focus[i].Clone(), true
		}
	}
	return model.FocusTask{}, false
}

// AddFocusTask queues a new pending session. Focus tasks are local-only and
// never mirrored.
func (s *Service) AddFocusTask(title string) model.FocusTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.NewFocusTask(title)
	s.focus = append(s.focus, t)
	s.saveFocus()
	return t.Clone()
}

// StartFocus begins a pending session. Only one session may run at a time.
func (s *Service) StartFocus(id string) (model.FocusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.focus {
		if s.focus[i].Status == model.FocusActive {
			return model.FocusTask{}, ErrFocusActive
		}
	}

	t := s.findFocus(id)
	if t == nil {
		return model.FocusTask{}, ErrFocusNotFound
	}
	if t.Status != model.FocusPending {
		return model.FocusTask{}, ErrFocusState
	}
	t.Status = model.FocusActive
	t.StartTime = s.now().UnixMilli()

	s.saveFocus()
	return t.Clone(), nil
}

// LogFocus appends a note to the running session.
func (s *Service) LogFocus(id, note string) (model.FocusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findFocus(id)
	if t == nil {
		return model.FocusTask{}, ErrFocusNotFound
	}
	if t.Status != model.FocusActive {
		return model.FocusTask{}, ErrFocusState
	}
	t.Logs = append(t.Logs, note)

	s.saveFocus()
	return t.Clone(), nil
}

// CompleteFocus ends the work interval: records its duration, the final log
// line if any, the 1-10 rating and notes, and precomputes the suggested
// rest length for a later rest cycle.
func (s *Service) CompleteFocus(id, log string, rating int, notes string) (model.FocusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findFocus(id)
	if t == nil {
		return model.FocusTask{}, ErrFocusNotFound
	}
	if t.Status != model.FocusActive || t.StartTime == 0 {
		return model.FocusTask{}, ErrFocusState
	}
	t.EndTime = s.now().UnixMilli()
	t.Duration = t.EndTime - t.StartTime
	if log != "" {
		t.Logs = append(t.Logs, log)
	}
	t.Rating = clampRating(rating)
	t.Notes = notes
	t.Status = model.FocusCompleted
	t.SuggestedRestTime = SuggestedRest(time.Duration(t.Duration) * time.Millisecond).Milliseconds()

	s.saveFocus()
	return t.Clone(), nil
}

// StartRest opens the single rest interval after a completed session. Only
// one session may rest at a time and a session never rests twice.
func (s *Service) StartRest(id string) (model.FocusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.focus {
		if s.focus[i].Status == model.FocusResting {
			return model.FocusTask{}, ErrFocusResting
		}
	}

	t := s.findFocus(id)
	if t == nil {
		return model.FocusTask{}, ErrFocusNotFound
	}
	if t.Status != model.FocusCompleted || t.RestStartTime != 0 {
		return model.FocusTask{}, ErrFocusState
	}
	t.Status = model.FocusResting
	t.RestStartTime = s.now().UnixMilli()

	s.saveFocus()
	return t.Clone(), nil
}

// EndRest closes the rest interval and returns the session to completed.
func (s *Service) EndRest(id string) (model.FocusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findFocus(id)
	if t == nil {
		return model.FocusTask{}, ErrFocusNotFound
	}
	if t.Status != model.FocusResting {
		return model.FocusTask{}, ErrFocusState
	}
	t.RestEndTime = s.now().UnixMilli()
	t.RestDuration = t.RestEndTime - t.RestStartTime
	t.Status = model.FocusCompleted

	s.saveFocus()
	return t.Clone(), nil
}

// DeleteFocusTask removes a session regardless of its state.
func (s *Service) DeleteFocusTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.focus {
		if s.focus[i].ID == id {
			s.focus = append(s.focus[:i], s.focus[i+1:]...)
			s.saveFocus()
			return true
		}
	}
	return false
}

func (s *Service) findFocus(id string) *model.FocusTask {
	for i := range s.focus {
		if s.focus[i].ID == id {
			return &s.focus[i]
		}
	}
	return nil
}

func clampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > 10 {
		return 10
	}
	return rating
}

// SuggestedRest maps a work duration to a rest length: short sessions under
// 25 minutes earn 5, sessions up to 50 minutes earn 8, longer ones earn 12.
func SuggestedRest(work time.Duration) time.Duration {
	switch {
	case work < 25*time.Minute:
		return 5 * time.Minute
	case work <= 50*time.Minute:
		return 8 * time.Minute
	default:
		return 12 * time.Minute
	}
}
