package tracker

import (
	"time"

	"tableflip.dev/strive/pkg/model"
)

// Report is a summary of recent activity inside a lookback window.
type Report struct {
	Window time.Duration `json:"window"`

	FocusSessions int     `json:"focusSessions"`
	FocusedMs     int64   `json:"focusedMs"`
	MeanRating    float64 `json:"meanRating"`

	JournalEntries  int `json:"journalEntries"`
	HabitsDoneToday int `json:"habitsDoneToday"`
	GoalsCompleted  int `json:"goalsCompleted"`
}

// ActivityReport summarizes the window ending now: completed focus work,
// journal volume, today's habit completions and finished goals.
func (s *Service) ActivityReport(window time.Duration) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	since := now.Add(-window).UnixMilli()
	r := Report{Window: window}

	ratings := 0
	for _, t := range s.focus {
		if t.Status != model.FocusCompleted && t.Status != model.FocusResting {
			continue
		}
		if t.EndTime < since {
			continue
		}
		r.FocusSessions++
		r.FocusedMs += t.Duration
		if t.Rating > 0 {
			ratings++
			r.MeanRating += float64(t.Rating)
		}
	}
	if ratings > 0 {
		r.MeanRating /= float64(ratings)
	}

	for _, e := range s.journal {
		if e.CreatedAt >= since {
			r.JournalEntries++
		}
	}
	for _, h := range s.habits {
		if h.CompletedToday {
			r.HabitsDoneToday++
		}
	}
	for _, g := range s.goals {
		if g.Progress >= 100 {
			r.GoalsCompleted++
		}
	}
	return r
}
