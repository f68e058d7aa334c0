package tracker

import (
	"tableflip.dev/strive/pkg/model"
	"tableflip.dev/strive/pkg/remote"
)

// Journal returns a copy of every entry, newest first.
func (s *Service) Journal() []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneJournal(s.journal)
}

// AddJournalEntry creates a new entry at the head of the journal.
func (s *Service) AddJournalEntry(content, mood, linkedGoalID string) model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := model.NewJournalEntry(content, mood, linkedGoalID)
	s.journal = append([]model.JournalEntry{e}, s.journal...)
	s.saveJournal()
	s.mirror.Enqueue(remote.Op{Entity: "journal", Verb: remote.VerbCreate, ID: e.ID, Payload: e})
	return e
}

// JournalUpdate carries the fields of a journal entry update. Nil fields
// are left as they are.
type JournalUpdate struct {
	Content      *string
	Mood         *string
	LinkedGoalID *string
}

// UpdateJournalEntry applies the non-nil fields of upd.
func (s *Service) UpdateJournalEntry(id string, upd JournalUpdate) (model.JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.journal {
		if s.journal[i].ID != id {
			continue
		}
		e := &s.journal[i]
		if upd.Content != nil {
			e.Content = *upd.Content
		}
		if upd.Mood != nil {
			e.Mood = *upd.Mood
		}
		if upd.LinkedGoalID != nil {
			e.LinkedGoalID = *upd.LinkedGoalID
		}

		s.saveJournal()
		s.mirror.Enqueue(remote.Op{Entity: "journal", Verb: remote.VerbUpdate, ID: id, Payload: *e})
		return *e, true
	}
	return model.JournalEntry{}, false
}

// DeleteJournalEntry removes an entry. Unknown ids are a no-op.
func (s *Service) DeleteJournalEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.journal {
		if s.journal[i].ID == id {
			s.journal = append(s.journal[:i], s.journal[i+1:]...)
			s.saveJournal()
			s.mirror.Enqueue(remote.Op{Entity: "journal", Verb: remote.VerbDelete, ID: id})
			return true
		}
	}
	return false
}
