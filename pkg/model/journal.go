package model

// JournalEntry is a dated note, optionally linked to a goal. Collections are
// kept newest-first; new entries are prepended.
type JournalEntry struct {
	ID           string `json:"id"`
	CreatedAt    int64  `json:"createdAt"`
	Content      string `json:"content"`
	Mood         string `json:"mood"`
	LinkedGoalID string `json:"linkedGoalId,omitempty"`
}

// NewJournalEntry builds an entry stamped with the current time.
func NewJournalEntry(content, mood, linkedGoalID string) JournalEntry {
	return JournalEntry{
		ID:           NewID(),
		CreatedAt:    Now(),
		Content:      content,
		Mood:         mood,
		LinkedGoalID: linkedGoalID,
	}
}

// CloneJournal copies a journal collection.
func CloneJournal(entries []JournalEntry) []JournalEntry {
	return append([]JournalEntry(nil), entries...)
}
