package model

// FocusStatus is the state of a focus task.
type FocusStatus string

const (
	FocusPending   FocusStatus = "pending"
	FocusActive    FocusStatus = "active"
	FocusCompleted FocusStatus = "completed"
	FocusResting   FocusStatus = "resting"
)

// FocusTask is a Flowtime-style timed work session with an optional single
// rest interval after completion. All times are Unix milliseconds; zero means
// unset. Durations are milliseconds.
type FocusTask struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	StartTime         int64       `json:"startTime"`
	EndTime           int64       `json:"endTime"`
	Duration          int64       `json:"duration"`
	Status            FocusStatus `json:"status"`
	Logs              []string    `json:"logs"`
	Rating            int         `json:"rating"`
	Notes             string      `json:"notes"`
	RestStartTime     int64       `json:"restStartTime"`
	RestEndTime       int64       `json:"restEndTime"`
	RestDuration      int64       `json:"restDuration"`
	SuggestedRestTime int64       `json:"suggestedRestTime"`
	CreatedAt         int64       `json:"createdAt"`
}

// NewFocusTask builds a pending task.
func NewFocusTask(title string) FocusTask {
	return FocusTask{
		ID:        NewID(),
		Title:     title,
		Status:    FocusPending,
		Logs:      []string{},
		CreatedAt: Now(),
	}
}

// Clone returns a deep copy; the log slice is never shared.
func (t FocusTask) Clone() FocusTask {
	cp := t
	cp.Logs = append([]string(nil), t.Logs...)
	return cp
}

// CloneFocusTasks deep-copies a focus task collection.
func CloneFocusTasks(tasks []FocusTask) []FocusTask {
	out := make([]FocusTask, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
