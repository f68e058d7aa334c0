package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/strive/pkg/model"
)

// Collection keys. Each entity collection lives under a single key as a
// JSON-encoded array; focus tasks keep their own namespace.
const (
	keyGoals   = "goals"
	keyHabits  = "habits"
	keyJournal = "journal"
	keyFocus   = "focus-tasks"
)

// Persistence defines the durable key-value contract for the tracker's
// entity collections. Loads never fail: missing or corrupt data comes back
// as an empty collection.
type Persistence interface {
	Goals() []model.Goal
	Habits() []model.Habit
	Journal() []model.JournalEntry
	FocusTasks() []model.FocusTask

	SaveGoals([]model.Goal) error
	SaveHabits([]model.Habit) error
	SaveJournal([]model.JournalEntry) error
	SaveFocusTasks([]model.FocusTask) error

	Reset() error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// read unmarshals the collection stored under key into out. Absent or
// unreadable data leaves out untouched; a decode failure is reported on
// stderr and otherwise treated the same way, so callers always start from
// usable defaults.
func (p *persistence) read(key string, out any) {
	val, err := p.d.Read(key)
	if err != nil {
		return
	}
	if err := json.Unmarshal(val, out); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
	}
}

func (p *persistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Goals() []model.Goal {
	out := []model.Goal{}
	p.read(keyGoals, &out)
	return out
}

func (p *persistence) Habits() []model.Habit {
	out := []model.Habit{}
	p.read(keyHabits, &out)
	return out
}

func (p *persistence) Journal() []model.JournalEntry {
	out := []model.JournalEntry{}
	p.read(keyJournal, &out)
	return out
}

func (p *persistence) FocusTasks() []model.FocusTask {
	out := []model.FocusTask{}
	p.read(keyFocus, &out)
	return out
}

func (p *persistence) SaveGoals(goals []model.Goal) error {
	return p.write(keyGoals, goals)
}

func (p *persistence) SaveHabits(habits []model.Habit) error {
	return p.write(keyHabits, habits)
}

func (p *persistence) SaveJournal(entries []model.JournalEntry) error {
	return p.write(keyJournal, entries)
}

func (p *persistence) SaveFocusTasks(tasks []model.FocusTask) error {
	return p.write(keyFocus, tasks)
}

// Reset erases every collection key. Missing keys are fine.
func (p *persistence) Reset() error {
	for _, key := range []string{keyGoals, keyHabits, keyJournal, keyFocus} {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: erase %s: %w", key, err)
		}
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
