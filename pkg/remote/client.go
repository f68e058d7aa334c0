// Package remote implements the optional best-effort mirror of local state
// to an HTTP backend. Local state is always authoritative; everything here
// is allowed to fail and says so with an error, never with a panic.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/strive/pkg/model"
)

// Config describes the mirror backend. A zero Config (or Enabled=false)
// means local-only mode: every call is a cheap no-op.
type Config struct {
	URL     string
	Enabled bool
	Timeout time.Duration
}

const defaultTimeout = 5 * time.Second

// Mirror is an HTTP client for the per-entity REST endpoints plus an
// in-order outbox of pending mutations (see outbox.go).
type Mirror struct {
	cfg    Config
	client *http.Client

	outbox outbox
}

// New builds a Mirror. The per-request timeout is bounded so a hung network
// call cannot stall the outbox indefinitely.
func New(cfg Config) *Mirror {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Mirror{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// LocalOnly reports whether the mirror is disabled or unconfigured.
func (m *Mirror) LocalOnly() bool {
	return m == nil || !m.cfg.Enabled || m.cfg.URL == ""
}

// Healthy polls the healthz endpoint. Local-only mirrors are always healthy.
func (m *Mirror) Healthy(ctx context.Context) bool {
	if m.LocalOnly() {
		return true
	}
	return m.do(ctx, http.MethodGet, "/healthz", nil, nil) == nil
}

// do issues one JSON request. A non-2xx status is a plain failure; there is
// no finer-grained error taxonomy for the mirror.
func (m *Mirror) do(ctx context.Context, method, path string, body, out any) error {
	url := strings.TrimRight(m.cfg.URL, "/") + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote: %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// MilestoneRecord is the wire shape of a milestone, which carries its owning
// goal id explicitly because the remote keeps milestones in their own table.
type MilestoneRecord struct {
	model.Milestone
	GoalID string `json:"goalId"`
}

// FetchGoals lists the remote goal collection (without milestones).
func (m *Mirror) FetchGoals(ctx context.Context) ([]model.Goal, error) {
	var out []model.Goal
	if err := m.do(ctx, http.MethodGet, "/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchMilestones lists every remote milestone.
func (m *Mirror) FetchMilestones(ctx context.Context) ([]MilestoneRecord, error) {
	var out []MilestoneRecord
	if err := m.do(ctx, http.MethodGet, "/milestones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchHabits lists the remote habit collection.
func (m *Mirror) FetchHabits(ctx context.Context) ([]model.Habit, error) {
	var out []model.Habit
	if err := m.do(ctx, http.MethodGet, "/habits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchJournal lists the remote journal collection.
func (m *Mirror) FetchJournal(ctx context.Context) ([]model.JournalEntry, error) {
	var out []model.JournalEntry
	if err := m.do(ctx, http.MethodGet, "/journal", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MigrateAll bulk-pushes local state to the remote: each goal, then its
// milestones, then habits, then journal entries. The first failure aborts
// the migration; already-pushed records are left in place.
func (m *Mirror) MigrateAll(ctx context.Context, goals []model.Goal, habits []model.Habit, journal []model.JournalEntry) error {
	if m.LocalOnly() {
		return fmt.Errorf("remote: cannot migrate in local-only mode")
	}

	for _, g := range goals {
		bare := g
		bare.Milestones = nil
		if err := m.do(ctx, http.MethodPost, "/goals", bare, nil); err != nil {
			return err
		}
		for _, ms := range g.Milestones {
			rec := MilestoneRecord{Milestone: ms, GoalID: g.ID}
			if err := m.do(ctx, http.MethodPost, "/milestones", rec, nil); err != nil {
				return err
			}
		}
	}
	for _, h := range habits {
		if err := m.do(ctx, http.MethodPost, "/habits", h, nil); err != nil {
			return err
		}
	}
	for _, e := range journal {
		if err := m.do(ctx, http.MethodPost, "/journal", e, nil); err != nil {
			return err
		}
	}
	return nil
}
