package remote

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Verb is the mirror mutation kind.
type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// Op is one pending mirror mutation. Payload is the full entity record for
// creates and updates; deletes carry only the id.
type Op struct {
	Entity  string
	Verb    Verb
	ID      string
	Payload any
}

// outbox keeps pending ops in arrival order. Delivery is head-of-line
// blocking so the remote always observes mutations in the order they
// happened locally.
type outbox struct {
	mu    sync.Mutex
	queue []Op
}

// Enqueue appends an op to the outbox. In local-only mode the op is
// discarded immediately; the mirror must never cost anything when disabled.
func (m *Mirror) Enqueue(op Op) {
	if m.LocalOnly() {
		return
	}
	m.outbox.mu.Lock()
	m.outbox.queue = append(m.outbox.queue, op)
	m.outbox.mu.Unlock()
}

// QueueLen reports the number of undelivered ops.
func (m *Mirror) QueueLen() int {
	if m == nil {
		return 0
	}
	m.outbox.mu.Lock()
	defer m.outbox.mu.Unlock()
	return len(m.outbox.queue)
}

// Flush delivers queued ops in order, retrying the head with exponential
// backoff. It returns the number of ops delivered; if the head keeps
// failing the remainder stays queued and the head's error is returned.
func (m *Mirror) Flush(ctx context.Context) (int, error) {
	if m.LocalOnly() {
		return 0, nil
	}

	delivered := 0
	for {
		m.outbox.mu.Lock()
		if len(m.outbox.queue) == 0 {
			m.outbox.mu.Unlock()
			return delivered, nil
		}
		head := m.outbox.queue[0]
		m.outbox.mu.Unlock()

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = 200 * time.Millisecond
		policy.MaxElapsedTime = 10 * time.Second

		err := backoff.Retry(func() error {
			return m.deliver(ctx, head)
		}, backoff.WithContext(policy, ctx))
		if err != nil {
			return delivered, fmt.Errorf("remote: deliver %s %s: %w", head.Verb, head.Entity, err)
		}

		m.outbox.mu.Lock()
		m.outbox.queue = m.outbox.queue[1:]
		m.outbox.mu.Unlock()
		delivered++
	}
}

func (m *Mirror) deliver(ctx context.Context, op Op) error {
	switch op.Verb {
	case VerbCreate:
		return m.do(ctx, http.MethodPost, "/"+op.Entity, op.Payload, nil)
	case VerbUpdate:
		return m.do(ctx, http.MethodPut, "/"+op.Entity+"/"+op.ID, op.Payload, nil)
	case VerbDelete:
		return m.do(ctx, http.MethodDelete, "/"+op.Entity+"/"+op.ID, nil, nil)
	}
	return fmt.Errorf("remote: unknown verb %q", op.Verb)
}
