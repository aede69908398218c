package impl

import (
	"context"
	"sync"
)

// job is one unit of work executed by the session worker.
type job func(ctx context.Context)

// mailbox is an unbounded FIFO drained by a single consumer. Posting never
// blocks, so identity provider callbacks can enqueue while holding their own locks.
type mailbox struct {
	mu     sync.Mutex
	queue  []job
	closed bool
	signal chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

// post appends j and reports whether it was accepted.
func (m *mailbox) post(j job) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()

		return false
	}
	m.queue = append(m.queue, j)
	m.mu.Unlock()

	m.wake()

	return true
}

// next blocks until a job is available. It returns false once the mailbox is
// closed and drained, or when ctx is done.
func (m *mailbox) next(ctx context.Context) (job, bool) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			j := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			m.mu.Unlock()

			return j, true
		}
		closed := m.closed
		m.mu.Unlock()

		if closed {
			return nil, false
		}

		select {
		case <-m.signal:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// close stops accepting jobs. Already queued jobs are still handed out by next.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wake()
}

func (m *mailbox) depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queue)
}

func (m *mailbox) wake() {
	select {
	case m.signal <- struct{}{}:
	default:
	}
}
