package juicebottler

import "sync"

// Mailbox is a capacity-1 blocking handoff slot between one producing plant
// and its worker pool. It is a rendezvous, not a buffer: a fast producer
// stalls until a consumer drains the slot, and a fast consumer stalls until
// the producer refills it.
//
// Both kinds of waiters share one condition variable, so every state change
// broadcasts: the side whose predicate now holds wins the re-check, the other
// side re-blocks. That is what prevents missed wakeups with mixed waiters.
type Mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	orange *Orange
	closed bool
}

// NewMailbox returns an empty, open mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put stores o in the slot, blocking while the slot is occupied. Returns
// ErrMailboxClosed if the mailbox has been closed.
func (m *Mailbox) Put(o *Orange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.orange != nil && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return ErrMailboxClosed
	}
	m.orange = o
	m.cond.Broadcast()
	return nil
}

// Get removes and returns the slot's orange, blocking while the slot is
// empty. After Close, Get keeps delivering whatever is still queued; only a
// closed AND empty mailbox returns ErrMailboxClosed.
func (m *Mailbox) Get() (*Orange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.orange == nil && !m.closed {
		m.cond.Wait()
	}
	if m.orange == nil {
		return nil, ErrMailboxClosed
	}
	o := m.orange
	m.orange = nil
	m.cond.Broadcast()
	return o, nil
}

// IsEmpty reports whether the slot currently holds no orange.
func (m *Mailbox) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orange == nil
}

// Close marks the end of production and wakes every blocked waiter. Callers
// must ensure the producer has already stopped; an orange still in the slot
// is delivered before Get starts returning ErrMailboxClosed.
func (m *Mailbox) Close() {
	m.mu.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
}
