package juicebottler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Status represents the current lifecycle state of a worker or plant.
type Status string

const (
	// StatusRunning means the goroutine is active.
	StatusRunning Status = "running"
	// StatusStopped means the goroutine is not running (never started or exited).
	StatusStopped Status = "stopped"
)

// worker is a consumer bound to one plant's mailbox. It pulls one orange at a
// time, drives it to the bottling checkpoint, and reports the completion back
// to the plant. The Plant owns its workers; the type is not exposed.
type worker struct {
	name    string
	mailbox *Mailbox
	report  func() // called exactly once per completed orange
	log     *slog.Logger

	// accepting is the cooperative stop flag: flipped by stop(), read at the
	// top of every loop iteration. It never pre-empts a blocked Get.
	accepting atomic.Bool

	mu     sync.Mutex
	status Status
	done   chan struct{}
}

// newWorker creates a stopped worker draining mailbox and reporting
// completions through report.
func newWorker(name string, mailbox *Mailbox, report func(), log *slog.Logger) *worker {
	return &worker{
		name:    name,
		mailbox: mailbox,
		report:  report,
		log:     log,
		status:  StatusStopped,
	}
}

func (w *worker) getStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *worker) setStatus(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = s
}

// start flips the accept flag and launches the consumer loop in a new
// goroutine. Idempotent: a running worker is left alone.
func (w *worker) start(ctx context.Context) {
	w.mu.Lock()
	if w.status == StatusRunning {
		w.mu.Unlock()
		return
	}
	w.status = StatusRunning
	w.done = make(chan struct{})
	w.accepting.Store(true)
	done := w.done
	w.mu.Unlock()

	go func() {
		defer close(done)
		defer w.setStatus(StatusStopped)
		w.run(ctx)
	}()
}

// stop tells the worker to take no new work. It does not interrupt a blocked
// Get; the loop finishes naturally once the mailbox is drained.
func (w *worker) stop() {
	w.accepting.Store(false)
}

// join blocks until the worker's loop has fully exited. Returns immediately
// for a worker that was never started.
func (w *worker) join() {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if done != nil {
		<-done
	}
}

// run consumes until asked to stop AND the mailbox is empty, re-reading
// emptiness every iteration. The disjunction is the drain guarantee: after
// stop() the loop keeps consuming whatever the producer already enqueued.
// A Get that reports the mailbox closed means closed and drained, so the
// loop can exit even if it was blocked when the stop arrived.
func (w *worker) run(ctx context.Context) {
	w.log.Debug("worker started")
	for w.accepting.Load() || !w.mailbox.IsEmpty() {
		o, err := w.mailbox.Get()
		if errors.Is(err, ErrMailboxClosed) {
			break
		}
		if w.process(ctx, o) {
			w.report()
		}
	}
	w.log.Debug("worker stopped")
}

// process advances o until it reaches the bottling checkpoint. Interrupted
// stage work is a recoverable warning; an orange already past its terminal
// stage means the invariant broke upstream, so it is dropped loudly and not
// counted.
func (w *worker) process(ctx context.Context, o *Orange) bool {
	for !o.Bottled() {
		err := o.Process(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrIncompleteWork):
			w.log.Warn("incomplete orange processing, juice may be bad",
				"orange", o.ID(), "stage", o.Stage())
		case errors.Is(err, ErrOrangeProcessed):
			w.log.Error("orange past terminal stage, dropping", "orange", o.ID(), "error", err)
			return false
		}
	}
	return true
}
