package juicebottler

import "errors"

// Sentinel errors for the simulation. Use errors.Is to check the error type:
//
//	err := orange.Process(ctx)
//	if errors.Is(err, juicebottler.ErrOrangeProcessed) { ... }
//	if errors.Is(err, juicebottler.ErrIncompleteWork) { ... }
//
//	_, err := mailbox.Get()
//	if errors.Is(err, juicebottler.ErrMailboxClosed) { ... }
var (
	// ErrOrangeProcessed is returned when Process is called on an orange that
	// is already at its terminal stage. This is a logic fault in the caller:
	// correct worker code never advances past the bottling checkpoint.
	ErrOrangeProcessed = errors.New("orange already processed")

	// ErrIncompleteWork is returned when a stage's simulated work is cut short
	// by context cancellation. It is recoverable: the stage has still been
	// entered, the orange remains usable, and callers should log a warning
	// and carry on.
	ErrIncompleteWork = errors.New("incomplete orange processing, juice may be bad")

	// ErrMailboxClosed is returned by Mailbox.Put after Close, and by
	// Mailbox.Get once the mailbox is closed and drained. Workers treat it as
	// the end-of-production signal.
	ErrMailboxClosed = errors.New("mailbox closed")

	// ErrInvalidConfig is returned (wrapped) by Config.Validate and
	// NewSimulation when a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)
