package juicebottler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage is one ordered step of orange processing. Duration is the simulated
// time the stage's work takes; it stands in for a real operation.
type Stage struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
}

// StageTable is the ordered sequence of stages an orange moves through. The
// last entry is the terminal stage; the second-to-last is the bottling
// checkpoint at which workers consider an orange complete.
type StageTable []Stage

// DefaultStages returns the standard five-stage table.
func DefaultStages() StageTable {
	return StageTable{
		{Name: "Fetched", Duration: 15 * time.Millisecond},
		{Name: "Peeled", Duration: 38 * time.Millisecond},
		{Name: "Squeezed", Duration: 29 * time.Millisecond},
		{Name: "Bottled", Duration: 17 * time.Millisecond},
		{Name: "Processed", Duration: 1 * time.Millisecond},
	}
}

// Validate checks that the table can drive the state machine: at least two
// stages (a checkpoint and a terminal stage), named, with non-negative
// durations. Returns an error wrapping ErrInvalidConfig otherwise.
func (t StageTable) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("stage table needs at least two stages, got %d: %w", len(t), ErrInvalidConfig)
	}
	for i, s := range t {
		if s.Name == "" {
			return fmt.Errorf("stage %d has no name: %w", i, ErrInvalidConfig)
		}
		if s.Duration < 0 {
			return fmt.Errorf("stage %q has negative duration: %w", s.Name, ErrInvalidConfig)
		}
	}
	return nil
}

// bottlingIndex is the index of the stage at which an orange counts as
// complete. One short of terminal: bottled juice is counted without the final
// post-processing stage ever running.
func (t StageTable) bottlingIndex() int {
	return len(t) - 2
}

// Orange is the unit of work flowing through a plant. Its stage only ever
// advances forward, one step at a time; the goroutine that dequeued it is the
// only one allowed to advance it, so no internal locking is needed.
type Orange struct {
	id     uuid.UUID
	stages StageTable
	index  int
}

// NewOrange creates an orange at the first stage of the table and performs
// that stage's simulated work before returning, so an observable orange has
// always finished its first stage. If ctx is cancelled during the work the
// orange is still usable and the returned error is ErrIncompleteWork.
func NewOrange(ctx context.Context, stages StageTable) (*Orange, error) {
	o := &Orange{id: uuid.New(), stages: stages}
	return o, o.work(ctx)
}

// ID returns the orange's unique identity.
func (o *Orange) ID() uuid.UUID {
	return o.id
}

// Stage returns the name of the orange's current stage.
func (o *Orange) Stage() string {
	return o.stages[o.index].Name
}

// StageIndex returns the position of the current stage in the table.
func (o *Orange) StageIndex() int {
	return o.index
}

// Bottled reports whether the orange has reached the bottling checkpoint,
// the second-to-last stage of its table. Workers stop advancing here.
func (o *Orange) Bottled() bool {
	return o.index >= o.stages.bottlingIndex()
}

// Process advances the orange to the next stage and performs that stage's
// simulated work. At the terminal stage it returns ErrOrangeProcessed and
// mutates nothing. A cancelled ctx cuts the work short: the stage has still
// been entered and the error is ErrIncompleteWork.
func (o *Orange) Process(ctx context.Context) error {
	if o.index >= len(o.stages)-1 {
		return fmt.Errorf("orange %s at stage %s: %w", o.id, o.Stage(), ErrOrangeProcessed)
	}
	o.index++
	return o.work(ctx)
}

// work blocks for the current stage's duration. On cancellation the wait ends
// early but the stage transition stands; shared state is never rolled back.
func (o *Orange) work(ctx context.Context) error {
	d := o.stages[o.index].Duration
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stage %s interrupted: %w", o.Stage(), ErrIncompleteWork)
	}
}
