package juicebottler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// plantConfig holds optional per-plant settings, configured via PlantOption.
type plantConfig struct {
	logger       *slog.Logger
	progress     func(produced int)
	produceLimit int
}

// PlantOption configures a Plant at construction time. Use WithPlantLogger,
// WithProgress, and WithProduceLimit; the zero value applies defaults.
type PlantOption func(*plantConfig)

// WithPlantLogger sets the logger used by the plant and its workers. Each
// worker gets a child logger with "worker" set to the worker name. If logger
// is nil, the default JSON logger (writing to os.Stdout) is used.
func WithPlantLogger(logger *slog.Logger) PlantOption {
	return func(c *plantConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgress registers a hook invoked by the producer goroutine after every
// orange it provides, with the running provided count. Used for console
// progress output; the hook must be fast, it runs on the producer's loop.
func WithProgress(fn func(produced int)) PlantOption {
	return func(c *plantConfig) { c.progress = fn }
}

// WithProduceLimit makes the producer stop itself after providing n oranges.
// Use 0 for no limit (default). Deterministic runs for tests: the plant
// drains and joins without any wall-clock dependency.
func WithProduceLimit(n int) PlantOption {
	return func(c *plantConfig) { c.produceLimit = n }
}

func applyPlantOptions(opts ...PlantOption) plantConfig {
	c := plantConfig{logger: defaultLogger}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Plant is a producer goroutine plus its owned Mailbox and worker pool. It
// counts oranges provided and processed and derives bottle statistics from
// the processed count. A plant is the unit of aggregation for a Simulation.
type Plant struct {
	id      int
	cfg     Config
	mailbox *Mailbox
	workers []*worker
	log     *slog.Logger

	progress     func(int)
	produceLimit int

	// producing is the cooperative stop flag for the producer loop.
	producing atomic.Bool
	provided  atomic.Int64

	mu        sync.Mutex
	status    Status
	done      chan struct{}
	processed int
}

// NewPlant creates a plant with the given identity: an empty mailbox and
// cfg.WorkersPerPlant workers bound to it. The plant is stopped; call Start.
// cfg is assumed valid (see Config.Validate).
func NewPlant(id int, cfg Config, opts ...PlantOption) *Plant {
	pc := applyPlantOptions(opts...)
	p := &Plant{
		id:           id,
		cfg:          cfg,
		mailbox:      NewMailbox(),
		log:          pc.logger.With("plant", id),
		progress:     pc.progress,
		produceLimit: pc.produceLimit,
		status:       StatusStopped,
	}
	for i := 0; i < cfg.WorkersPerPlant; i++ {
		name := fmt.Sprintf("plant[%d]-worker[%d]", id, i+1)
		w := newWorker(name, p.mailbox, p.onOrangeProcessed, p.log.With("worker", name))
		p.workers = append(p.workers, w)
	}
	return p
}

// ID returns the plant's identity number.
func (p *Plant) ID() int {
	return p.id
}

// Status returns the plant's lifecycle state. Safe from any goroutine.
func (p *Plant) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Start begins production: workers first, so the producer never fills the
// mailbox with nobody left to drain it, then the producer goroutine.
// Idempotent: a running plant is left alone.
func (p *Plant) Start(ctx context.Context) {
	p.mu.Lock()
	if p.status == StatusRunning {
		p.mu.Unlock()
		return
	}
	p.status = StatusRunning
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	p.producing.Store(true)
	for _, w := range p.workers {
		w.start(ctx)
	}
	go func() {
		defer close(done)
		p.produce(ctx)
	}()
}

// Stop signals the producer and every worker to stop. It does not join them;
// workers keep draining the mailbox. Use WaitToStop to wait for completion.
func (p *Plant) Stop() {
	p.producing.Store(false)
	for _, w := range p.workers {
		w.stop()
	}
}

// WaitToStop blocks until the producer goroutine has exited, then closes the
// mailbox and waits for every worker to finish draining, in that order:
// production has provably ceased before the workers are released.
func (p *Plant) WaitToStop() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}

	p.mailbox.Close()
	for _, w := range p.workers {
		w.join()
	}
	p.drainLeftover()
	p.setStatus(StatusStopped)
	p.log.Info("plant stopped", "provided", p.ProvidedOranges(), "processed", p.ProcessedOranges())
}

// drainLeftover finishes at most one orange the producer managed to put after
// every worker had already observed stop-and-empty and exited. Without this
// the final put of a run could be provided but never processed.
func (p *Plant) drainLeftover() {
	for {
		o, err := p.mailbox.Get()
		if err != nil {
			return
		}
		for !o.Bottled() {
			if err := o.Process(context.Background()); errors.Is(err, ErrOrangeProcessed) {
				p.log.Error("orange past terminal stage, dropping", "orange", o.ID(), "error", err)
				break
			}
		}
		if o.Bottled() {
			p.onOrangeProcessed()
		}
	}
}

// produce is the producer loop: create an orange (construction performs the
// first stage's work) and block-put it into the mailbox until told to stop.
// Draining is the workers' job, not the producer's.
func (p *Plant) produce(ctx context.Context) {
	p.log.Info("processing oranges")
	for p.producing.Load() {
		if p.produceLimit > 0 && int(p.provided.Load()) >= p.produceLimit {
			p.producing.Store(false)
			break
		}
		o, err := NewOrange(ctx, p.cfg.Stages)
		if err != nil {
			p.log.Warn("incomplete orange processing, juice may be bad",
				"orange", o.ID(), "stage", o.Stage())
		}
		if err := p.mailbox.Put(o); err != nil {
			// The mailbox closes only after this goroutine is joined, so a
			// failed put can only mean an external Close; stop producing.
			break
		}
		n := int(p.provided.Add(1))
		if p.progress != nil {
			p.progress(n)
		}
	}
	p.log.Info("done producing", "provided", p.ProvidedOranges())
}

// onOrangeProcessed records one completed orange. Safe under concurrent calls
// from all of the plant's workers; the counter is the only state they mutate.
func (p *Plant) onOrangeProcessed() {
	p.mu.Lock()
	p.processed++
	p.mu.Unlock()
}

func (p *Plant) setStatus(s Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = s
}

// ProvidedOranges returns the number of oranges produced. Mid-run calls see a
// transient value; call after WaitToStop for the final count.
func (p *Plant) ProvidedOranges() int {
	return int(p.provided.Load())
}

// ProcessedOranges returns the number of oranges fully processed by workers.
func (p *Plant) ProcessedOranges() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

// Bottles returns how many complete bottles the processed oranges fill.
func (p *Plant) Bottles() int {
	return p.ProcessedOranges() / p.cfg.OrangesPerBottle
}

// Waste returns the leftover oranges that do not complete a bottle.
func (p *Plant) Waste() int {
	return p.ProcessedOranges() % p.cfg.OrangesPerBottle
}

// Report returns a snapshot of the plant's counters.
func (p *Plant) Report() PlantReport {
	processed := p.ProcessedOranges()
	return PlantReport{
		Plant:     p.id,
		Provided:  p.ProvidedOranges(),
		Processed: processed,
		Bottles:   processed / p.cfg.OrangesPerBottle,
		Waste:     processed % p.cfg.OrangesPerBottle,
	}
}
