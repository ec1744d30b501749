package juicebottler

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// defaultLogger is the logger used when no WithLogger option is provided. It
// writes JSON to os.Stdout.
var defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Option configures a Simulation at creation time. Logs from the simulation
// and its plants form a tree: the simulation logs with the given logger, each
// plant with a child logger carrying a "plant" attribute, and each worker
// with a further "worker" attribute.
type Option func(*Simulation)

// WithLogger sets the logger used by the simulation and all its plants. If
// logger is nil, the default JSON logger (writing to os.Stdout) is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithPlantOptions forwards the given options to every plant the simulation
// creates, e.g. WithProgress for console output or WithProduceLimit in tests.
func WithPlantOptions(opts ...PlantOption) Option {
	return func(s *Simulation) {
		s.plantOpts = append(s.plantOpts, opts...)
	}
}

// Simulation owns a set of plants built from one Config and drives them
// through a complete run: start, produce for the configured duration, stop,
// drain, join, aggregate.
type Simulation struct {
	cfg       Config
	log       *slog.Logger
	plantOpts []PlantOption
	plants    []*Plant
}

// NewSimulation validates cfg (after applying defaults for zero fields) and
// creates cfg.Plants plants with sequential identities starting at 1.
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{cfg: cfg, log: defaultLogger}
	for _, opt := range opts {
		opt(s)
	}

	for i := 1; i <= cfg.Plants; i++ {
		popts := append([]PlantOption{WithPlantLogger(s.log)}, s.plantOpts...)
		s.plants = append(s.plants, NewPlant(i, cfg, popts...))
	}
	return s, nil
}

// Plants returns the simulation's plants, in identity order.
func (s *Simulation) Plants() []*Plant {
	return s.plants
}

// StartAll starts every plant. ctx governs the simulated stage work: when it
// is cancelled, in-flight waits end early with a recoverable warning.
func (s *Simulation) StartAll(ctx context.Context) {
	for _, p := range s.plants {
		p.Start(ctx)
	}
}

// StopAll signals every plant (and its workers) to stop. It does not wait.
func (s *Simulation) StopAll() {
	for _, p := range s.plants {
		p.Stop()
	}
}

// WaitAll blocks until every plant has fully stopped and drained.
func (s *Simulation) WaitAll() {
	for _, p := range s.plants {
		p.WaitToStop()
	}
}

// Run drives one full simulation: start every plant, let them produce for the
// configured duration (or until ctx is cancelled, whichever comes first),
// stop them all, wait for the drain, and return the aggregated summary.
func (s *Simulation) Run(ctx context.Context) Summary {
	s.log.Info("starting plants", "plants", len(s.plants), "duration", s.cfg.RunDuration)
	s.StartAll(ctx)

	timer := time.NewTimer(s.cfg.RunDuration)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		s.log.Warn("run cancelled early", "error", ctx.Err())
	}

	s.StopAll()
	s.WaitAll()

	reports := make([]PlantReport, 0, len(s.plants))
	for _, p := range s.plants {
		reports = append(reports, p.Report())
	}
	summary := Summarize(reports)
	s.log.Info("simulation finished",
		"provided", summary.Provided,
		"processed", summary.Processed,
		"bottles", summary.Bottles,
		"waste", summary.Waste)
	return summary
}
