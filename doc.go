// Package juicebottler simulates juice plants: producer goroutines create
// oranges, pass them one at a time through a capacity-1 blocking mailbox, and
// pools of worker goroutines drive each orange through its processing stages.
//
// # Overview
//
// The package exposes:
//   - Orange: the unit of work, a linear state machine over an ordered stage
//     table; each stage carries a simulated processing duration.
//   - Mailbox: a single-slot blocking handoff between one plant and its
//     workers. Put blocks while full, Get blocks while empty; this is a
//     rendezvous, not a buffer.
//   - Plant: a producer goroutine owning one Mailbox and a fixed worker pool;
//     counts provided and processed oranges and derives bottles/waste.
//   - Simulation: builds N plants from a Config, runs them for a fixed
//     duration, stops them, waits for the drain, and aggregates a Summary.
//
// # Usage
//
// Create a simulation from a config, then run it:
//
//	cfg := juicebottler.DefaultConfig()
//	sim, err := juicebottler.NewSimulation(cfg)
//	if err != nil { ... }
//	summary := sim.Run(context.Background())
//	fmt.Println(summary)
//
// Shutdown is cooperative: Stop flips produce/accept flags only, and workers
// keep consuming until the mailbox is provably empty, so every provided
// orange is processed before WaitToStop returns.
package juicebottler
