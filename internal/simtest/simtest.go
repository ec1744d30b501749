// Package simtest provides small deterministic fixtures for juicebottler
// tests: fast stage tables and configs that avoid real multi-millisecond
// stage delays.
package simtest

import (
	"fmt"
	"sync"
	"time"

	juicebottler "github.com/zgacnik-carroll/JuiceBottler"
)

// Stages returns a table of n uniformly timed stages named stage-0..stage-n-1.
// Use d == 0 for instant stage work.
func Stages(n int, d time.Duration) juicebottler.StageTable {
	t := make(juicebottler.StageTable, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, juicebottler.Stage{Name: fmt.Sprintf("stage-%d", i), Duration: d})
	}
	return t
}

// FastConfig returns a single-plant, single-worker config with instant stages,
// suitable as a base for deterministic scenario tests.
func FastConfig() juicebottler.Config {
	return juicebottler.Config{
		Plants:           1,
		WorkersPerPlant:  1,
		OrangesPerBottle: 3,
		RunDuration:      50 * time.Millisecond,
		Stages:           Stages(5, 0),
	}
}

// Counter is a goroutine-safe counter for completion callbacks.
type Counter struct {
	mu sync.Mutex
	n  int
}

// Inc adds one.
func (c *Counter) Inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

// Value returns the current count.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
