package juicebottler

import "fmt"

// PlantReport is a final snapshot of one plant's counters. Meaningful once
// the plant's WaitToStop has returned; mid-run snapshots are transient.
type PlantReport struct {
	Plant     int
	Provided  int
	Processed int
	Bottles   int
	Waste     int
}

// Summary aggregates the reports of every plant in a simulation run.
type Summary struct {
	Provided  int
	Processed int
	Bottles   int
	Waste     int
	Plants    []PlantReport
}

// Summarize totals the given plant reports.
func Summarize(reports []PlantReport) Summary {
	s := Summary{Plants: reports}
	for _, r := range reports {
		s.Provided += r.Provided
		s.Processed += r.Processed
		s.Bottles += r.Bottles
		s.Waste += r.Waste
	}
	return s
}

// String formats the summary as the classic two-line run report.
func (s Summary) String() string {
	return fmt.Sprintf("Total provided/processed = %d/%d\nCreated %d bottles, wasted %d oranges",
		s.Provided, s.Processed, s.Bottles, s.Waste)
}
