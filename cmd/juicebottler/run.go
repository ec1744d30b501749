package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	juicebottler "github.com/zgacnik-carroll/JuiceBottler"
)

var (
	configPath   string
	durationFlag time.Duration
	plantsFlag   int
	workersFlag  int
	bottleFlag   int
	quietFlag    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and print the bottle totals",
	RunE:  runCommand,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	runCmd.Flags().DurationVar(&durationFlag, "duration", 0, "How long plants produce (overrides config)")
	runCmd.Flags().IntVar(&plantsFlag, "plants", 0, "Number of plants (overrides config)")
	runCmd.Flags().IntVar(&workersFlag, "workers", 0, "Workers per plant (overrides config)")
	runCmd.Flags().IntVar(&bottleFlag, "bottle-size", 0, "Oranges per bottle (overrides config)")
	runCmd.Flags().BoolVar(&quietFlag, "quiet", false, "Suppress the progress dots")
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg := juicebottler.DefaultConfig()
	if configPath != "" {
		loaded, err := juicebottler.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("duration") {
		cfg.RunDuration = durationFlag
	}
	if cmd.Flags().Changed("plants") {
		cfg.Plants = plantsFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.WorkersPerPlant = workersFlag
	}
	if cmd.Flags().Changed("bottle-size") {
		cfg.OrangesPerBottle = bottleFlag
	}

	opts := []juicebottler.Option{juicebottler.WithLogger(logger)}
	if !quietFlag {
		opts = append(opts, juicebottler.WithPlantOptions(
			juicebottler.WithProgress(func(int) { fmt.Print(".") }),
		))
	}

	sim, err := juicebottler.NewSimulation(cfg, opts...)
	if err != nil {
		return err
	}

	// Ctrl+C or SIGTERM ends the run early; plants still drain and join.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := sim.Run(ctx)
	if !quietFlag {
		fmt.Println()
	}
	color.Cyan.Printf("Total provided/processed = %d/%d\n", summary.Provided, summary.Processed)
	color.Green.Printf("Created %d bottles, wasted %d oranges\n", summary.Bottles, summary.Waste)
	return nil
}
