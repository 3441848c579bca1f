// Command villagesim runs the sustainable village simulation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/persistence"
	"github.com/bucephalus26/sustainable-village-sim/internal/sim"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

var (
	flagSeed      int64
	flagVillagers int
	flagDBPath    string
	flagConfig    string
	flagSpeed     float64
	flagDuration  time.Duration
	flagInterval  time.Duration
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "villagesim",
		Short: "Agent-driven village simulation with needs, moods, goals and a living economy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	root.Flags().Int64Var(&flagSeed, "seed", 42, "random seed for personalities, layout and yields")
	root.Flags().IntVar(&flagVillagers, "villagers", 12, "number of villagers to spawn")
	root.Flags().StringVar(&flagDBPath, "db", "data/village.db", "SQLite database path")
	root.Flags().StringVar(&flagConfig, "config", "", "optional YAML tuning file")
	root.Flags().Float64Var(&flagSpeed, "speed", 1.0, "simulation speed multiplier")
	root.Flags().DurationVar(&flagDuration, "duration", 0, "stop after this wall-clock duration (0 = run forever)")
	root.Flags().DurationVar(&flagInterval, "tick", 100*time.Millisecond, "tick interval")
	root.Flags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := tuning.Default()
	if flagConfig != "" {
		loaded, err := tuning.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		cfg = loaded
		slog.Info("tuning loaded", "path", flagConfig)
	}

	if err := os.MkdirAll(filepath.Dir(flagDBPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := persistence.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", flagDBPath)

	world := sim.NewWorld(&cfg, flagSeed)
	recorder := persistence.NewRecorder(world.Bus, world.Clock)
	if err := world.Populate(flagVillagers); err != nil {
		return err
	}

	// Auto-save daily so a crash loses at most one sim-day of history.
	world.Bus.Subscribe(events.KindDayChanged, func(events.Event) {
		if err := db.SaveWorldState(world, recorder); err != nil {
			slog.Error("daily save failed", "error", err)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := sim.NewEngine(world, flagInterval, flagSpeed)
	err = engine.Run(ctx, flagDuration)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if err := db.SaveWorldState(world, recorder); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}
