package sim

import (
	"context"
	"log/slog"
	"time"
)

// Engine drives World.Tick on a fixed real-time interval, optionally
// scaled. Run blocks until the context is cancelled or the optional
// duration elapses.
type Engine struct {
	world    *World
	interval time.Duration
	speed    float64
}

// NewEngine wraps a world. interval is the tick period; speed multiplies
// simulated time per tick (1.0 is real time relative to the configured
// day length).
func NewEngine(w *World, interval time.Duration, speed float64) *Engine {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	if speed <= 0 {
		speed = 1
	}
	return &Engine{world: w, interval: interval, speed: speed}
}

// Run ticks the world until ctx is done. A zero duration runs forever.
func (e *Engine) Run(ctx context.Context, duration time.Duration) error {
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	dt := e.interval.Seconds() * e.speed
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	slog.Info("simulation started",
		"tick_interval", e.interval,
		"speed", e.speed,
		"villagers", len(e.world.Villagers),
	)

	for {
		select {
		case <-ticker.C:
			e.world.Tick(dt)
		case <-ctx.Done():
			slog.Info("simulation stopped",
				"day", e.world.Clock.Day(),
				"work_cycles", e.world.Stats().WorkCycles(),
				"goals_completed", e.world.Stats().GoalsCompleted(),
			)
			return ctx.Err()
		}
	}
}
