package sim

import (
	"log/slog"
	"math/rand"

	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
	"github.com/bucephalus26/sustainable-village-sim/internal/world"
)

// World owns every simulation component and drives them in a fixed tick
// order: clock first, then movement, then each villager. Everything runs
// on the caller's goroutine; cross-component coordination happens over
// the event bus.
type World struct {
	Bus     *events.Bus
	Clock   *clock.Clock
	Ledger  *economy.Ledger
	Village *world.Village

	Villagers []*villager.Villager
	movers    map[string]*world.Mover

	cfg   *tuning.Tuning
	rng   *rand.Rand
	yield *economy.YieldCurve
	stats *Stats
}

// NewWorld builds an empty world. Populate spawns the villagers.
func NewWorld(cfg *tuning.Tuning, seed int64) *World {
	bus := events.NewBus()
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		Bus:     bus,
		Clock:   clock.New(bus, cfg.DayLengthSeconds, cfg.StartHour),
		Ledger:  economy.NewLedger(bus, cfg.Economy),
		Village: world.NewVillage(rng),
		movers:  make(map[string]*world.Mover),
		cfg:     cfg,
		rng:     rng,
		yield:   economy.NewYieldCurve(seed),
		stats:   NewStats(),
	}
	w.stats.Observe(bus)
	w.subscribe()
	return w
}

// subscribe wires bus-driven reactions: schedule boundaries and critical
// needs trigger immediate behavior re-assessment, and each dawn closes
// out the economic day.
func (w *World) subscribe() {
	w.Bus.Subscribe(events.KindTimeOfDayChanged, func(events.Event) {
		for _, v := range w.Villagers {
			v.Brain.OnTimeOfDayChanged(v)
		}
	})
	w.Bus.Subscribe(events.KindNeedCritical, func(e events.Event) {
		nc := e.(events.NeedCritical)
		if v := w.byName(nc.Villager); v != nil {
			v.Brain.OnNeedCritical(v)
		}
	})
	w.Bus.Subscribe(events.KindDayChanged, func(e events.Event) {
		w.Ledger.RecordDailySnapshot()
		dc := e.(events.DayChanged)
		w.logDailyReport(dc.Day)
	})
}

func (w *World) byName(name string) *villager.Villager {
	for _, v := range w.Villagers {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Tick advances the whole world by dtReal seconds of wall time.
func (w *World) Tick(dtReal float64) {
	dtHours := w.Clock.Advance(dtReal)
	step := villager.Step{RealSeconds: dtReal, SimHours: dtHours}

	for _, m := range w.movers {
		m.Advance(dtReal)
	}
	for _, v := range w.Villagers {
		v.Tick(step)
	}
}

// Stats returns the aggregated counters for reporting and persistence.
func (w *World) Stats() *Stats {
	return w.stats
}

func (w *World) logDailyReport(day int) {
	var happiness, wealth float64
	for _, v := range w.Villagers {
		happiness += v.Mood.Happiness
		wealth += v.Wealth
	}
	n := float64(len(w.Villagers))
	if n == 0 {
		n = 1
	}
	slog.Info("daily report",
		"day", day,
		"avg_happiness", happiness/n,
		"total_wealth", wealth,
		"food", w.Ledger.Amount(economy.ResourceFood),
		"food_price", w.Ledger.Price(economy.ResourceFood),
		"food_net", w.Ledger.DailyNetChange(economy.ResourceFood),
		"goals_completed", w.stats.GoalsCompleted(),
		"work_cycles", w.stats.WorkCycles(),
	)
}
