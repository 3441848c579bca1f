package sim

import (
	"sync/atomic"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

// Stats accumulates coarse counters off the event bus. Counters are
// atomics so reporting can read them while the tick loop publishes.
type Stats struct {
	goalsCompleted   atomic.Int64
	workCycles       atomic.Int64
	needFailures     atomic.Int64
	criticalNeeds    atomic.Int64
	stateChanges     atomic.Int64
	moveTimeouts     atomic.Int64
	priceChanges     atomic.Int64
	resourceCritical atomic.Int64
}

func NewStats() *Stats {
	return &Stats{}
}

// Observe subscribes the counters to the bus.
func (s *Stats) Observe(bus *events.Bus) {
	bus.Subscribe(events.KindGoalCompleted, func(events.Event) { s.goalsCompleted.Add(1) })
	bus.Subscribe(events.KindWorkCompleted, func(events.Event) { s.workCycles.Add(1) })
	bus.Subscribe(events.KindNeedFulfillmentFailed, func(events.Event) { s.needFailures.Add(1) })
	bus.Subscribe(events.KindNeedCritical, func(events.Event) { s.criticalNeeds.Add(1) })
	bus.Subscribe(events.KindStateChanged, func(events.Event) { s.stateChanges.Add(1) })
	bus.Subscribe(events.KindMovementTimedOut, func(events.Event) { s.moveTimeouts.Add(1) })
	bus.Subscribe(events.KindPriceChanged, func(events.Event) { s.priceChanges.Add(1) })
	bus.Subscribe(events.KindResourceCritical, func(events.Event) { s.resourceCritical.Add(1) })
}

func (s *Stats) GoalsCompleted() int64   { return s.goalsCompleted.Load() }
func (s *Stats) WorkCycles() int64       { return s.workCycles.Load() }
func (s *Stats) NeedFailures() int64     { return s.needFailures.Load() }
func (s *Stats) CriticalNeeds() int64    { return s.criticalNeeds.Load() }
func (s *Stats) StateChanges() int64     { return s.stateChanges.Load() }
func (s *Stats) MoveTimeouts() int64     { return s.moveTimeouts.Load() }
func (s *Stats) PriceChanges() int64     { return s.priceChanges.Load() }
func (s *Stats) ResourceCritical() int64 { return s.resourceCritical.Load() }
