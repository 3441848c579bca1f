// Package events provides the simulation's domain event types and a
// synchronous publish/subscribe bus. Producers (needs, ledger, state
// machines) publish; observers (logging, persistence, UI) subscribe and
// never mutate simulation state.
package events

// Kind identifies an event type for subscription routing.
type Kind uint8

const (
	KindNeedCritical Kind = iota
	KindNeedFulfilled
	KindNeedFulfillmentFailed
	KindMoodChanged
	KindStateChanged
	KindGoalCompleted
	KindWorkCompleted
	KindWealthChanged
	KindResourceChanged
	KindResourceCritical
	KindPriceChanged
	KindTimeOfDayChanged
	KindDayChanged
	KindMovementTimedOut
	KindVillagerSpawned
)

var kindNames = [...]string{
	"need_critical",
	"need_fulfilled",
	"need_fulfillment_failed",
	"mood_changed",
	"state_changed",
	"goal_completed",
	"work_completed",
	"wealth_changed",
	"resource_changed",
	"resource_critical",
	"price_changed",
	"time_of_day_changed",
	"day_changed",
	"movement_timed_out",
	"villager_spawned",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is the common interface for all domain events.
type Event interface {
	EventKind() Kind
}

// NeedCritical fires once per downward crossing of a need's critical
// threshold.
type NeedCritical struct {
	Villager string
	Need     string
	Value    float64
}

// NeedFulfilled fires when a need recovers from critical back above its
// threshold.
type NeedFulfilled struct {
	Villager string
	Need     string
	Value    float64
}

// NeedFulfillmentFailed fires when a resource-backed fulfillment attempt
// fails, either for wealth or for village supply.
type NeedFulfillmentFailed struct {
	Villager string
	Need     string
	Resource string
	Amount   float64
	Reason   string
}

// MoodChanged fires on a discrete mood category transition.
type MoodChanged struct {
	Villager  string
	From      string
	To        string
	Happiness float64
}

// StateChanged fires on every committed behavior state transition.
type StateChanged struct {
	Villager   string
	Profession string
	From       string
	To         string
}

// GoalCompleted fires when a goal's progress reaches its target.
type GoalCompleted struct {
	Villager    string
	Goal        string
	Description string
}

// WorkCompleted fires each time a profession finishes a work cycle.
type WorkCompleted struct {
	Villager   string
	Profession string
	Resource   string
	Produced   float64
}

// WealthChanged fires on personal wealth mutations.
type WealthChanged struct {
	Villager string
	Delta    float64
	Total    float64
}

// ResourceChanged fires on any ledger stock mutation. Delta is negative
// for consumption.
type ResourceChanged struct {
	Resource string
	Delta    float64
	Total    float64
	Source   string
}

// ResourceCritical fires when a resource pool is too small to serve a
// request or falls below the critical floor.
type ResourceCritical struct {
	Resource string
	Amount   float64
}

// PriceChanged fires when a resource price moves by more than the
// hysteresis band.
type PriceChanged struct {
	Resource string
	Old      float64
	New      float64
}

// TimeOfDayChanged fires when the clock enters a new time-of-day block.
type TimeOfDayChanged struct {
	TimeOfDay string
	Hour      float64
	Day       int
}

// DayChanged fires at each day rollover.
type DayChanged struct {
	Day int
}

// MovementTimedOut fires when a state gives up on an unreachable
// destination and falls back to idling.
type MovementTimedOut struct {
	Villager string
	State    string
}

// VillagerSpawned fires once per villager at population initialization.
type VillagerSpawned struct {
	Villager   string
	Profession string
}

func (NeedCritical) EventKind() Kind          { return KindNeedCritical }
func (NeedFulfilled) EventKind() Kind         { return KindNeedFulfilled }
func (NeedFulfillmentFailed) EventKind() Kind { return KindNeedFulfillmentFailed }
func (MoodChanged) EventKind() Kind           { return KindMoodChanged }
func (StateChanged) EventKind() Kind          { return KindStateChanged }
func (GoalCompleted) EventKind() Kind         { return KindGoalCompleted }
func (WorkCompleted) EventKind() Kind         { return KindWorkCompleted }
func (WealthChanged) EventKind() Kind         { return KindWealthChanged }
func (ResourceChanged) EventKind() Kind       { return KindResourceChanged }
func (ResourceCritical) EventKind() Kind      { return KindResourceCritical }
func (PriceChanged) EventKind() Kind          { return KindPriceChanged }
func (TimeOfDayChanged) EventKind() Kind      { return KindTimeOfDayChanged }
func (DayChanged) EventKind() Kind            { return KindDayChanged }
func (MovementTimedOut) EventKind() Kind      { return KindMovementTimedOut }
func (VillagerSpawned) EventKind() Kind       { return KindVillagerSpawned }
