package villager

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// Villager is the behavioral aggregate: needs, mood, goals, profession
// and the brain that arbitrates between them. All mutation happens on the
// simulation tick; villagers are not safe for concurrent use.
type Villager struct {
	ID          uuid.UUID
	Name        string
	Personality Personality
	Wealth      float64

	Needs      *NeedSet
	Mood       *Mood
	Goals      *GoalSet
	Profession *Profession
	Brain      *Brain

	bus           *events.Bus
	ledger        *economy.Ledger
	clock         *clock.Clock
	loc           Locations
	mover         Mover
	fulfillAmount float64
}

// Config wires a villager into its world. Loc and Mover may be nil in
// isolation, in which case movement is treated as instantaneous.
type Config struct {
	Name        string
	Personality Personality
	Profession  ProfessionKind
	Wealth      float64

	Bus    *events.Bus
	Ledger *economy.Ledger
	Clock  *clock.Clock
	Loc    Locations
	Mover  Mover
	Yield  *economy.YieldCurve
	Rng    *rand.Rand
	Tuning *tuning.Tuning
}

func New(cfg Config) (*Villager, error) {
	if cfg.Clock == nil {
		return nil, fmt.Errorf("villager %q: clock is required", cfg.Name)
	}
	if cfg.Tuning == nil {
		return nil, fmt.Errorf("villager %q: tuning is required", cfg.Name)
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(uuid.New().ID())))
	}

	v := &Villager{
		ID:          uuid.New(),
		Name:        cfg.Name,
		Personality: cfg.Personality,
		Wealth:      cfg.Wealth,

		Needs:      NewNeedSet(cfg.Tuning.Needs),
		Mood:       NewMood(cfg.Tuning.Mood),
		Goals:      NewGoalSet(cfg.Tuning.Goals, rng),
		Profession: NewProfession(cfg.Profession, cfg.Yield),
		Brain:      NewBrain(cfg.Tuning.Behavior, rng),

		bus:           cfg.Bus,
		ledger:        cfg.Ledger,
		clock:         cfg.Clock,
		loc:           cfg.Loc,
		mover:         cfg.Mover,
		fulfillAmount: cfg.Tuning.Needs.FulfillAmount,
	}
	v.Goals.AssignInitial(v)
	return v, nil
}

// Tick advances the villager one simulation step. Decay runs first so the
// brain sees fresh urgency, mood next so work efficiency reflects the
// current tick, then behavior, work output, and goal bookkeeping.
func (v *Villager) Tick(step Step) {
	v.Needs.Decay(step.SimHours, v)
	v.Mood.Update(step.RealSeconds, v)
	v.Brain.Update(v, step)
	v.Profession.Tick(step.SimHours, v)
	v.Goals.Tick(step.RealSeconds, v)
}

// EarnWealth credits income and announces the change.
func (v *Villager) EarnWealth(amount float64) {
	if amount <= 0 {
		return
	}
	v.Wealth += amount
	v.bus.Publish(events.WealthChanged{Villager: v.Name, Delta: amount, Total: v.Wealth})
}

// SpendWealth debits the villager, refusing to overdraw.
func (v *Villager) SpendWealth(amount float64) bool {
	if amount < 0 || amount > v.Wealth {
		return false
	}
	if amount == 0 {
		return true
	}
	v.Wealth -= amount
	v.bus.Publish(events.WealthChanged{Villager: v.Name, Delta: -amount, Total: v.Wealth})
	return true
}
