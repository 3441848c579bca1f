package villager

import (
	"log/slog"
	"math/rand"

	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// StateType tags the behavior state variants. The fixed declaration order
// is the stable iteration order for priority scoring.
type StateType uint8

const (
	StateIdle StateType = iota
	StateWorking
	StateSocializing
	StateSleeping
	StateRelaxing
	StateNeedFulfillment
)

var stateNames = [...]string{
	"Idle",
	"Working",
	"Socializing",
	"Sleeping",
	"RelaxAtHome",
	"NeedFulfillment",
}

func (s StateType) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Step carries one tick's elapsed time in both units states care about.
type Step struct {
	RealSeconds float64
	SimHours    float64
}

// State is one mutually exclusive activity. Enter and Exit bracket the
// activity; Update runs every tick while current.
type State interface {
	Type() StateType
	Enter(v *Villager)
	Update(v *Villager, step Step)
	Exit(v *Villager)
}

const veryUnhappyThreshold = 30.0

// Brain owns a villager's current behavior state and all transitions.
// Re-assessment fires on a periodic timer, on time-of-day changes, and
// when a need becomes critical; a minimum dwell interval debounces
// thrash between competing states.
type Brain struct {
	current State

	// elapsed is a monotonic real-seconds counter for dwell timing.
	elapsed    float64
	stateStart float64

	checkTimer float64
	cfg        tuning.Behavior
	rng        *rand.Rand
}

// NewBrain starts in Idle. The initial Enter runs on the villager's first
// tick via ensureEntered, after the aggregate is fully wired.
func NewBrain(cfg tuning.Behavior, rng *rand.Rand) *Brain {
	return &Brain{current: nil, cfg: cfg, rng: rng}
}

// Current returns the active state (never nil after the first tick).
func (b *Brain) Current() State {
	if b.current == nil {
		return idleSingleton
	}
	return b.current
}

// idleSingleton answers Current() before the first tick wires a real one.
var idleSingleton State = &idleState{}

// Update advances the current state and periodically reconsiders. The
// periodic reconsideration is itself personality-gated: impulsive
// villagers second-guess themselves more often, and idling always invites
// a rethink.
func (b *Brain) Update(v *Villager, step Step) {
	b.ensureEntered(v)
	b.elapsed += step.RealSeconds

	b.current.Update(v, step)

	b.checkTimer += step.RealSeconds
	if b.checkTimer >= b.cfg.CheckIntervalSeconds {
		b.checkTimer = 0
		if b.rng.Float64() < v.Personality.Impulsivity*0.3 || b.current.Type() == StateIdle {
			b.DetermineNextAction(v)
		}
	}
}

func (b *Brain) ensureEntered(v *Villager) {
	if b.current == nil {
		b.current = newIdleState(b.rng)
		b.stateStart = b.elapsed
		b.current.Enter(v)
	}
}

// TransitionTo swaps states. A same-type transition is a no-op, and a
// transition inside the minimum dwell interval is rejected so rapid
// re-assessments cannot thrash.
func (b *Brain) TransitionTo(v *Villager, next State) {
	if b.current != nil && b.current.Type() == next.Type() {
		return
	}
	if b.current != nil && b.elapsed < b.stateStart+b.cfg.MinStateSeconds {
		return
	}

	oldName := "None"
	if b.current != nil {
		b.current.Exit(v)
		oldName = b.current.Type().String()
	}
	b.current = next
	b.stateStart = b.elapsed
	next.Enter(v)

	v.bus.Publish(events.StateChanged{
		Villager:   v.Name,
		Profession: v.Profession.Spec.Kind.String(),
		From:       oldName,
		To:         next.Type().String(),
	})
}

// OnTimeOfDayChanged handles a schedule boundary: strong pulls toward
// work or sleep, then a general re-assessment. Need fulfillment is never
// interrupted by the schedule.
func (b *Brain) OnTimeOfDayChanged(v *Villager) {
	b.ensureEntered(v)
	cur := b.current.Type()
	if cur == StateNeedFulfillment {
		return
	}
	tod := v.clock.TimeOfDay()

	if v.Profession.IsWorkingHour(tod) && cur != StateWorking &&
		v.Personality.WorkEthic > 0.3 && b.rng.Float64() < v.Personality.WorkEthic*0.8 {
		b.TransitionTo(v, newWorkingState(b.rng))
		return
	}
	if v.Profession.IsRestingHour(tod) && cur != StateSleeping && b.rng.Float64() < 0.7 {
		b.TransitionTo(v, newSleepingState(b.rng))
		return
	}
	b.DetermineNextAction(v)
}

// OnNeedCritical re-assesses immediately when one of the villager's needs
// crosses its critical threshold.
func (b *Brain) OnNeedCritical(v *Villager) {
	b.ensureEntered(v)
	b.DetermineNextAction(v)
}

type candidate struct {
	typ   StateType
	score float64
}

// DetermineNextAction picks the next behavior state.
//
// Critical needs override everything: the most urgent one is either
// addressed directly or, when the villager cannot afford the resource it
// requires, deferred in favor of working for the money first. Otherwise
// every schedule-viable state is scored from personality, need urgency,
// and goal preference, with impulsivity occasionally short-circuiting the
// whole calculation.
func (b *Brain) DetermineNextAction(v *Villager) {
	b.ensureEntered(v)

	if urgent := v.Needs.MostUrgentCritical(); urgent != nil {
		b.handleCriticalNeed(v, urgent)
		return
	}

	tod := v.clock.TimeOfDay()
	veryUnhappy := v.Mood.Happiness < veryUnhappyThreshold
	leisure := v.Profession.IsSocialHour(tod) || tod == clock.Noon

	cands := make([]candidate, 0, 5)
	if v.Profession.IsWorkingHour(tod) && !veryUnhappy {
		cands = append(cands, candidate{StateWorking, v.Personality.WorkEthic * 10})
	}
	if v.Profession.IsRestingHour(tod) {
		cands = append(cands, candidate{StateSleeping, 15})
	}
	if leisure || veryUnhappy {
		score := v.Personality.Sociability*5 + v.Needs.ByKind(NeedSocial).Urgency()*3
		cands = append(cands, candidate{StateSocializing, score})
	}
	if leisure {
		score := (1-v.Personality.Sociability)*5 + v.Needs.ByKind(NeedRest).Urgency()*3
		cands = append(cands, candidate{StateRelaxing, score})
	}
	cands = append(cands, candidate{StateIdle, 1})

	for i := range cands {
		cands[i].score += v.Goals.Preference(cands[i].typ)
	}

	// Impulsive detour: skip scoring and do something unproductive.
	if b.rng.Float64() < v.Personality.Impulsivity*0.15 {
		if next := b.randomImpulsive(cands); next != nil {
			b.TransitionTo(v, next)
			return
		}
	}

	for i := range cands {
		switch cands[i].typ {
		case StateWorking:
			// Shirking: low work ethic halves the chance of caring.
			if v.Personality.WorkEthic < 0.4 && b.rng.Float64() < 0.5 {
				cands[i].score *= 0.1
			}
			if veryUnhappy {
				cands[i].score *= 0.2
			}
		case StateSocializing:
			if veryUnhappy {
				cands[i].score += 3
			}
		case StateRelaxing:
			if veryUnhappy {
				cands[i].score += 3
			}
		case StateIdle:
			if veryUnhappy {
				cands[i].score += 2
			}
		}
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.score > best.score {
			best = c
		}
	}
	b.TransitionTo(v, b.instantiate(best.typ))
}

// handleCriticalNeed routes a critical need: fulfill it, unless the
// required resource is unaffordable and the villager can work for the
// money instead of burning a doomed attempt.
func (b *Brain) handleCriticalNeed(v *Villager, need *Need) {
	if need.Resource != economy.ResourceNone {
		cost := need.ResourceAmount * v.ledger.Price(need.Resource)
		if v.Wealth < cost && v.Profession.Employed() {
			slog.Debug("deferring need, working for wealth first",
				"villager", v.Name, "need", need.Kind.String(), "cost", cost, "wealth", v.Wealth)
			b.TransitionTo(v, newWorkingState(b.rng))
			return
		}
	}
	b.TransitionTo(v, newNeedFulfillmentState(need))
}

// randomImpulsive picks uniformly among the viable unproductive states.
func (b *Brain) randomImpulsive(cands []candidate) State {
	var viable []StateType
	for _, c := range cands {
		switch c.typ {
		case StateSocializing, StateIdle, StateRelaxing:
			viable = append(viable, c.typ)
		}
	}
	if len(viable) == 0 {
		return nil
	}
	return b.instantiate(viable[b.rng.Intn(len(viable))])
}

func (b *Brain) instantiate(t StateType) State {
	switch t {
	case StateWorking:
		return newWorkingState(b.rng)
	case StateSocializing:
		return newSocializingState(b.rng)
	case StateSleeping:
		return newSleepingState(b.rng)
	case StateRelaxing:
		return newRelaxState(b.rng)
	default:
		return newIdleState(b.rng)
	}
}
