package villager

import (
	"math/rand"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

// arrival tracks progress toward a movement target so states can detect
// a villager stuck en route and bail out instead of blocking forever.
type arrival struct {
	arrived   float64 // real seconds since arrival, valid once done
	waiting   float64 // real seconds spent still moving
	done      bool
	timeoutAt float64
}

func newArrival(timeoutSeconds float64) arrival {
	return arrival{timeoutAt: timeoutSeconds}
}

// advance returns (arrived, timedOut). timedOut is edge-triggered.
func (a *arrival) advance(v *Villager, dtReal float64) (bool, bool) {
	if a.done {
		a.arrived += dtReal
		return true, false
	}
	if v.mover == nil || v.mover.HasArrived() {
		a.done = true
		return true, false
	}
	a.waiting += dtReal
	if a.waiting >= a.timeoutAt {
		return false, true
	}
	return false, false
}

func (a *arrival) timeOut(v *Villager, st StateType) {
	v.bus.Publish(events.MovementTimedOut{Villager: v.Name, State: st.String()})
	if v.mover != nil {
		v.mover.ClearTarget()
	}
	v.Brain.TransitionTo(v, newIdleState(v.Brain.rng))
}

// idleState wanders near the current position for a few seconds, watching
// for anything better to do.
type idleState struct {
	rng      *rand.Rand
	duration float64
	elapsed  float64
}

func newIdleState(rng *rand.Rand) *idleState {
	return &idleState{rng: rng}
}

func (s *idleState) Type() StateType { return StateIdle }

func (s *idleState) Enter(v *Villager) {
	s.duration = 2 + s.rng.Float64()*3
	if v.mover != nil {
		v.mover.SetTarget(v.loc.RandomNearby(v, 3))
	}
}

func (s *idleState) Update(v *Villager, step Step) {
	if urgent := v.Needs.MostUrgentCritical(); urgent != nil {
		v.Brain.handleCriticalNeed(v, urgent)
		return
	}
	s.elapsed += step.RealSeconds
	if s.elapsed >= s.duration {
		v.Brain.DetermineNextAction(v)
	}
}

func (s *idleState) Exit(v *Villager) {}

// workingState walks to the workplace and works a 3 to 5 sim-hour shift,
// breaking off when the working block ends or a need turns desperate.
type workingState struct {
	rng      *rand.Rand
	arr      arrival
	duration float64 // sim hours
	worked   float64
	started  bool
}

func newWorkingState(rng *rand.Rand) *workingState {
	return &workingState{rng: rng}
}

func (s *workingState) Type() StateType { return StateWorking }

func (s *workingState) Enter(v *Villager) {
	s.duration = 3 + s.rng.Float64()*2
	s.arr = newArrival(v.Brain.cfg.MoveTimeoutSeconds)
	if v.mover != nil {
		v.mover.SetTarget(v.loc.Workplace(v))
	}
}

func (s *workingState) Update(v *Villager, step Step) {
	arrived, timedOut := s.arr.advance(v, step.RealSeconds)
	if timedOut {
		s.arr.timeOut(v, StateWorking)
		return
	}
	if !arrived {
		return
	}
	if !s.started {
		s.started = true
		v.Profession.HandleWork(true)
	}
	s.worked += step.SimHours

	for _, n := range v.Needs.All() {
		if n.Urgency() > 0.7 {
			v.Brain.handleCriticalNeed(v, n)
			return
		}
	}
	if s.worked >= s.duration || !v.Profession.IsWorkingHour(v.clock.TimeOfDay()) {
		v.Brain.DetermineNextAction(v)
	}
}

func (s *workingState) Exit(v *Villager) {
	v.Profession.HandleWork(false)
}

// socializingState heads to a leisure spot and slowly refills the social
// need while there.
type socializingState struct {
	rng      *rand.Rand
	arr      arrival
	duration float64 // sim hours
	spent    float64
}

func newSocializingState(rng *rand.Rand) *socializingState {
	return &socializingState{rng: rng}
}

func (s *socializingState) Type() StateType { return StateSocializing }

func (s *socializingState) Enter(v *Villager) {
	s.duration = 1 + s.rng.Float64()*2
	s.arr = newArrival(v.Brain.cfg.MoveTimeoutSeconds)
	if v.mover != nil {
		v.mover.SetTarget(v.loc.Leisure(v))
	}
}

func (s *socializingState) Update(v *Villager, step Step) {
	arrived, timedOut := s.arr.advance(v, step.RealSeconds)
	if timedOut {
		s.arr.timeOut(v, StateSocializing)
		return
	}
	if !arrived {
		return
	}
	s.spent += step.SimHours
	rate := 10 * v.Mood.SocialQuality()
	v.Needs.ByKind(NeedSocial).FulfillGradually(step.SimHours, rate, v)

	if s.spent >= s.duration {
		v.Brain.DetermineNextAction(v)
	}
}

func (s *socializingState) Exit(v *Villager) {}

// sleepingState goes home and sleeps 6 to 8 sim hours, waking early only
// once the resting block is over and enough sleep is banked.
type sleepingState struct {
	rng      *rand.Rand
	arr      arrival
	duration float64 // sim hours
	slept    float64
}

func newSleepingState(rng *rand.Rand) *sleepingState {
	return &sleepingState{rng: rng}
}

func (s *sleepingState) Type() StateType { return StateSleeping }

func (s *sleepingState) Enter(v *Villager) {
	s.duration = 6 + s.rng.Float64()*2
	s.arr = newArrival(v.Brain.cfg.MoveTimeoutSeconds)
	if v.mover != nil {
		v.mover.SetTarget(v.loc.Home(v))
	}
}

func (s *sleepingState) Update(v *Villager, step Step) {
	arrived, timedOut := s.arr.advance(v, step.RealSeconds)
	if timedOut {
		s.arr.timeOut(v, StateSleeping)
		return
	}
	if !arrived {
		return
	}
	s.slept += step.SimHours
	v.Needs.ByKind(NeedRest).FulfillGradually(step.SimHours, 15, v)

	if s.slept >= s.duration && !v.Profession.IsRestingHour(v.clock.TimeOfDay()) {
		v.Brain.DetermineNextAction(v)
	}
}

func (s *sleepingState) Exit(v *Villager) {}

// relaxState is quiet downtime at home: a light rest refill without the
// commitment of sleep.
type relaxState struct {
	rng      *rand.Rand
	arr      arrival
	duration float64 // sim hours
	spent    float64
}

func newRelaxState(rng *rand.Rand) *relaxState {
	return &relaxState{rng: rng}
}

func (s *relaxState) Type() StateType { return StateRelaxing }

func (s *relaxState) Enter(v *Villager) {
	s.duration = 1 + s.rng.Float64()
	s.arr = newArrival(v.Brain.cfg.MoveTimeoutSeconds * 1.5)
	if v.mover != nil {
		v.mover.SetTarget(v.loc.Home(v))
	}
}

func (s *relaxState) Update(v *Villager, step Step) {
	if urgent := v.Needs.MostUrgentCritical(); urgent != nil {
		v.Brain.handleCriticalNeed(v, urgent)
		return
	}
	arrived, timedOut := s.arr.advance(v, step.RealSeconds)
	if timedOut {
		s.arr.timeOut(v, StateRelaxing)
		return
	}
	if !arrived {
		return
	}
	s.spent += step.SimHours
	v.Needs.ByKind(NeedRest).FulfillGradually(step.SimHours, 5, v)

	if s.spent >= s.duration {
		v.Brain.DetermineNextAction(v)
	}
}

func (s *relaxState) Exit(v *Villager) {}

// needFulfillmentState walks to wherever the need is served and spends a
// short beat fulfilling it. A failed attempt (no money, no stock) drops
// back to Idle rather than retrying in a loop.
type needFulfillmentState struct {
	need    *Need
	arr     arrival
	elapsed float64
}

const fulfillBeatSeconds = 3.0

func newNeedFulfillmentState(need *Need) *needFulfillmentState {
	return &needFulfillmentState{need: need}
}

func (s *needFulfillmentState) Type() StateType { return StateNeedFulfillment }

func (s *needFulfillmentState) Enter(v *Villager) {
	s.arr = newArrival(v.Brain.cfg.MoveTimeoutSeconds)
	if v.mover != nil {
		v.mover.SetTarget(v.loc.NeedLocation(s.need.Kind))
	}
}

func (s *needFulfillmentState) Update(v *Villager, step Step) {
	arrived, timedOut := s.arr.advance(v, step.RealSeconds)
	if timedOut {
		s.arr.timeOut(v, StateNeedFulfillment)
		return
	}
	if !arrived {
		return
	}
	s.elapsed += step.RealSeconds
	if s.elapsed < fulfillBeatSeconds {
		return
	}
	if err := s.need.Fulfill(v.fulfillAmount, v); err != nil {
		v.Brain.TransitionTo(v, newIdleState(v.Brain.rng))
		return
	}
	v.Brain.DetermineNextAction(v)
}

func (s *needFulfillmentState) Exit(v *Villager) {}
