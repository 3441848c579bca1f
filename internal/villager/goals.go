package villager

import (
	"fmt"
	"math/rand"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// GoalKind enumerates the long-term objectives a villager can hold.
type GoalKind uint8

const (
	AccumulateWealth GoalKind = iota
	SocialProminence
	WorkMastery
	VillageContributor
)

var goalNames = [...]string{
	"AccumulateWealth",
	"SocialProminence",
	"WorkMastery",
	"VillageContributor",
}

func (k GoalKind) String() string {
	if int(k) < len(goalNames) {
		return goalNames[k]
	}
	return "Unknown"
}

var allGoalKinds = []GoalKind{AccumulateWealth, SocialProminence, WorkMastery, VillageContributor}

// Goal is one long-term objective with progress toward a target.
type Goal struct {
	Kind        GoalKind
	Description string
	Progress    float64
	Target      float64
	Completed   bool
}

// ProgressPercent is progress/target clamped to [0,100].
func (g *Goal) ProgressPercent() float64 {
	return clamp(g.Progress/g.Target, 0, 1) * 100
}

// GoalSet holds a villager's active and completed goals. Progress is
// sampled periodically; completion grants a mood boost and schedules a
// replacement goal after a randomized delay.
type GoalSet struct {
	Active    []*Goal
	Completed []*Goal

	cfg        tuning.Goals
	rng        *rand.Rand
	checkTimer float64
	// reassignIn counts down real seconds to the next replacement
	// assignment; negative means none pending.
	reassignIn float64
}

// NewGoalSet creates an empty set; call AssignInitial after the villager
// is fully constructed.
func NewGoalSet(cfg tuning.Goals, rng *rand.Rand) *GoalSet {
	return &GoalSet{cfg: cfg, rng: rng, reassignIn: -1}
}

// AssignInitial gives the villager one goal, or two if ambitious, picking
// the personality-preferred kinds.
func (gs *GoalSet) AssignInitial(v *Villager) {
	count := 1
	if v.Personality.Ambition > 0.5 {
		count = 2
	}
	ranked := gs.rankByPersonality(v.Personality)
	for i := 0; i < count && i < len(ranked); i++ {
		gs.addGoal(ranked[i], v)
	}
}

// rankByPersonality scores every goal kind against the trait vector and
// returns kinds best-first.
func (gs *GoalSet) rankByPersonality(p Personality) []GoalKind {
	score := func(k GoalKind) float64 {
		switch k {
		case AccumulateWealth:
			return p.Optimism*0.3 + p.WorkEthic*0.7
		case SocialProminence:
			return p.Sociability*0.8 + p.Optimism*0.2
		case WorkMastery:
			return p.WorkEthic*0.8 + p.Resilience*0.2
		case VillageContributor:
			return p.Altruism*0.6 + p.WorkEthic*0.4
		}
		return 0
	}

	ranked := make([]GoalKind, len(allGoalKinds))
	copy(ranked, allGoalKinds)
	// Insertion sort keeps declaration order on ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && score(ranked[j]) > score(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked
}

// addGoal creates a goal of the given kind with a personality-scaled,
// floor-bounded target.
func (gs *GoalSet) addGoal(kind GoalKind, v *Villager) {
	if len(gs.Active) >= gs.cfg.MaxActive {
		return
	}
	if gs.hasActive(kind) {
		return
	}

	p := v.Personality
	ambitionFactor := 1 + (p.Ambition - 0.5)
	sociabilityFactor := 1 + (p.Sociability - 0.5)
	altruismFactor := 1 + (p.Altruism - 0.5)
	span := func(lo, hi float64) float64 { return lo + gs.rng.Float64()*(hi-lo) }

	g := &Goal{Kind: kind}
	switch kind {
	case AccumulateWealth:
		g.Target = maxf(50, (100+span(50, 150))*ambitionFactor)
		g.Description = fmt.Sprintf("Accumulate %.0f wealth", g.Target)
	case SocialProminence:
		base := 10 + span(5, 15)
		g.Target = maxf(5, base*lerp(sociabilityFactor, ambitionFactor, 0.3))
		g.Description = fmt.Sprintf("Interact with %.0f different villagers", g.Target)
	case WorkMastery:
		g.Target = 100
		g.Description = "Master your profession"
	case VillageContributor:
		base := 200 + span(100, 300)
		g.Target = maxf(100, base*lerp(altruismFactor, ambitionFactor, 0.4))
		g.Description = fmt.Sprintf("Contribute %.0f resource value to the village", g.Target)
	}
	gs.Active = append(gs.Active, g)
}

// Tick samples goal progress on its check interval and runs the pending
// replacement-assignment countdown.
func (gs *GoalSet) Tick(dtReal float64, v *Villager) {
	if gs.reassignIn >= 0 {
		gs.reassignIn -= dtReal
		if gs.reassignIn < 0 {
			gs.assignReplacement(v)
		}
	}

	gs.checkTimer += dtReal
	if gs.checkTimer < gs.cfg.CheckIntervalSeconds {
		return
	}
	gs.checkTimer = 0

	for _, g := range gs.Active {
		if g.Completed {
			continue
		}
		switch g.Kind {
		case AccumulateWealth:
			g.Progress = minf(v.Wealth, g.Target)
		case SocialProminence:
			if v.Brain.Current().Type() == StateSocializing {
				gs.UpdateProgress(SocialProminence, 0.05, v)
			}
		}
	}
	gs.sweepCompleted(v)
}

// UpdateProgress advances the first active, uncompleted goal of the kind.
// Progress is clamped to the target; visible progress earns a small mood
// blip and triggers a completion check. When the delta completes the
// goal, the blip and the completion boost both fire; AddBoost keeps the
// larger, so the completion boost is what the villager feels.
func (gs *GoalSet) UpdateProgress(kind GoalKind, delta float64, v *Villager) {
	for _, g := range gs.Active {
		if g.Kind != kind || g.Completed {
			continue
		}
		old := g.Progress
		g.Progress = minf(g.Target, g.Progress+delta)
		if g.Progress > old+0.1 {
			v.Mood.AddBoost(1, 5)
		}
		gs.checkCompletion(g, v)
		return
	}
}

// checkCompletion marks a finished goal and grants the completion boost.
// The goal stays in Active until the next sweep so iteration remains
// stable for callers.
func (gs *GoalSet) checkCompletion(g *Goal, v *Villager) {
	if g.Completed || g.Progress < g.Target {
		return
	}
	g.Completed = true
	boost := 20 + gs.rng.Float64()*10
	v.Mood.AddBoost(boost, 30)
	v.bus.Publish(events.GoalCompleted{
		Villager:    v.Name,
		Goal:        g.Kind.String(),
		Description: g.Description,
	})
}

// sweepCompleted moves finished goals to the completed set and schedules
// one replacement assignment.
func (gs *GoalSet) sweepCompleted(v *Villager) {
	moved := false
	remaining := gs.Active[:0]
	for _, g := range gs.Active {
		gs.checkCompletion(g, v)
		if g.Completed {
			gs.Completed = append(gs.Completed, g)
			moved = true
		} else {
			remaining = append(remaining, g)
		}
	}
	gs.Active = remaining

	if moved && gs.reassignIn < 0 {
		lo, hi := gs.cfg.ReassignDelayMin, gs.cfg.ReassignDelayMax
		gs.reassignIn = lo + gs.rng.Float64()*(hi-lo)
	}
}

// assignReplacement adds a random goal whose kind is neither active nor
// previously completed. With no candidates the re-assignment is skipped.
func (gs *GoalSet) assignReplacement(v *Villager) {
	gs.reassignIn = -1
	if len(gs.Active) >= gs.cfg.MaxActive {
		return
	}

	var candidates []GoalKind
	for _, kind := range allGoalKinds {
		if gs.hasActive(kind) || gs.hasCompleted(kind) {
			continue
		}
		candidates = append(candidates, kind)
	}
	if len(candidates) == 0 {
		// ErrNoViableGoal: nothing left to aspire to.
		return
	}
	gs.addGoal(candidates[gs.rng.Intn(len(candidates))], v)
}

// Preference is the additive bonus a candidate behavior state earns for
// materially advancing an active goal.
func (gs *GoalSet) Preference(st StateType) float64 {
	pref := 0.0
	for _, g := range gs.Active {
		if g.Completed {
			continue
		}
		switch g.Kind {
		case AccumulateWealth:
			if st == StateWorking {
				pref += 2
			}
		case SocialProminence:
			if st == StateSocializing {
				pref += 2
			}
		case WorkMastery:
			if st == StateWorking {
				pref += 3
			}
		case VillageContributor:
			if st == StateWorking {
				pref += 2
			}
		}
	}
	return pref
}

// AverageProgress is the mean progress percentage across active goals, or
// a neutral 50 with none. Feeds the mood blend.
func (gs *GoalSet) AverageProgress() float64 {
	if len(gs.Active) == 0 {
		return 50
	}
	sum := 0.0
	for _, g := range gs.Active {
		sum += g.ProgressPercent()
	}
	return sum / float64(len(gs.Active))
}

func (gs *GoalSet) hasActive(kind GoalKind) bool {
	for _, g := range gs.Active {
		if g.Kind == kind {
			return true
		}
	}
	return false
}

func (gs *GoalSet) hasCompleted(kind GoalKind) bool {
	for _, g := range gs.Completed {
		if g.Kind == kind {
			return true
		}
	}
	return false
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
