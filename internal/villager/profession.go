package villager

import (
	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

// ProfessionKind enumerates village occupations.
type ProfessionKind uint8

const (
	Unemployed ProfessionKind = iota
	Farmer
	Shopkeeper
	Mason
	Priest
)

var professionNames = [...]string{"Unemployed", "Farmer", "Shopkeeper", "Mason", "Priest"}

func (k ProfessionKind) String() string {
	if int(k) < len(professionNames) {
		return professionNames[k]
	}
	return "Unknown"
}

// ProfessionSpec is the static definition of an occupation: what it
// produces, how often, and which time-of-day blocks it works, socializes,
// and rests in.
type ProfessionSpec struct {
	Kind     ProfessionKind
	Resource economy.ResourceType
	// Output is resource units produced per completed work cycle.
	Output float64
	// WealthPerCycle is personal income per completed work cycle.
	WealthPerCycle float64
	// WorkIntervalHours is the sim-hours of effective work per cycle.
	WorkIntervalHours float64

	WorkingHours []clock.TimeOfDay
	SocialHours  []clock.TimeOfDay
	RestingHours []clock.TimeOfDay
}

// ProfessionSpecs is the registry of occupations the spawner draws from.
var ProfessionSpecs = map[ProfessionKind]ProfessionSpec{
	Farmer: {
		Kind:              Farmer,
		Resource:          economy.ResourceFood,
		Output:            6,
		WealthPerCycle:    4,
		WorkIntervalHours: 2,
		WorkingHours:      []clock.TimeOfDay{clock.Morning, clock.Afternoon},
		SocialHours:       []clock.TimeOfDay{clock.Evening},
		RestingHours:      []clock.TimeOfDay{clock.Night},
	},
	Shopkeeper: {
		Kind:              Shopkeeper,
		Resource:          economy.ResourceGoods,
		Output:            4,
		WealthPerCycle:    6,
		WorkIntervalHours: 2,
		WorkingHours:      []clock.TimeOfDay{clock.Noon, clock.Afternoon},
		SocialHours:       []clock.TimeOfDay{clock.Evening},
		RestingHours:      []clock.TimeOfDay{clock.Night},
	},
	Mason: {
		Kind:              Mason,
		Resource:          economy.ResourceStone,
		Output:            3,
		WealthPerCycle:    5,
		WorkIntervalHours: 3,
		WorkingHours:      []clock.TimeOfDay{clock.Morning, clock.Afternoon},
		SocialHours:       []clock.TimeOfDay{clock.Evening},
		RestingHours:      []clock.TimeOfDay{clock.Night},
	},
	Priest: {
		Kind:              Priest,
		Resource:          economy.ResourceNone,
		Output:            0,
		WealthPerCycle:    3,
		WorkIntervalHours: 2,
		WorkingHours:      []clock.TimeOfDay{clock.Morning, clock.Evening},
		SocialHours:       []clock.TimeOfDay{clock.Noon},
		RestingHours:      []clock.TimeOfDay{clock.Night},
	},
	Unemployed: {
		Kind:         Unemployed,
		Resource:     economy.ResourceNone,
		SocialHours:  []clock.TimeOfDay{clock.Noon, clock.Evening},
		RestingHours: []clock.TimeOfDay{clock.Night},
	},
}

// masteryPerCycle is the WorkMastery goal progress granted per cycle.
const masteryPerCycle = 5.0

// Profession is a villager's occupation instance: a work accumulator that
// converts on-the-job sim-hours into ledger production and income. Work
// time is scaled by mood, so happy villagers finish cycles sooner.
type Profession struct {
	Spec ProfessionSpec

	workTimer float64 // effective sim-hours accumulated this cycle
	working   bool
	yield     *economy.YieldCurve
}

// NewProfession creates an instance of the given occupation. yield may be
// nil, disabling daily output variance.
func NewProfession(kind ProfessionKind, yield *economy.YieldCurve) *Profession {
	return &Profession{Spec: ProfessionSpecs[kind], yield: yield}
}

// Employed reports whether the villager holds a producing occupation.
func (p *Profession) Employed() bool { return p.Spec.Kind != Unemployed }

// HandleWork toggles whether the villager is at their workplace working.
// Called by the Working state on arrival and exit.
func (p *Profession) HandleWork(active bool) { p.working = active }

// Working reports whether work is currently accumulating.
func (p *Profession) Working() bool { return p.working }

// Tick accumulates effective work time and completes cycles. Each cycle
// produces into the village ledger, pays the villager, and feeds the
// mastery and contribution goals.
func (p *Profession) Tick(dtHours float64, v *Villager) {
	if !p.working || !p.Employed() || dtHours <= 0 {
		return
	}

	efficiency := v.Mood.WorkEfficiency()
	p.workTimer += dtHours * efficiency
	for p.workTimer >= p.Spec.WorkIntervalHours {
		p.workTimer -= p.Spec.WorkIntervalHours
		p.completeCycle(efficiency, v)
	}
}

func (p *Profession) completeCycle(efficiency float64, v *Villager) {
	produced := 0.0
	if p.Spec.Resource != economy.ResourceNone && p.Spec.Output > 0 {
		produced = p.Spec.Output * efficiency
		if p.yield != nil {
			produced *= p.yield.Factor(v.clock.Day(), p.Spec.Resource)
		}
		v.ledger.Produce(p.Spec.Resource, produced)
		v.Goals.UpdateProgress(VillageContributor, v.ledger.Value(p.Spec.Resource, produced), v)
	}

	if p.Spec.WealthPerCycle > 0 {
		v.EarnWealth(p.Spec.WealthPerCycle * efficiency)
	}
	v.Goals.UpdateProgress(WorkMastery, masteryPerCycle, v)

	v.bus.Publish(events.WorkCompleted{
		Villager:   v.Name,
		Profession: p.Spec.Kind.String(),
		Resource:   p.Spec.Resource.String(),
		Produced:   produced,
	})
}

// IsWorkingHour reports whether tod falls in this occupation's work
// schedule.
func (p *Profession) IsWorkingHour(tod clock.TimeOfDay) bool {
	return containsTOD(p.Spec.WorkingHours, tod)
}

// IsSocialHour reports whether tod is scheduled leisure.
func (p *Profession) IsSocialHour(tod clock.TimeOfDay) bool {
	return containsTOD(p.Spec.SocialHours, tod)
}

// IsRestingHour reports whether tod is scheduled rest.
func (p *Profession) IsRestingHour(tod clock.TimeOfDay) bool {
	return containsTOD(p.Spec.RestingHours, tod)
}

func containsTOD(list []clock.TimeOfDay, tod clock.TimeOfDay) bool {
	for _, t := range list {
		if t == tod {
			return true
		}
	}
	return false
}
