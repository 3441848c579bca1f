package villager

import (
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// NeedSet owns one Need per kind, created at spawn and mutated every tick.
type NeedSet struct {
	needs []*Need
}

// NewNeedSet builds the standard needs at full satisfaction. Hunger is the
// only resource-backed need; Social starts slightly depleted so fresh
// villagers seek company before they starve.
func NewNeedSet(cfg tuning.Needs) *NeedSet {
	return &NeedSet{needs: []*Need{
		{
			Kind:              NeedHunger,
			Current:           100,
			DecayRate:         cfg.HungerDecayPerHour,
			Importance:        1.0,
			CriticalThreshold: cfg.CriticalThreshold,
			Resource:          economy.ResourceFood,
			ResourceAmount:    cfg.FoodPerMeal,
		},
		{
			Kind:              NeedRest,
			Current:           100,
			DecayRate:         cfg.RestDecayPerHour,
			Importance:        0.9,
			CriticalThreshold: cfg.CriticalThreshold,
			Resource:          economy.ResourceNone,
		},
		{
			Kind:              NeedSocial,
			Current:           85,
			DecayRate:         cfg.SocialDecayPerHour,
			Importance:        0.8,
			CriticalThreshold: cfg.CriticalThreshold,
			Resource:          economy.ResourceNone,
		},
	}}
}

// Decay advances each need by the elapsed sim-hours.
func (s *NeedSet) Decay(dtHours float64, v *Villager) {
	for _, n := range s.needs {
		n.Decay(dtHours, v)
	}
}

// MostUrgentCritical returns the critical need with the highest urgency,
// or nil when nothing is critical. Ties keep the earlier-declared need.
func (s *NeedSet) MostUrgentCritical() *Need {
	var best *Need
	for _, n := range s.needs {
		if !n.IsCritical() {
			continue
		}
		if best == nil || n.Urgency() > best.Urgency() {
			best = n
		}
	}
	return best
}

// ByKind returns the need of the given kind, or nil.
func (s *NeedSet) ByKind(k NeedKind) *Need {
	for _, n := range s.needs {
		if n.Kind == k {
			return n
		}
	}
	return nil
}

// All returns the needs in declaration order.
func (s *NeedSet) All() []*Need { return s.needs }

// Average is the mean current value across needs, the mood model's
// needs-satisfaction input.
func (s *NeedSet) Average() float64 {
	if len(s.needs) == 0 {
		return 50
	}
	sum := 0.0
	for _, n := range s.needs {
		sum += n.Current
	}
	return sum / float64(len(s.needs))
}
