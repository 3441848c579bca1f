package villager

import (
	"math"

	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

// NeedKind enumerates the physiological needs every villager carries.
// Declaration order is the tie-break order for critical-need handling.
type NeedKind uint8

const (
	NeedHunger NeedKind = iota
	NeedRest
	NeedSocial
)

var needNames = [...]string{"Hunger", "Rest", "Social"}

func (k NeedKind) String() string {
	if int(k) < len(needNames) {
		return needNames[k]
	}
	return "Unknown"
}

// Diminishing-returns parameters: fulfillments within the memory window
// are progressively less effective.
const (
	fulfillMemoryHours = 3.0
	diminishingFactor  = 0.7
	needMax            = 100.0
)

// Need is a single decaying quantity in [0,100]. It decays every tick and
// recovers through fulfillment (possibly consuming a village resource) or
// gradual recovery while sleeping or relaxing. Crossing the critical
// threshold emits an event exactly once per crossing, in either direction.
type Need struct {
	Kind              NeedKind
	Current           float64
	DecayRate         float64 // points per sim-hour
	Importance        float64
	CriticalThreshold float64

	Resource       economy.ResourceType
	ResourceAmount float64

	lastFulfilled float64 // sim-hours timestamp of the last paid fulfillment
	streak        int
}

// Decay lowers the need by rate × elapsed sim-hours × the owner's
// personality multiplier, clamped at zero. A downward crossing of the
// critical threshold publishes NeedCritical.
func (n *Need) Decay(dtHours float64, v *Villager) {
	if dtHours <= 0 {
		return
	}
	mult := v.Personality.NeedDecayMultiplier(n.Kind)
	prev := n.Current
	n.Current = math.Max(0, n.Current-n.DecayRate*dtHours*mult)

	if !n.criticalAt(prev) && n.IsCritical() {
		v.bus.Publish(events.NeedCritical{
			Villager: v.Name,
			Need:     n.Kind.String(),
			Value:    n.Current,
		})
	}
}

// Fulfill attempts a one-shot fulfillment of baseAmount points.
//
// Resource-backed needs cost resourceAmount × current price in personal
// wealth, then consume stock from the ledger. The wealth debit happens
// before the stock check and is not refunded on supply failure (see
// ErrInsufficientSupply). Repeated fulfillment within the memory window
// is subject to diminishing returns. Recovering from critical publishes
// NeedFulfilled.
func (n *Need) Fulfill(baseAmount float64, v *Villager) error {
	if n.Resource != economy.ResourceNone {
		cost := n.ResourceAmount * v.ledger.Price(n.Resource)
		if v.Wealth < cost {
			v.bus.Publish(events.NeedFulfillmentFailed{
				Villager: v.Name,
				Need:     n.Kind.String(),
				Resource: n.Resource.String(),
				Amount:   n.ResourceAmount,
				Reason:   "insufficient wealth",
			})
			return ErrInsufficientWealth
		}
		v.SpendWealth(cost)

		if !v.ledger.Consume(n.Resource, n.ResourceAmount) {
			v.bus.Publish(events.NeedFulfillmentFailed{
				Villager: v.Name,
				Need:     n.Kind.String(),
				Resource: n.Resource.String(),
				Amount:   n.ResourceAmount,
				Reason:   "insufficient supply",
			})
			return ErrInsufficientSupply
		}
	}

	now := v.clock.TotalHours()
	if now-n.lastFulfilled < fulfillMemoryHours {
		n.streak++
		baseAmount *= math.Pow(diminishingFactor, float64(n.streak-1))
	} else {
		n.streak = 1
	}
	n.lastFulfilled = now

	prev := n.Current
	n.Current = clamp(n.Current+baseAmount, 0, needMax)

	if n.criticalAt(prev) && !n.IsCritical() {
		v.bus.Publish(events.NeedFulfilled{
			Villager: v.Name,
			Need:     n.Kind.String(),
			Value:    n.Current,
		})
	}
	return nil
}

// FulfillGradually recovers the need at ratePerHour over elapsed
// sim-hours, with no resource cost and no diminishing returns. Used by
// sleeping and relaxing.
func (n *Need) FulfillGradually(dtHours, ratePerHour float64, v *Villager) {
	if dtHours <= 0 {
		return
	}
	prev := n.Current
	n.Current = math.Min(needMax, n.Current+ratePerHour*dtHours)

	if n.criticalAt(prev) && !n.IsCritical() {
		v.bus.Publish(events.NeedFulfilled{
			Villager: v.Name,
			Need:     n.Kind.String(),
			Value:    n.Current,
		})
	}
}

// Urgency ranks how pressing this need is: emptier and more important
// means more urgent, doubled once critical. This is the sole ranking the
// state machine uses.
func (n *Need) Urgency() float64 {
	urgency := (1 - n.Current/needMax) * n.Importance
	if n.IsCritical() {
		urgency *= 2
	}
	return urgency
}

// IsCritical reports whether the need is at or below its threshold.
func (n *Need) IsCritical() bool { return n.criticalAt(n.Current) }

func (n *Need) criticalAt(value float64) bool { return value <= n.CriticalThreshold }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
