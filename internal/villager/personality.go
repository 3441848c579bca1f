package villager

import "math/rand"

// Personality is a fixed vector of trait scalars in [0,1], immutable after
// spawn. Every other subsystem reads from it: needs decay faster or slower,
// the state machine weighs work against leisure, goals pick their targets.
type Personality struct {
	Sociability float64 `json:"sociability"`
	WorkEthic   float64 `json:"work_ethic"`
	Resilience  float64 `json:"resilience"`
	Impulsivity float64 `json:"impulsivity"`
	Optimism    float64 `json:"optimism"`
	Ambition    float64 `json:"ambition"`
	Altruism    float64 `json:"altruism"`
}

// RandomPersonality draws balanced traits within tuned ranges from a
// seeded source, keeping spawns reproducible for a given world seed.
func RandomPersonality(rng *rand.Rand) Personality {
	span := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	return Personality{
		Sociability: span(0.3, 0.8),
		WorkEthic:   span(0.4, 0.9),
		Resilience:  span(0.3, 0.8),
		Impulsivity: span(0.1, 0.7),
		Optimism:    span(0.3, 0.8),
		Ambition:    span(0.2, 0.9),
		Altruism:    span(0.2, 0.8),
	}
}

// NeedDecayMultiplier scales a need's decay rate by trait. Loners get
// lonely slower, the unresilient tire faster, the impulsive get hungry
// faster.
func (p Personality) NeedDecayMultiplier(kind NeedKind) float64 {
	switch kind {
	case NeedSocial:
		return 1.0 + (0.5-p.Sociability)*0.5
	case NeedRest:
		return 1.0 + (0.5-p.Resilience)*0.5
	case NeedHunger:
		return 1.0 + (p.Impulsivity-0.5)*0.3
	default:
		return 1.0
	}
}

// TraitBlend mixes two traits for decisions that sit between them.
func (p Personality) TraitBlend(primary, secondary, primaryWeight float64) float64 {
	return primary*primaryWeight + secondary*(1-primaryWeight)
}
