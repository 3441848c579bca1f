package economy

import opensimplex "github.com/ojrac/opensimplex-go"

// YieldCurve produces a smooth day-to-day variance factor for profession
// output: good and bad harvest days that drift rather than jump. The
// factor stays within [0.75, 1.25] so it perturbs, never dominates.
type YieldCurve struct {
	noise opensimplex.Noise
}

// NewYieldCurve creates a deterministic curve for a world seed.
func NewYieldCurve(seed int64) *YieldCurve {
	return &YieldCurve{noise: opensimplex.NewNormalized(seed)}
}

// Factor returns the yield multiplier for a simulated day. Each resource
// gets its own track so a bad harvest doesn't flatten every trade at once.
func (y *YieldCurve) Factor(day int, t ResourceType) float64 {
	n := y.noise.Eval2(float64(day)*0.35, float64(t)*17.0)
	return 0.75 + 0.5*n
}
