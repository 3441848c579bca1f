package villager

import (
	"math"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
	"github.com/bucephalus26/sustainable-village-sim/internal/tuning"
)

// MoodCategory is the discrete mood derived from happiness.
type MoodCategory uint8

const (
	Unhappy MoodCategory = iota // happiness < 30
	Content                     // 30–70
	Happy                       // happiness > 70
)

var moodNames = [...]string{"Unhappy", "Content", "Happy"}

func (c MoodCategory) String() string {
	if int(c) < len(moodNames) {
		return moodNames[c]
	}
	return "Unknown"
}

// CategoryFor maps a happiness value to its category.
func CategoryFor(happiness float64) MoodCategory {
	switch {
	case happiness < 30:
		return Unhappy
	case happiness > 70:
		return Happy
	default:
		return Content
	}
}

const moodHistoryCap = 10

// Mood blends need satisfaction, wealth, work, and goal progress into a
// single happiness scalar, smoothed so it drifts rather than snaps.
type Mood struct {
	Happiness float64

	boost          float64
	boostRemaining float64 // real seconds

	prevCategory MoodCategory
	history      []float64
	weights      tuning.Mood
}

// NewMood starts at neutral happiness.
func NewMood(cfg tuning.Mood) *Mood {
	return &Mood{Happiness: 50, prevCategory: Content, weights: cfg}
}

// Update recomputes the happiness target from the villager's current
// situation and low-passes toward it. A category transition publishes
// MoodChanged.
func (m *Mood) Update(dtReal float64, v *Villager) {
	needsSat := v.Needs.Average()
	wealthSat := math.Min(100, math.Log10(v.Wealth+1)*20)
	workSat := m.workSatisfaction(v)
	goalSat := v.Goals.AverageProgress()

	w := m.weights
	totalWeight := w.NeedsWeight + w.WealthWeight + w.WorkWeight + w.GoalWeight
	target := (needsSat*w.NeedsWeight +
		wealthSat*w.WealthWeight +
		workSat*w.WorkWeight +
		goalSat*w.GoalWeight) / totalWeight

	if m.boostRemaining > 0 {
		target += m.boost
		m.boostRemaining -= dtReal
		if m.boostRemaining <= 0 {
			m.boost = 0
			m.boostRemaining = 0
		}
	}

	target += (v.Personality.Optimism - 0.5) * 20
	target = clamp(target, 0, 100)

	// First-order low pass: mood never snaps to its target.
	m.Happiness += (target - m.Happiness) * math.Min(1, dtReal*0.1)

	m.history = append(m.history, m.Happiness)
	if len(m.history) > moodHistoryCap {
		m.history = m.history[len(m.history)-moodHistoryCap:]
	}

	if cat := m.Category(); cat != m.prevCategory {
		v.bus.Publish(events.MoodChanged{
			Villager:  v.Name,
			From:      m.prevCategory.String(),
			To:        cat.String(),
			Happiness: m.Happiness,
		})
		m.prevCategory = cat
	}
}

func (m *Mood) workSatisfaction(v *Villager) float64 {
	if !v.Profession.Employed() {
		return 40
	}
	sat := 60.0
	if v.Personality.WorkEthic > 0.7 {
		sat += 15
	} else if v.Personality.WorkEthic < 0.3 {
		sat -= 10
	}
	return sat
}

// AddBoost applies a temporary happiness boost. A later, larger boost
// replaces the live one; a smaller one is ignored so a goal-completion
// surge is never clobbered by a trailing progress blip.
func (m *Mood) AddBoost(amount, durationSeconds float64) {
	if m.boostRemaining > 0 && m.boost > amount {
		return
	}
	m.boost = amount
	m.boostRemaining = durationSeconds
}

// Category returns the discrete mood for the current happiness.
func (m *Mood) Category() MoodCategory { return CategoryFor(m.Happiness) }

// WorkEfficiency scales profession output with mood: 0.5× at rock bottom,
// 1.5× at peak happiness.
func (m *Mood) WorkEfficiency() float64 {
	return lerp(0.5, 1.5, m.Happiness/100)
}

// SocialQuality scales social interactions the same way, narrower band.
func (m *Mood) SocialQuality() float64 {
	return lerp(0.7, 1.3, m.Happiness/100)
}

// Trend is the average happiness delta across the recent history window.
func (m *Mood) Trend() float64 {
	if len(m.history) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(m.history); i++ {
		sum += m.history[i] - m.history[i-1]
	}
	return sum / float64(len(m.history)-1)
}

func lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}
