// Package tuning holds the simulation's tunable constants, loadable from
// a yaml file. Defaults reproduce the reference balance so the simulation
// runs with no config file at all.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// DayLengthSeconds is how many real seconds one simulated day takes.
	DayLengthSeconds float64 `yaml:"day_length_seconds"`
	StartHour        float64 `yaml:"start_hour"`

	Needs    Needs    `yaml:"needs"`
	Mood     Mood     `yaml:"mood"`
	Behavior Behavior `yaml:"behavior"`
	Economy  Economy  `yaml:"economy"`
	Goals    Goals    `yaml:"goals"`
}

// Needs configures decay rates (points per sim-hour) and fulfillment.
type Needs struct {
	HungerDecayPerHour float64 `yaml:"hunger_decay_per_hour"`
	RestDecayPerHour   float64 `yaml:"rest_decay_per_hour"`
	SocialDecayPerHour float64 `yaml:"social_decay_per_hour"`
	CriticalThreshold  float64 `yaml:"critical_threshold"`
	FulfillAmount      float64 `yaml:"fulfill_amount"`
	FoodPerMeal        float64 `yaml:"food_per_meal"`
}

// Mood configures the happiness blend weights.
type Mood struct {
	NeedsWeight  float64 `yaml:"needs_weight"`
	WealthWeight float64 `yaml:"wealth_weight"`
	WorkWeight   float64 `yaml:"work_weight"`
	GoalWeight   float64 `yaml:"goal_weight"`
}

// Behavior configures the state machine timers (real seconds).
type Behavior struct {
	MinStateSeconds      float64 `yaml:"min_state_seconds"`
	CheckIntervalSeconds float64 `yaml:"check_interval_seconds"`
	MoveTimeoutSeconds   float64 `yaml:"move_timeout_seconds"`
}

// Economy configures initial stock and base prices.
type Economy struct {
	InitialFood   float64 `yaml:"initial_food"`
	InitialWealth float64 `yaml:"initial_wealth"`
	InitialGoods  float64 `yaml:"initial_goods"`
	InitialStone  float64 `yaml:"initial_stone"`

	FoodBasePrice  float64 `yaml:"food_base_price"`
	GoodsBasePrice float64 `yaml:"goods_base_price"`
	StoneBasePrice float64 `yaml:"stone_base_price"`

	// CriticalFloor is the stock level below which a pool is reported
	// critical after consumption.
	CriticalFloor float64 `yaml:"critical_floor"`
}

// Goals configures goal assignment and completion timing (real seconds).
type Goals struct {
	MaxActive            int     `yaml:"max_active"`
	CheckIntervalSeconds float64 `yaml:"check_interval_seconds"`
	ReassignDelayMin     float64 `yaml:"reassign_delay_min"`
	ReassignDelayMax     float64 `yaml:"reassign_delay_max"`
}

// Default returns the reference constants.
func Default() Tuning {
	return Tuning{
		DayLengthSeconds: 300,
		StartHour:        6,
		Needs: Needs{
			HungerDecayPerHour: 4.0,
			RestDecayPerHour:   3.5,
			SocialDecayPerHour: 3.0,
			CriticalThreshold:  20,
			FulfillAmount:      40,
			FoodPerMeal:        10,
		},
		Mood: Mood{
			NeedsWeight:  1.0,
			WealthWeight: 0.3,
			WorkWeight:   0.5,
			GoalWeight:   0.7,
		},
		Behavior: Behavior{
			MinStateSeconds:      0.5,
			CheckIntervalSeconds: 4,
			MoveTimeoutSeconds:   10,
		},
		Economy: Economy{
			InitialFood:    100,
			InitialWealth:  100,
			InitialGoods:   50,
			InitialStone:   20,
			FoodBasePrice:  1.0,
			GoodsBasePrice: 2.0,
			StoneBasePrice: 3.0,
			CriticalFloor:  20,
		},
		Goals: Goals{
			MaxActive:            2,
			CheckIntervalSeconds: 5,
			ReassignDelayMin:     15,
			ReassignDelayMax:     45,
		},
	}
}

// Load reads a tuning file, applying defaults for any omitted field by
// unmarshalling over Default().
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
