package villager

import (
	"math"
	"testing"

	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/economy"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

func TestWorkCycleProducesAndPays(t *testing.T) {
	v := newTestVillager(t, nil)
	cycles := countEvents(v, events.KindWorkCompleted)
	v.Mood.Happiness = 50 // efficiency exactly 1.0

	foodBefore := v.ledger.Amount(economy.ResourceFood)
	v.Profession.HandleWork(true)
	v.Profession.Tick(2, v) // one farmer cycle

	if got := v.ledger.Amount(economy.ResourceFood); got != foodBefore+6 {
		t.Fatalf("food = %v, want %v", got, foodBefore+6)
	}
	if v.Wealth != 104 {
		t.Fatalf("wealth = %v, want 104", v.Wealth)
	}
	if *cycles != 1 {
		t.Fatalf("work events = %d, want 1", *cycles)
	}
}

func TestWorkAccumulatesAcrossTicks(t *testing.T) {
	v := newTestVillager(t, nil)
	v.Mood.Happiness = 50
	v.Profession.HandleWork(true)

	v.Profession.Tick(1.5, v)
	if v.Wealth != 100 {
		t.Fatalf("wealth = %v, want 100 before the cycle completes", v.Wealth)
	}
	v.Profession.Tick(0.5, v)
	if v.Wealth != 104 {
		t.Fatalf("wealth = %v, want 104 after the cycle completes", v.Wealth)
	}
}

func TestMoodScalesWorkOutput(t *testing.T) {
	v := newTestVillager(t, nil)
	v.Mood.Happiness = 100 // efficiency 1.5
	v.Profession.HandleWork(true)

	foodBefore := v.ledger.Amount(economy.ResourceFood)
	v.Profession.Tick(2, v) // 3 effective hours: one cycle, one banked

	produced := v.ledger.Amount(economy.ResourceFood) - foodBefore
	if math.Abs(produced-9) > 1e-9 {
		t.Fatalf("produced = %v, want 9 at peak efficiency", produced)
	}
	if math.Abs(v.Wealth-106) > 1e-9 {
		t.Fatalf("wealth = %v, want 106", v.Wealth)
	}
}

func TestIdleProfessionNeverProduces(t *testing.T) {
	v := newTestVillager(t, func(c *Config) { c.Profession = Unemployed })
	v.Profession.HandleWork(true)
	v.Profession.Tick(10, v)
	if v.Wealth != 100 {
		t.Fatalf("wealth = %v, want untouched 100", v.Wealth)
	}
}

func TestNotWorkingAccumulatesNothing(t *testing.T) {
	v := newTestVillager(t, nil)
	v.Profession.Tick(10, v)
	if v.Wealth != 100 {
		t.Fatalf("wealth = %v, want 100 while off the clock", v.Wealth)
	}
}

func TestWorkFeedsMasteryGoal(t *testing.T) {
	v := newTestVillager(t, nil)
	v.Mood.Happiness = 50
	v.Goals.Active = []*Goal{{Kind: WorkMastery, Target: 100}}

	v.Profession.HandleWork(true)
	v.Profession.Tick(2, v)
	if got := v.Goals.Active[0].Progress; got != masteryPerCycle {
		t.Fatalf("mastery progress = %v, want %v", got, masteryPerCycle)
	}
}

func TestProfessionSchedules(t *testing.T) {
	farmer := NewProfession(Farmer, nil)
	if !farmer.IsWorkingHour(clock.Morning) || farmer.IsWorkingHour(clock.Night) {
		t.Fatal("farmer working hours wrong")
	}
	if !farmer.IsRestingHour(clock.Night) {
		t.Fatal("farmer should rest at night")
	}
	if !farmer.IsSocialHour(clock.Evening) {
		t.Fatal("farmer should socialize in the evening")
	}

	priest := NewProfession(Priest, nil)
	if !priest.IsWorkingHour(clock.Evening) {
		t.Fatal("priest should hold evening service")
	}
	if priest.Employed() != true {
		t.Fatal("priest is employed")
	}

	idle := NewProfession(Unemployed, nil)
	if idle.Employed() {
		t.Fatal("unemployed reported as employed")
	}
}
