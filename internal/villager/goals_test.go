package villager

import (
	"testing"

	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

func TestAssignInitialCountFollowsAmbition(t *testing.T) {
	modest := newTestVillager(t, func(c *Config) {
		p := balancedTraits()
		p.Ambition = 0.3
		c.Personality = p
	})
	if got := len(modest.Goals.Active); got != 1 {
		t.Fatalf("modest villager goals = %d, want 1", got)
	}

	driven := newTestVillager(t, func(c *Config) {
		p := balancedTraits()
		p.Ambition = 0.9
		c.Personality = p
	})
	if got := len(driven.Goals.Active); got != 2 {
		t.Fatalf("driven villager goals = %d, want 2", got)
	}
}

func TestRankByPersonality(t *testing.T) {
	v := newTestVillager(t, nil)

	p := balancedTraits()
	p.Sociability = 0.9
	p.WorkEthic = 0.1
	ranked := v.Goals.rankByPersonality(p)
	if ranked[0] != SocialProminence {
		t.Fatalf("top goal = %v, want SocialProminence", ranked[0])
	}

	p = balancedTraits()
	p.WorkEthic = 0.95
	p.Resilience = 0.9
	ranked = v.Goals.rankByPersonality(p)
	if ranked[0] != WorkMastery {
		t.Fatalf("top goal = %v, want WorkMastery", ranked[0])
	}
}

func TestUpdateProgressClampsAndCompletes(t *testing.T) {
	v := newTestVillager(t, nil)
	completed := countEvents(v, events.KindGoalCompleted)

	gs := v.Goals
	gs.Active = []*Goal{{Kind: WorkMastery, Target: 100, Description: "Master your profession"}}

	gs.UpdateProgress(WorkMastery, 95, v)
	if gs.Active[0].Progress != 95 {
		t.Fatalf("progress = %v, want 95", gs.Active[0].Progress)
	}
	if *completed != 0 {
		t.Fatal("goal completed prematurely")
	}

	gs.UpdateProgress(WorkMastery, 10, v)
	if gs.Active[0].Progress != 100 {
		t.Fatalf("progress = %v, want clamped 100", gs.Active[0].Progress)
	}
	if !gs.Active[0].Completed {
		t.Fatal("goal not marked completed")
	}
	if *completed != 1 {
		t.Fatalf("completion events = %d, want 1", *completed)
	}
	if v.Mood.boost < 20 || v.Mood.boost > 30 {
		t.Fatalf("completion boost = %v, want within [20,30]", v.Mood.boost)
	}
	if v.Mood.boostRemaining != 30 {
		t.Fatalf("boost duration = %v, want 30", v.Mood.boostRemaining)
	}
}

func TestSweepMovesCompletedAndSchedulesReplacement(t *testing.T) {
	v := newTestVillager(t, nil)
	gs := v.Goals
	gs.Active = []*Goal{{Kind: WorkMastery, Target: 100}}
	gs.UpdateProgress(WorkMastery, 100, v)

	gs.Tick(gs.cfg.CheckIntervalSeconds, v)
	if len(gs.Active) != 0 {
		t.Fatalf("active = %d, want 0 after sweep", len(gs.Active))
	}
	if len(gs.Completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(gs.Completed))
	}
	if gs.reassignIn < gs.cfg.ReassignDelayMin || gs.reassignIn > gs.cfg.ReassignDelayMax {
		t.Fatalf("reassign delay = %v, want within [%v,%v]",
			gs.reassignIn, gs.cfg.ReassignDelayMin, gs.cfg.ReassignDelayMax)
	}
}

func TestReplacementExcludesActiveAndCompleted(t *testing.T) {
	v := newTestVillager(t, nil)
	gs := v.Goals
	gs.Active = []*Goal{{Kind: AccumulateWealth, Target: 100}}
	gs.Completed = []*Goal{
		{Kind: SocialProminence, Target: 10, Completed: true},
		{Kind: WorkMastery, Target: 100, Completed: true},
	}

	gs.assignReplacement(v)
	if got := len(gs.Active); got != 2 {
		t.Fatalf("active = %d, want 2", got)
	}
	if gs.Active[1].Kind != VillageContributor {
		t.Fatalf("replacement = %v, want VillageContributor", gs.Active[1].Kind)
	}
}

func TestReplacementSkipsWhenNothingLeft(t *testing.T) {
	v := newTestVillager(t, nil)
	gs := v.Goals
	gs.Active = nil
	for _, k := range allGoalKinds {
		gs.Completed = append(gs.Completed, &Goal{Kind: k, Completed: true})
	}

	gs.assignReplacement(v)
	if len(gs.Active) != 0 {
		t.Fatalf("active = %d, want 0 with every aspiration exhausted", len(gs.Active))
	}
	if gs.reassignIn >= 0 {
		t.Fatal("reassign countdown should be cleared")
	}
}

func TestWealthGoalTracksBalance(t *testing.T) {
	v := newTestVillager(t, nil)
	gs := v.Goals
	gs.Active = []*Goal{{Kind: AccumulateWealth, Target: 150}}

	v.Wealth = 120
	gs.Tick(gs.cfg.CheckIntervalSeconds, v)
	if gs.Active[0].Progress != 120 {
		t.Fatalf("progress = %v, want 120", gs.Active[0].Progress)
	}

	v.Wealth = 500
	gs.Tick(gs.cfg.CheckIntervalSeconds, v)
	if len(gs.Completed) != 1 {
		t.Fatalf("wealth goal not completed at %v/%v", gs.Active, gs.Completed)
	}
}

func TestPreferenceRewardsGoalAdvancingStates(t *testing.T) {
	v := newTestVillager(t, nil)
	gs := v.Goals
	gs.Active = []*Goal{
		{Kind: WorkMastery, Target: 100},
		{Kind: SocialProminence, Target: 10},
	}

	if got := gs.Preference(StateWorking); got != 3 {
		t.Fatalf("working preference = %v, want 3", got)
	}
	if got := gs.Preference(StateSocializing); got != 2 {
		t.Fatalf("socializing preference = %v, want 2", got)
	}
	if got := gs.Preference(StateSleeping); got != 0 {
		t.Fatalf("sleeping preference = %v, want 0", got)
	}
}

func TestAverageProgressNeutralWhenEmpty(t *testing.T) {
	v := newTestVillager(t, nil)
	v.Goals.Active = nil
	if got := v.Goals.AverageProgress(); got != 50 {
		t.Fatalf("average progress = %v, want neutral 50", got)
	}
}
