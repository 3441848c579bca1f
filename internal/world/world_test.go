package world

import (
	"math/rand"
	"testing"

	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
)

func testVillagerNamed(name string, prof villager.ProfessionKind) *villager.Villager {
	return &villager.Villager{
		Name:       name,
		Profession: villager.NewProfession(prof, nil),
	}
}

func TestHomeIsStablePerVillager(t *testing.T) {
	vv := NewVillage(rand.New(rand.NewSource(1)))
	a := testVillagerNamed("Alda", villager.Farmer)
	b := testVillagerNamed("Bram", villager.Mason)

	homeA := vv.Home(a)
	homeB := vv.Home(b)
	if homeA == homeB {
		t.Fatal("two villagers assigned the same home")
	}
	if got := vv.Home(a); got != homeA {
		t.Fatalf("home moved: %+v -> %+v", homeA, got)
	}
}

func TestWorkplaceFollowsProfession(t *testing.T) {
	vv := NewVillage(rand.New(rand.NewSource(1)))

	farm := vv.find(BuildingFarm)
	if got := vv.Workplace(testVillagerNamed("Alda", villager.Farmer)); got != farm {
		t.Fatalf("farmer workplace = %+v, want the farm %+v", got, farm)
	}
	market := vv.find(BuildingMarket)
	if got := vv.Workplace(testVillagerNamed("Bram", villager.Shopkeeper)); got != market {
		t.Fatalf("shopkeeper workplace = %+v, want the market %+v", got, market)
	}
	well := vv.find(BuildingWell)
	if got := vv.Workplace(testVillagerNamed("Ivo", villager.Unemployed)); got != well {
		t.Fatalf("unemployed workplace = %+v, want the well %+v", got, well)
	}
}

func TestNeedLocations(t *testing.T) {
	vv := NewVillage(rand.New(rand.NewSource(1)))
	if got := vv.NeedLocation(villager.NeedHunger); got != vv.find(BuildingMarket) {
		t.Fatalf("hunger location = %+v, want the market", got)
	}
	if got := vv.NeedLocation(villager.NeedSocial); got != vv.find(BuildingTavern) {
		t.Fatalf("social location = %+v, want the tavern", got)
	}
}

func TestLeisureSplitsBySociability(t *testing.T) {
	vv := NewVillage(rand.New(rand.NewSource(1)))

	outgoing := testVillagerNamed("Alda", villager.Farmer)
	outgoing.Personality.Sociability = 0.8
	if got := vv.Leisure(outgoing); got != vv.find(BuildingTavern) {
		t.Fatalf("outgoing leisure = %+v, want the tavern", got)
	}

	quiet := testVillagerNamed("Bram", villager.Farmer)
	quiet.Personality.Sociability = 0.2
	if got := vv.Leisure(quiet); got != vv.find(BuildingChapel) {
		t.Fatalf("quiet leisure = %+v, want the chapel", got)
	}
}

func TestMoverReachesTarget(t *testing.T) {
	m := NewMover(villager.Position{}, 4)
	m.SetTarget(villager.Position{X: 3, Y: 4}) // distance 5
	if m.HasArrived() {
		t.Fatal("arrived before moving")
	}

	m.Advance(1) // 4 of 5 units
	if m.HasArrived() {
		t.Fatal("arrived early")
	}
	m.Advance(0.5) // overshoots, clamps onto the target
	if !m.HasArrived() {
		t.Fatal("never arrived")
	}
	if m.Pos != (villager.Position{X: 3, Y: 4}) {
		t.Fatalf("pos = %+v, want the exact target", m.Pos)
	}
}

func TestClearTargetStopsMovement(t *testing.T) {
	m := NewMover(villager.Position{}, 4)
	m.SetTarget(villager.Position{X: 10})
	m.ClearTarget()
	if !m.HasArrived() {
		t.Fatal("cleared mover still reports moving")
	}
	m.Advance(1)
	if m.Pos != (villager.Position{}) {
		t.Fatalf("pos = %+v, want unmoved origin", m.Pos)
	}
}
