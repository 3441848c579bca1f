package world

import (
	"math"
	"math/rand"

	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
)

// BuildingKind tags the fixed set of village structures.
type BuildingKind uint8

const (
	BuildingHome BuildingKind = iota
	BuildingFarm
	BuildingMarket
	BuildingTavern
	BuildingChapel
	BuildingWell
)

var buildingNames = [...]string{"Home", "Farm", "Market", "Tavern", "Chapel", "Well"}

func (k BuildingKind) String() string {
	if int(k) < len(buildingNames) {
		return buildingNames[k]
	}
	return "Unknown"
}

// Building is a named point of interest on the village map.
type Building struct {
	Kind BuildingKind
	Name string
	Pos  villager.Position
}

// Village is the static layout: a ring of homes around a handful of
// shared buildings. It satisfies villager.Locations.
type Village struct {
	buildings []Building
	homes     map[string]villager.Position // villager name -> assigned home
	rng       *rand.Rand
}

// NewVillage lays out shared buildings around the origin. Homes are
// assigned lazily on a ring as villagers first ask for one.
func NewVillage(rng *rand.Rand) *Village {
	return &Village{
		buildings: []Building{
			{BuildingFarm, "North Field", villager.Position{X: 0, Y: 18}},
			{BuildingMarket, "Market Square", villager.Position{X: 6, Y: 0}},
			{BuildingTavern, "The Gilded Hearth", villager.Position{X: -6, Y: 2}},
			{BuildingChapel, "Old Chapel", villager.Position{X: -2, Y: -10}},
			{BuildingWell, "Village Well", villager.Position{X: 0, Y: 0}},
		},
		homes: make(map[string]villager.Position),
		rng:   rng,
	}
}

// Buildings returns the shared (non-home) structures.
func (vv *Village) Buildings() []Building {
	return vv.buildings
}

func (vv *Village) find(kind BuildingKind) villager.Position {
	for _, b := range vv.buildings {
		if b.Kind == kind {
			return b.Pos
		}
	}
	return villager.Position{}
}

// Home assigns each villager a fixed spot on a ring around the well the
// first time they head home, and the same spot forever after.
func (vv *Village) Home(v *villager.Villager) villager.Position {
	if pos, ok := vv.homes[v.Name]; ok {
		return pos
	}
	angle := float64(len(vv.homes)) * 2.399963 // golden angle spreads homes evenly
	pos := villager.Position{
		X: math.Cos(angle) * 12,
		Y: math.Sin(angle) * 12,
	}
	vv.homes[v.Name] = pos
	return pos
}

// Workplace maps a profession to its building. The unemployed loiter at
// the well.
func (vv *Village) Workplace(v *villager.Villager) villager.Position {
	switch v.Profession.Spec.Kind {
	case villager.Farmer:
		return vv.find(BuildingFarm)
	case villager.Shopkeeper:
		return vv.find(BuildingMarket)
	case villager.Mason, villager.Priest:
		return vv.find(BuildingChapel)
	default:
		return vv.find(BuildingWell)
	}
}

// NeedLocation routes a need to where it is served: food at the market,
// rest at home (resolved by the caller via Home), company at the tavern.
func (vv *Village) NeedLocation(kind villager.NeedKind) villager.Position {
	switch kind {
	case villager.NeedHunger:
		return vv.find(BuildingMarket)
	case villager.NeedSocial:
		return vv.find(BuildingTavern)
	default:
		return vv.find(BuildingWell)
	}
}

// Leisure favors the tavern for the sociable and the chapel for the
// rest.
func (vv *Village) Leisure(v *villager.Villager) villager.Position {
	if v.Personality.Sociability >= 0.5 {
		return vv.find(BuildingTavern)
	}
	return vv.find(BuildingChapel)
}

// RandomNearby picks a point within radius of the villager's home.
func (vv *Village) RandomNearby(v *villager.Villager, radius float64) villager.Position {
	base := vv.Home(v)
	angle := vv.rng.Float64() * 2 * math.Pi
	dist := vv.rng.Float64() * radius
	return villager.Position{
		X: base.X + math.Cos(angle)*dist,
		Y: base.Y + math.Sin(angle)*dist,
	}
}
