package villager

// Position is a point in the village's 2D plane.
type Position struct {
	X float64
	Y float64
}

// Mover is the movement capability the behavior states drive. Pathing is
// someone else's problem: states set a target and poll for arrival.
type Mover interface {
	SetTarget(Position)
	HasArrived() bool
	ClearTarget()
}

// Locations resolves where a villager should go for each purpose. Backed
// by the village's building registry.
type Locations interface {
	Workplace(v *Villager) Position
	NeedLocation(kind NeedKind) Position
	Home(v *Villager) Position
	Leisure(v *Villager) Position
	RandomNearby(v *Villager, radius float64) Position
}
