package world

import (
	"math"

	"github.com/bucephalus26/sustainable-village-sim/internal/villager"
)

const arriveEpsilon = 0.1

// Mover walks a villager toward its target at constant speed. It
// satisfies villager.Mover; Advance is driven by the world tick, not by
// the villager itself.
type Mover struct {
	Pos    villager.Position
	target villager.Position
	moving bool
	speed  float64 // units per real second
}

func NewMover(start villager.Position, speed float64) *Mover {
	return &Mover{Pos: start, speed: speed}
}

func (m *Mover) SetTarget(p villager.Position) {
	m.target = p
	m.moving = true
}

func (m *Mover) ClearTarget() {
	m.moving = false
}

func (m *Mover) HasArrived() bool {
	return !m.moving
}

// Advance moves toward the target, clamping to it on the final step.
func (m *Mover) Advance(dtReal float64) {
	if !m.moving {
		return
	}
	dx := m.target.X - m.Pos.X
	dy := m.target.Y - m.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= arriveEpsilon {
		m.Pos = m.target
		m.moving = false
		return
	}
	step := m.speed * dtReal
	if step >= dist {
		m.Pos = m.target
		m.moving = false
		return
	}
	m.Pos.X += dx / dist * step
	m.Pos.Y += dy / dist * step
}
