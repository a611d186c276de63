package physics

import (
	"github.com/lixenwraith/slingshot/vmath"
)

// Sweep returns the displacement mover travels this tick before touching obstacle
// The mover's full velocity is the candidate displacement; ok is false if contact falls outside it
// Callers selecting among several obstacles compare returned magnitudes
//
// A mover already overlapping obstacle at tick start is not guaranteed to be detected
func Sweep(mover, obstacle *Body) (vmath.Vec2, bool) {
	return vmath.SweepCircle(mover.Circle(), mover.Vel, obstacle.Circle())
}

// BounceVelocity returns mover's velocity after striking struck
// Frictionless and perfectly elastic along the collision normal; energy loss is applied by the caller
func BounceVelocity(mover, struck *Body) vmath.Vec2 {
	return vmath.ElasticBounce2D(mover.Pos, struck.Pos, mover.Vel, mover.Mass, struck.Mass)
}
