package physics

import (
	"github.com/lixenwraith/slingshot/vmath"
)

// GravityDelta returns the velocity delta gravity from by applies to on for one tick
// Self-pairs and coincident centers contribute nothing
func GravityDelta(on, by *Body, g, minDist float64) vmath.Vec2 {
	if on == by {
		return vmath.Vec2{}
	}
	return vmath.GravitationalAccel2D(on.Pos, by.Pos, on.Mass, by.Mass, g, minDist)
}

// AccumulateGravity sums deltas from every body in others onto base velocity
// Iteration follows slice order for reproducible floating-point sums
func AccumulateGravity(on *Body, others []*Body, g, minDist float64) vmath.Vec2 {
	vel := on.Vel
	for _, by := range others {
		if by == on {
			continue
		}
		vel = vmath.V2Add(vel, GravityDelta(on, by, g, minDist))
	}
	return vel
}
