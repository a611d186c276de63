package physics

import (
	"math"

	"github.com/lixenwraith/slingshot/vmath"
)

// OrbitalVelocity returns speed for a circular orbit
// attraction: centripetal velocity delta per tick at radius
// v = sqrt(a * r)
func OrbitalVelocity(attraction, radius float64) float64 {
	if attraction <= 0 || radius <= 0 {
		return 0
	}
	return math.Sqrt(attraction * radius)
}

// OrbitalInsert returns velocity for circular orbit insertion of body around center
// Uses the same per-tick delta as GravityDelta, so the divide by the orbiting mass is included
// clockwise: orbit direction in a y-up frame
func OrbitalInsert(center, body *Body, g float64, clockwise bool) vmath.Vec2 {
	rel := vmath.V2Sub(body.Pos, center.Pos)
	radius := vmath.V2Mag(rel)
	if radius == 0 || body.Mass <= 0 {
		return vmath.Vec2{}
	}

	attraction := g * center.Mass / (radius * radius) / body.Mass
	speed := OrbitalVelocity(attraction, radius)

	// Tangent is perpendicular to radius
	tangent := vmath.V2Normalize(vmath.V2Perpendicular(rel))
	if clockwise {
		tangent = vmath.V2Neg(tangent)
	}

	return vmath.V2Scale(tangent, speed)
}

// Heaviest returns the body with the largest mass, first wins on ties
func Heaviest(bodies []*Body) *Body {
	var best *Body
	for _, b := range bodies {
		if best == nil || b.Mass > best.Mass {
			best = b
		}
	}
	return best
}
