package vmath

import (
	"math"
)

// SweepCircle returns the displacement a circle moving by vel travels before first touching a fixed obstacle circle
// vel is the full-tick displacement candidate; ok is false when contact does not happen within it
// Exact closed form (pool-hall swept test), not iterative
//
// A mover that already overlaps the obstacle at tick start is not specially detected: depending on the
// geometry it may return a small or negative-adjacent distance, or no hit at all
func SweepCircle(mover Circle, vel Vec2, obstacle Circle) (d Vec2, ok bool) {
	c := V2Sub(obstacle.Center, mover.Center)
	sumRadii := obstacle.Radius + mover.Radius
	lengthC := V2Mag(c)
	travel := V2Mag(vel)

	// Too far apart to touch this tick even along the closest path
	if lengthC-sumRadii > travel {
		return Vec2{}, false
	}

	n := V2Normalize(vel)

	// Projection of center offset onto travel direction, zero velocity lands here too
	dp := V2Dot(n, c)
	if dp <= 0 {
		return Vec2{}, false
	}

	// Squared perpendicular distance from obstacle center to the travel line
	f := lengthC*lengthC - dp*dp
	sumRadiiSq := sumRadii * sumRadii
	if f >= sumRadiiSq {
		return Vec2{}, false
	}

	t := sumRadiiSq - f
	if t < 0 {
		return Vec2{}, false
	}

	distance := dp - math.Sqrt(t)
	if distance > travel {
		return Vec2{}, false
	}

	return V2Scale(n, distance), true
}

// ElasticBounce2D returns velocity of body A after striking body B
// B is treated as having no velocity along the normal (a2 = 0)
// 1D elastic impulse projected on the normal from B to A; tangential component is preserved
func ElasticBounce2D(posA, posB, velA Vec2, massA, massB float64) Vec2 {
	n := V2Normalize(V2Sub(posA, posB))

	a1 := V2Dot(velA, n)
	a2 := 0.0

	sum := massA + massB
	if sum == 0 {
		return velA
	}
	p := 2.0 * (a1 - a2) / sum

	return V2Sub(velA, V2Scale(n, p*massB))
}
