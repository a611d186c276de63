package vmath

// GravitationalAccel2D returns the velocity delta on body at posA toward posB for one tick
// g: gravitational constant, massB: attracting body mass, massA: attracted body mass
// Force g*massB/r² is applied as an instantaneous impulse divided by massA, implicit dt = 1
// Distance is clamped to minDist to prevent the singularity; coincident points return zero
func GravitationalAccel2D(posA, posB Vec2, massA, massB, g, minDist float64) Vec2 {
	if massA <= 0 {
		return Vec2{}
	}

	path := V2Sub(posB, posA)
	distSq := V2MagSq(path)
	if distSq == 0 {
		return Vec2{}
	}

	minDistSq := minDist * minDist
	if distSq < minDistSq {
		distSq = minDistSq
	}

	force := g * massB / distSq
	return V2Scale(V2Normalize(path), force/massA)
}
