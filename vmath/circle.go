package vmath

// Circle is the only collision shape in the simulation
type Circle struct {
	Center Vec2
	Radius float64
}

// Circular is implemented by anything that occupies a circle in world space
// All geometric tests operate on this capability rather than concrete types
type Circular interface {
	Circle() Circle
}

// CirclesOverlap reports strict overlap: center distance < sum of radii
// Touching circles do not overlap
func CirclesOverlap(a, b Circle) bool {
	sum := a.Radius + b.Radius
	return V2DistanceSq(a.Center, b.Center) < sum*sum
}

// CircleContains reports whether p lies strictly inside c
func CircleContains(c Circle, p Vec2) bool {
	return V2DistanceSq(c.Center, p) < c.Radius*c.Radius
}

// Overlaps is CirclesOverlap over the Circular capability
func Overlaps(a, b Circular) bool {
	return CirclesOverlap(a.Circle(), b.Circle())
}
