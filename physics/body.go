package physics

import (
	"fmt"

	"github.com/lixenwraith/slingshot/vmath"
)

// Body is a circular point mass
// Plain data: all physics is performed by functions acting on bodies by reference
type Body struct {
	Name string

	Pos vmath.Vec2 // Center
	Vel vmath.Vec2 // Displacement per tick

	Radius float64
	Mass   float64

	Movable  bool // Gravity and collision integration apply
	Obstacle bool // Other bodies swept-collide against it
}

// BodySpec describes a body for construction
type BodySpec struct {
	Name     string
	Pos      vmath.Vec2
	Vel      vmath.Vec2
	Radius   float64
	Mass     float64
	Movable  bool
	Obstacle bool
}

// NewBody validates desc and returns a body
func NewBody(desc BodySpec) (*Body, error) {
	b := &Body{
		Name:     desc.Name,
		Pos:      desc.Pos,
		Vel:      desc.Vel,
		Radius:   desc.Radius,
		Mass:     desc.Mass,
		Movable:  desc.Movable,
		Obstacle: desc.Obstacle,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the construction invariants
func (b *Body) Validate() error {
	if !vmath.IsFinite(b.Radius) || b.Radius <= 0 {
		return fmt.Errorf("%w: %q radius %v must be positive", ErrInvalidBody, b.Name, b.Radius)
	}
	if !vmath.IsFinite(b.Mass) || b.Mass <= 0 {
		return fmt.Errorf("%w: %q mass %v must be positive", ErrInvalidBody, b.Name, b.Mass)
	}
	if !vmath.V2IsFinite(b.Pos) || !vmath.V2IsFinite(b.Vel) {
		return fmt.Errorf("%w: %q position %v velocity %v", ErrNonFinite, b.Name, b.Pos, b.Vel)
	}
	return nil
}

// Circle implements vmath.Circular
func (b *Body) Circle() vmath.Circle {
	return vmath.Circle{Center: b.Pos, Radius: b.Radius}
}

// Speed returns velocity magnitude
func (b *Body) Speed() float64 {
	return vmath.V2Mag(b.Vel)
}

func (b *Body) String() string {
	return fmt.Sprintf("%s{pos=(%.2f,%.2f) vel=(%.3f,%.3f) r=%.1f m=%.1f}",
		b.Name, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Radius, b.Mass)
}
