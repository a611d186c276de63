package engine

import (
	"fmt"

	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

// World is an ordered collection of bodies
// Iteration follows insertion order so every tick is reproducible
// The world never creates or destroys bodies after setup; Step only writes Pos and Vel
type World struct {
	bodies []*physics.Body

	// Per-tick staging, reused across ticks
	staged []stagedBody
}

type stagedBody struct {
	pos vmath.Vec2
	vel vmath.Vec2
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		bodies: make([]*physics.Body, 0, 8),
	}
}

// Add appends a body after validating it against the bodies already present
func (w *World) Add(b *physics.Body) error {
	if b == nil {
		return fmt.Errorf("%w: nil body", physics.ErrInvalidBody)
	}
	if err := b.Validate(); err != nil {
		return err
	}

	for _, other := range w.bodies {
		if other == b {
			return fmt.Errorf("%w: %q added twice", physics.ErrInvalidBody, b.Name)
		}
		if b.Name != "" && other.Name == b.Name {
			return fmt.Errorf("%w: duplicate name %q", physics.ErrInvalidBody, b.Name)
		}
		if other.Pos == b.Pos {
			return fmt.Errorf("%w: %q and %q centered at (%.2f,%.2f)",
				physics.ErrCoincidentBodies, other.Name, b.Name, b.Pos.X, b.Pos.Y)
		}
	}

	w.bodies = append(w.bodies, b)
	return nil
}

// Bodies returns all bodies in insertion order
// The slice is owned by the world and must not be modified
func (w *World) Bodies() []*physics.Body {
	return w.bodies
}

// Body returns the body with the given name, nil if absent
func (w *World) Body(name string) *physics.Body {
	for _, b := range w.bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Len returns body count
func (w *World) Len() int {
	return len(w.bodies)
}

// coincident returns the first body other than self centered at pos
func (w *World) coincident(self *physics.Body, pos vmath.Vec2) *physics.Body {
	for _, b := range w.bodies {
		if b != self && b.Pos == pos {
			return b
		}
	}
	return nil
}
