package engine

import (
	"fmt"

	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

// Collision records one resolved bounce
type Collision struct {
	Mover    *physics.Body
	Obstacle *physics.Body

	Contact        vmath.Vec2 // Mover center at first touch
	VelocityBefore vmath.Vec2 // Post-gravity, pre-bounce
	VelocityAfter  vmath.Vec2 // Post-bounce, energy loss applied
}

// Step advances the world by one tick
//  1. Gravity: every movable body accumulates deltas from all other bodies at tick-start positions
//  2. Sweep: each movable body finds the nearest hit among obstacles other than itself, shorter
//     than its full velocity; a contact exactly at full reach bounces on the next tick
//  3. Move: position advances by the hit displacement, or the full velocity without a hit
//  4. Bounce: velocity is resolved and scaled by EnergyLoss, then the unconsumed fraction of the
//     tick's travel is spent along the new velocity
//
// Obstacles are swept at their tick-start positions. All results are staged and committed only
// when every staged value is finite; otherwise the world is left unchanged and ErrNonFinite returned
func (w *World) Step(cfg Config) ([]Collision, error) {
	n := len(w.bodies)
	if cap(w.staged) < n {
		w.staged = make([]stagedBody, n)
	}
	w.staged = w.staged[:n]

	// Gravity
	for i, b := range w.bodies {
		s := &w.staged[i]
		s.pos = b.Pos
		s.vel = b.Vel
		if b.Movable {
			s.vel = physics.AccumulateGravity(b, w.bodies, cfg.G, cfg.MinGravityDistance)
		}
	}

	var collisions []Collision

	for i, b := range w.bodies {
		if !b.Movable {
			continue
		}
		s := &w.staged[i]

		// Working copy: tick-start position, post-gravity velocity
		mover := *b
		mover.Vel = s.vel

		// The full-tick move is the default; a hit must be strictly shorter to replace it
		travel := mover.Vel
		best := vmath.V2MagSq(travel)
		hitIdx := -1
		for j, o := range w.bodies {
			if j == i || !o.Obstacle {
				continue
			}
			d, ok := physics.Sweep(&mover, o)
			if !ok {
				continue
			}
			if m := vmath.V2MagSq(d); m < best {
				travel, best, hitIdx = d, m, j
			}
		}

		s.pos = vmath.V2Add(mover.Pos, travel)
		if hitIdx < 0 {
			continue
		}

		struck := w.bodies[hitIdx]
		full := vmath.V2Mag(mover.Vel)
		mover.Pos = s.pos

		after := vmath.V2Scale(physics.BounceVelocity(&mover, struck), cfg.EnergyLoss)
		leftover := 1 - vmath.V2Mag(travel)/full
		s.pos = vmath.V2Add(s.pos, vmath.V2Scale(after, leftover))
		s.vel = after

		collisions = append(collisions, Collision{
			Mover:          b,
			Obstacle:       struck,
			Contact:        mover.Pos,
			VelocityBefore: mover.Vel,
			VelocityAfter:  after,
		})
	}

	for i, s := range w.staged {
		if !vmath.V2IsFinite(s.pos) || !vmath.V2IsFinite(s.vel) {
			return nil, fmt.Errorf("%w: %q after tick", physics.ErrNonFinite, w.bodies[i].Name)
		}
	}

	for i, b := range w.bodies {
		b.Pos = w.staged[i].pos
		b.Vel = w.staged[i].vel
	}

	return collisions, nil
}
