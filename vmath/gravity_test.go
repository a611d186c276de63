package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravitationalAccel2D_InverseSquare(t *testing.T) {
	// g=5, massB=10, massA=2, r=10 -> 5*10/100/2 = 0.25 toward B
	a := GravitationalAccel2D(V2(0, 0), V2(10, 0), 2, 10, 5, 1)
	assert.InDelta(t, 0.25, a.X, tolerance)
	assert.InDelta(t, 0.0, a.Y, tolerance)

	// Doubling distance quarters the delta
	far := GravitationalAccel2D(V2(0, 0), V2(0, 20), 2, 10, 5, 1)
	assert.InDelta(t, 0.0625, far.Y, tolerance)
}

func TestGravitationalAccel2D_Antisymmetric(t *testing.T) {
	posA, posB := V2(-3, 4), V2(9, -1)
	massA, massB := 3.0, 7.0

	onA := GravitationalAccel2D(posA, posB, massA, massB, 5, 1)
	onB := GravitationalAccel2D(posB, posA, massB, massA, 5, 1)

	// Opposite directions
	assert.InDelta(t, -1.0, V2Dot(V2Normalize(onA), V2Normalize(onB)), tolerance)

	// |onA| = g*mB/(mA r²), |onB| = g*mA/(mB r²)
	ratio := V2Mag(onA) / V2Mag(onB)
	assert.InDelta(t, (massB*massB)/(massA*massA), ratio, 1e-9)
}

func TestGravitationalAccel2D_Degenerate(t *testing.T) {
	if got := GravitationalAccel2D(V2(1, 1), V2(1, 1), 1, 1, 5, 1); !V2IsZero(got) {
		t.Errorf("coincident points must yield zero, got %v", got)
	}
	if got := GravitationalAccel2D(V2(0, 0), V2(1, 0), 0, 1, 5, 1); !V2IsZero(got) {
		t.Errorf("massless receiver must yield zero, got %v", got)
	}

	// Inside minimum distance the delta saturates at the clamp value
	near := GravitationalAccel2D(V2(0, 0), V2(0.001, 0), 1, 1, 5, 2)
	assert.InDelta(t, 5.0/4.0, near.X, tolerance)
	assert.True(t, V2IsFinite(near))
}
