package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	planet := mustBody(t, physics.BodySpec{Name: "planet", Pos: vmath.V2(400, 300), Radius: 40, Mass: 200, Obstacle: true})
	sat := mustBody(t, physics.BodySpec{Name: "satellite", Pos: vmath.V2(1, 1), Radius: 5, Mass: 1, Movable: true})
	w := worldOf(t, planet, sat)

	sim, err := NewSimulation(w, DefaultConfig(), "satellite", vmath.V2(410, 10))
	require.NoError(t, err)
	return sim
}

func TestWorldAdd_Rejects(t *testing.T) {
	a := mustBody(t, physics.BodySpec{Name: "a", Pos: vmath.V2(1, 1), Radius: 1, Mass: 1})
	w := worldOf(t, a)

	if err := w.Add(a); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("double add: got %v", err)
	}
	if err := w.Add(nil); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("nil add: got %v", err)
	}

	dupName := &physics.Body{Name: "a", Pos: vmath.V2(9, 9), Radius: 1, Mass: 1}
	if err := w.Add(dupName); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("duplicate name: got %v", err)
	}

	same := &physics.Body{Name: "b", Pos: vmath.V2(1, 1), Radius: 2, Mass: 3}
	if err := w.Add(same); !errors.Is(err, physics.ErrCoincidentBodies) {
		t.Errorf("coincident: got %v", err)
	}

	bad := &physics.Body{Name: "c", Pos: vmath.V2(5, 5), Radius: -1, Mass: 3}
	if err := w.Add(bad); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("invalid radius: got %v", err)
	}

	assert.Equal(t, 1, w.Len())
	assert.Same(t, a, w.Body("a"))
	assert.Nil(t, w.Body("missing"))
}

func TestNewSimulation_Rejects(t *testing.T) {
	planet := mustBody(t, physics.BodySpec{Name: "planet", Radius: 10, Mass: 10, Obstacle: true})
	sat := mustBody(t, physics.BodySpec{Name: "sat", Pos: vmath.V2(50, 0), Radius: 5, Mass: 1, Movable: true})
	w := worldOf(t, planet, sat)

	_, err := NewSimulation(w, DefaultConfig(), "nobody", vmath.V2(1, 1))
	assert.ErrorIs(t, err, physics.ErrInvalidBody)

	_, err = NewSimulation(w, DefaultConfig(), "planet", vmath.V2(1, 1))
	assert.ErrorIs(t, err, physics.ErrInvalidBody, "immovable mover")

	_, err = NewSimulation(w, DefaultConfig(), "sat", vmath.Vec2{})
	assert.ErrorIs(t, err, physics.ErrCoincidentBodies, "reset onto planet center")

	cfg := DefaultConfig()
	cfg.EnergyLoss = 1
	_, err = NewSimulation(w, cfg, "sat", vmath.V2(1, 1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []Config{
		{G: -1, EnergyLoss: 0.5, MinGravityDistance: 1},
		{G: math.NaN(), EnergyLoss: 0.5, MinGravityDistance: 1},
		{G: 1, EnergyLoss: -0.1, MinGravityDistance: 1},
		{G: 1, EnergyLoss: 1, MinGravityDistance: 1},
		{G: 1, EnergyLoss: 0.5, MinGravityDistance: 0},
	}
	for _, cfg := range bad {
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "%+v", cfg)
	}
}

func TestSimulation_StartsArmed(t *testing.T) {
	sim := newTestSimulation(t)

	assert.Equal(t, StateArmed, sim.State())
	assert.True(t, sim.Armed())
	assert.False(t, sim.Fired())
	assert.Equal(t, vmath.V2(410, 10), sim.Mover().Pos)
	assert.Equal(t, vmath.Vec2{}, sim.Mover().Vel)

	// Armed does not integrate
	_, err := sim.Step()
	require.NoError(t, err)
	assert.Equal(t, vmath.V2(410, 10), sim.Mover().Pos)
	assert.Zero(t, sim.Tick())
}

func TestSimulation_LaunchValidation(t *testing.T) {
	sim := newTestSimulation(t)

	err := sim.Launch(vmath.Vec2{}, vmath.V2(100, 100))
	assert.ErrorIs(t, err, physics.ErrDegenerateInput)

	err = sim.Launch(vmath.V2(math.NaN(), 1), vmath.V2(100, 100))
	assert.ErrorIs(t, err, physics.ErrNonFinite)

	err = sim.Launch(vmath.V2(1, 0), vmath.V2(400, 300))
	assert.ErrorIs(t, err, physics.ErrCoincidentBodies)

	// Rejected launches leave the mover where reset put it
	assert.True(t, sim.Armed())
	assert.Equal(t, vmath.V2(410, 10), sim.Mover().Pos)
}

func TestSimulation_Lifecycle(t *testing.T) {
	sim := newTestSimulation(t)

	require.NoError(t, sim.Launch(vmath.V2(2, 1), vmath.V2(100, 100)))
	assert.Equal(t, StateRunning, sim.State())
	assert.True(t, sim.Fired())
	assert.Equal(t, vmath.V2(100, 100), sim.Mover().Pos)

	assert.ErrorIs(t, sim.Launch(vmath.V2(1, 1), vmath.V2(100, 100)), ErrNotArmed)

	_, err := sim.Step()
	require.NoError(t, err)
	assert.EqualValues(t, 1, sim.Tick())
	moved := sim.Mover().Pos
	assert.NotEqual(t, vmath.V2(100, 100), moved)

	// Paused is an Idle substate and does not integrate
	require.True(t, sim.Pause())
	assert.Equal(t, StatePaused, sim.State())
	assert.True(t, sim.Idle())
	_, err = sim.Step()
	require.NoError(t, err)
	assert.Equal(t, moved, sim.Mover().Pos)

	require.True(t, sim.Resume())
	assert.True(t, sim.Running())

	require.True(t, sim.Halt())
	assert.Equal(t, StateHalted, sim.State())
	assert.True(t, sim.Idle())
	assert.False(t, sim.Resume(), "halted simulation must not resume")

	sim.Reset()
	assert.Equal(t, StateArmed, sim.State())
	assert.False(t, sim.Fired())
	assert.Zero(t, sim.Tick())
	assert.Equal(t, vmath.V2(410, 10), sim.Mover().Pos)
	assert.Equal(t, vmath.Vec2{}, sim.Mover().Vel)
}

func TestSimulation_ResetFromRunning(t *testing.T) {
	sim := newTestSimulation(t)
	require.NoError(t, sim.Launch(vmath.V2(2, 1), vmath.V2(100, 100)))
	for range 10 {
		_, err := sim.Step()
		require.NoError(t, err)
	}

	sim.Reset()
	assert.True(t, sim.Armed())
	assert.False(t, sim.Fired())
	require.NoError(t, sim.Launch(vmath.V2(-1, 3), vmath.V2(50, 50)))
	assert.True(t, sim.Running())
}
