package level

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

const minimalLevel = `
[start_zone]
center = [0.0, 0.0]
radius = 10.0

[end_zone]
center = [100.0, 0.0]
radius = 10.0

[launch]
position = [5.0, 5.0]
`

func TestDefault_Parses(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Slingshot", l.Name)
	assert.Equal(t, 60, l.TickRate)
	assert.Equal(t, time.Second/60, l.TickInterval())
	assert.Equal(t, engine.DefaultConfig(), l.Config())
	assert.Equal(t, vmath.V2(100, 100), l.ResetPos())

	w, _, err := l.Build()
	require.NoError(t, err)
	require.Equal(t, 3, w.Len())

	bodies := w.Bodies()
	assert.Equal(t, "primary", bodies[0].Name)
	assert.True(t, bodies[0].Obstacle, "planets default to obstacles")
	assert.False(t, bodies[0].Movable)

	sat := bodies[2]
	assert.Equal(t, DefaultSatelliteName, sat.Name)
	assert.True(t, sat.Movable)
	assert.False(t, sat.Obstacle)
	assert.Equal(t, l.ResetPos(), sat.Pos)
}

func TestParse_FillsDefaults(t *testing.T) {
	l, err := Parse([]byte(minimalLevel))
	require.NoError(t, err)

	assert.Equal(t, DefaultTickRate, l.TickRate)
	assert.Equal(t, DefaultDragDivisor, l.Launch.DragDivisor)
	assert.Equal(t, DefaultSatelliteRadius, l.Satellite.Radius)
	assert.Equal(t, DefaultSatelliteMass, l.Satellite.Mass)
	assert.Equal(t, engine.DefaultConfig(), l.Config())

	// Reset falls back to the launch position
	assert.Equal(t, vmath.V2(5, 5), l.ResetPos())
}

func TestParse_PartialPhysicsKeepsDefaults(t *testing.T) {
	l, err := Parse([]byte("[physics]\nenergy_loss = 0.5\n" + minimalLevel))
	require.NoError(t, err)

	assert.Equal(t, 0.5, l.Physics.EnergyLoss)
	assert.Equal(t, engine.DefaultGravitationalConstant, l.Physics.GravitationalConstant)
}

func TestParse_NamesUnnamedPlanets(t *testing.T) {
	data := minimalLevel + `
[[planets]]
position = [50.0, 50.0]
radius = 5.0
mass = 10.0

[[planets]]
position = [70.0, 50.0]
radius = 5.0
mass = 10.0
obstacle = false
`
	l, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, l.Planets, 2)
	assert.Equal(t, "planet-0", l.Planets[0].Name)
	assert.Equal(t, "planet-1", l.Planets[1].Name)

	w, _, err := l.Build()
	require.NoError(t, err)
	assert.True(t, w.Body("planet-0").Obstacle)
	assert.False(t, w.Body("planet-1").Obstacle)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown key", "bogus = 1\n" + minimalLevel, nil},
		{"unknown nested key", minimalLevel + "weight = 3.0\n", nil},
		{"syntax", "name = \n", nil},
		{"zero tick rate", "tick_rate = 0\n" + minimalLevel, nil},
		{"tick rate above max", "tick_rate = 1001\n" + minimalLevel, nil},
		{"huge tick rate", "tick_rate = 2000000000\n" + minimalLevel, nil},
		{"energy loss at one", "[physics]\nenergy_loss = 1.0\n" + minimalLevel, engine.ErrInvalidConfig},
		{"negative gravity", "[physics]\ngravitational_constant = -1.0\n" + minimalLevel, engine.ErrInvalidConfig},
		{"missing zones", "[launch]\nposition = [1.0, 1.0]\n", nil},
		{"zero drag divisor", strings.Replace(minimalLevel, "position = [5.0, 5.0]", "position = [5.0, 5.0]\ndrag_divisor = 0.0", 1), nil},
		{"planet radius", minimalLevel + "[[planets]]\nposition = [50.0, 0.0]\nradius = -1.0\nmass = 1.0\n", physics.ErrInvalidBody},
		{"planet mass", minimalLevel + "[[planets]]\nposition = [50.0, 0.0]\nradius = 1.0\nmass = 0.0\n", physics.ErrInvalidBody},
		{"satellite on planet", minimalLevel + "[[planets]]\nposition = [5.0, 5.0]\nradius = 1.0\nmass = 1.0\n", physics.ErrCoincidentBodies},
		{"duplicate planet names", minimalLevel + "[[planets]]\nname = \"a\"\nposition = [50.0, 0.0]\nradius = 1.0\nmass = 1.0\n[[planets]]\nname = \"a\"\nposition = [60.0, 0.0]\nradius = 1.0\nmass = 1.0\n", physics.ErrInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain, got %v", tt.want, err)
			}
		})
	}
}

func TestBuild_AutoOrbit(t *testing.T) {
	data := "auto_orbit = true\n" + minimalLevel + `
[[planets]]
name = "sun"
position = [0.0, 0.0]
radius = 2.0
mass = 1000.0

[[planets]]
name = "moon"
position = [100.0, 0.0]
radius = 2.0
mass = 1.0
movable = true

[[planets]]
name = "comet"
position = [0.0, 200.0]
velocity = [1.0, 0.0]
radius = 1.0
mass = 1.0
movable = true
`
	l, err := Parse([]byte(data))
	require.NoError(t, err)

	w, _, err := l.Build()
	require.NoError(t, err)

	// G*M/r²/m = 0.5 per tick at r=100, v = sqrt(0.5*100), counterclockwise
	moon := w.Body("moon")
	assert.InDelta(t, 0.0, moon.Vel.X, 1e-12)
	assert.InDelta(t, math.Sqrt(50), moon.Vel.Y, 1e-12)

	assert.Equal(t, vmath.V2(1, 0), w.Body("comet").Vel, "explicit velocity kept")
	assert.Equal(t, vmath.Vec2{}, w.Body("sun").Vel, "center stays at rest")
}

func TestBuild_FreshWorldEachCall(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	w1, _, err := l.Build()
	require.NoError(t, err)
	w2, _, err := l.Build()
	require.NoError(t, err)

	w1.Body(DefaultSatelliteName).Pos = vmath.V2(-1, -1)
	assert.Equal(t, l.ResetPos(), w2.Body(DefaultSatelliteName).Pos)
}

func TestNewSimulation_Armed(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	sim, err := l.NewSimulation()
	require.NoError(t, err)
	assert.True(t, sim.Armed())
	assert.Equal(t, l.Satellite.Name, sim.Mover().Name)
	assert.Equal(t, l.ResetPos(), sim.ResetPos())
}

func TestZone_Circle(t *testing.T) {
	z := Zone{Center: Point{3, 4}, Radius: 2}
	var c vmath.Circular = z
	assert.Equal(t, vmath.Circle{Center: vmath.V2(3, 4), Radius: 2}, c.Circle())
}

func TestLoadAuto_Priority(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// Nothing on disk: embedded
	l, src, err := LoadAuto("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.Equal(t, "Slingshot", l.Name)

	// Default path on disk wins over embedded
	require.NoError(t, os.MkdirAll(filepath.Dir(DefaultPath), 0755))
	require.NoError(t, os.WriteFile(DefaultPath, []byte("name = \"disk\"\n"+minimalLevel), 0644))
	l, src, err = LoadAuto("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, src)
	assert.Equal(t, "disk", l.Name)

	// Custom path wins over both
	custom := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte("name = \"custom\"\n"+minimalLevel), 0644))
	l, src, err = LoadAuto(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, src)
	assert.Equal(t, "custom", l.Name)

	// Missing custom path does not fall back
	_, _, err = LoadAuto(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"v1\"\n"+minimalLevel), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Level, 16)
	failures := make(chan error, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(l *Level) { changes <- l }, func(err error) { failures <- err })
	}()

	// The watcher may not be registered yet; keep writing until an event lands
	deadline := time.After(5 * time.Second)
	rewrite := time.NewTicker(50 * time.Millisecond)
	defer rewrite.Stop()

wait:
	for {
		select {
		case l := <-changes:
			assert.Equal(t, "v2", l.Name)
			break wait
		case <-rewrite.C:
			require.NoError(t, os.WriteFile(path, []byte("name = \"v2\"\n"+minimalLevel), 0644))
		case err := <-failures:
			t.Logf("transient watch error: %v", err)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}

	// A broken file reports and does not call onChange
	require.NoError(t, os.WriteFile(path, []byte("bogus = true\n"), 0644))
	select {
	case err := <-failures:
		assert.ErrorIs(t, err, ErrInvalidLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for invalid level")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestTickInterval_MaxRate(t *testing.T) {
	l, err := Parse([]byte("tick_rate = 1000\n" + minimalLevel))
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, l.TickInterval())
}
