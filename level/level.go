package level

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

// ErrInvalidLevel wraps every schema and value error found while parsing a level
var ErrInvalidLevel = errors.New("invalid level")

// Defaults applied before decoding; keys present in the file override them
const (
	DefaultTickRate        = 60
	DefaultSatelliteName   = "satellite"
	DefaultSatelliteRadius = 5.0
	DefaultSatelliteMass   = 1.0
	DefaultDragDivisor     = 5.0
)

// MaxTickRate bounds tick_rate so the tick interval stays well above zero
const MaxTickRate = 1000

// Point is a TOML [x, y] pair
type Point [2]float64

// Vec converts to a world vector
func (p Point) Vec() vmath.Vec2 {
	return vmath.V2(p[0], p[1])
}

// Physics mirrors engine.Config in file form
type Physics struct {
	GravitationalConstant float64 `toml:"gravitational_constant"`
	EnergyLoss            float64 `toml:"energy_loss"`
	MinGravityDistance    float64 `toml:"min_gravity_distance"`
}

// Body describes one circular body; Obstacle defaults to true for planets when omitted
type Body struct {
	Name     string  `toml:"name"`
	Position Point   `toml:"position"`
	Velocity Point   `toml:"velocity"`
	Radius   float64 `toml:"radius"`
	Mass     float64 `toml:"mass"`
	Movable  bool    `toml:"movable"`
	Obstacle *bool   `toml:"obstacle"`
}

// Zone is a circular trigger area
type Zone struct {
	Center Point   `toml:"center"`
	Radius float64 `toml:"radius"`
}

// Circle implements vmath.Circular
func (z Zone) Circle() vmath.Circle {
	return vmath.Circle{Center: z.Center.Vec(), Radius: z.Radius}
}

// Launch holds the initial shot and the aim-drag scale
type Launch struct {
	Position    Point   `toml:"position"`
	Velocity    Point   `toml:"velocity"`
	DragDivisor float64 `toml:"drag_divisor"`
}

// Level is one decoded scene
type Level struct {
	Name          string  `toml:"name"`
	TickRate      int     `toml:"tick_rate"`
	AutoOrbit     bool    `toml:"auto_orbit"`
	Physics       Physics `toml:"physics"`
	Satellite     Body    `toml:"satellite"`
	Planets       []Body  `toml:"planets"`
	StartZone     Zone    `toml:"start_zone"`
	EndZone       Zone    `toml:"end_zone"`
	Launch        Launch  `toml:"launch"`
	ResetPosition *Point  `toml:"reset_position"`
}

func newDefaultLevel() *Level {
	cfg := engine.DefaultConfig()
	return &Level{
		TickRate: DefaultTickRate,
		Physics: Physics{
			GravitationalConstant: cfg.G,
			EnergyLoss:            cfg.EnergyLoss,
			MinGravityDistance:    cfg.MinGravityDistance,
		},
		Satellite: Body{
			Name:   DefaultSatelliteName,
			Radius: DefaultSatelliteRadius,
			Mass:   DefaultSatelliteMass,
		},
		Launch: Launch{DragDivisor: DefaultDragDivisor},
	}
}

// Config returns the physics parameters for engine steps
func (l *Level) Config() engine.Config {
	return engine.Config{
		G:                  l.Physics.GravitationalConstant,
		EnergyLoss:         l.Physics.EnergyLoss,
		MinGravityDistance: l.Physics.MinGravityDistance,
	}
}

// TickInterval returns the fixed tick period
func (l *Level) TickInterval() time.Duration {
	return time.Second / time.Duration(l.TickRate)
}

// ResetPos returns where the satellite rests while armed, the launch position unless overridden
func (l *Level) ResetPos() vmath.Vec2 {
	if l.ResetPosition != nil {
		return l.ResetPosition.Vec()
	}
	return l.Launch.Position.Vec()
}

// Validate checks scalar fields, then builds the world once to validate bodies
func (l *Level) Validate() error {
	if l.TickRate <= 0 || l.TickRate > MaxTickRate {
		return fmt.Errorf("%w: tick_rate %d must be in 1..%d", ErrInvalidLevel, l.TickRate, MaxTickRate)
	}
	if err := l.Config().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	if !(l.StartZone.Radius > 0) || !vmath.IsFinite(l.StartZone.Radius) {
		return fmt.Errorf("%w: start_zone radius %v", ErrInvalidLevel, l.StartZone.Radius)
	}
	if !(l.EndZone.Radius > 0) || !vmath.IsFinite(l.EndZone.Radius) {
		return fmt.Errorf("%w: end_zone radius %v", ErrInvalidLevel, l.EndZone.Radius)
	}
	if !(l.Launch.DragDivisor > 0) || !vmath.IsFinite(l.Launch.DragDivisor) {
		return fmt.Errorf("%w: drag_divisor %v must be positive", ErrInvalidLevel, l.Launch.DragDivisor)
	}
	if !vmath.V2IsFinite(l.ResetPos()) || !vmath.V2IsFinite(l.Launch.Velocity.Vec()) {
		return fmt.Errorf("%w: non-finite launch or reset position", ErrInvalidLevel)
	}

	if _, _, err := l.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	return nil
}

// Build creates a fresh world for the level: planets in file order, then the satellite
// With AutoOrbit, movable planets at rest are given a circular orbit about the heaviest planet
func (l *Level) Build() (*engine.World, engine.Config, error) {
	cfg := l.Config()
	w := engine.NewWorld()

	planets := make([]*physics.Body, 0, len(l.Planets))
	for i, pc := range l.Planets {
		obstacle := true
		if pc.Obstacle != nil {
			obstacle = *pc.Obstacle
		}
		b, err := physics.NewBody(physics.BodySpec{
			Name:     pc.Name,
			Pos:      pc.Position.Vec(),
			Vel:      pc.Velocity.Vec(),
			Radius:   pc.Radius,
			Mass:     pc.Mass,
			Movable:  pc.Movable,
			Obstacle: obstacle,
		})
		if err != nil {
			return nil, cfg, fmt.Errorf("planet %d (%s): %w", i, pc.Name, err)
		}
		planets = append(planets, b)
	}

	if l.AutoOrbit {
		if center := physics.Heaviest(planets); center != nil {
			for _, b := range planets {
				if b == center || !b.Movable || !vmath.V2IsZero(b.Vel) {
					continue
				}
				b.Vel = physics.OrbitalInsert(center, b, cfg.G, false)
			}
		}
	}

	for _, b := range planets {
		if err := w.Add(b); err != nil {
			return nil, cfg, err
		}
	}

	sat, err := physics.NewBody(physics.BodySpec{
		Name:    l.Satellite.Name,
		Pos:     l.ResetPos(),
		Radius:  l.Satellite.Radius,
		Mass:    l.Satellite.Mass,
		Movable: true,
	})
	if err != nil {
		return nil, cfg, fmt.Errorf("satellite: %w", err)
	}
	if err := w.Add(sat); err != nil {
		return nil, cfg, err
	}

	return w, cfg, nil
}

// NewSimulation builds the world and arms a simulation with the satellite at its reset position
func (l *Level) NewSimulation() (*engine.Simulation, error) {
	w, cfg, err := l.Build()
	if err != nil {
		return nil, err
	}
	return engine.NewSimulation(w, cfg, l.Satellite.Name, l.ResetPos())
}
