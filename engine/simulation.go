package engine

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/lixenwraith/slingshot/engine/fsm"
	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/vmath"
)

//go:embed session.toml
var sessionConfig string

// Lifecycle events
const (
	EventReset  = "Reset"
	EventLaunch = "Launch"
	EventPause  = "Pause"
	EventResume = "Resume"
	EventHalt   = "Halt"
)

// Lifecycle states
const (
	StateArmed   = "Armed"
	StateRunning = "Running"
	StateIdle    = "Idle"
	StatePaused  = "Paused"
	StateHalted  = "Halted"
)

// ErrNotArmed is returned by Launch outside the Armed state
var ErrNotArmed = errors.New("simulation not armed")

// Simulation drives one world through reset, launch and fixed ticks
// Single-threaded: one Step completes before the next begins, callers serialize access
type Simulation struct {
	world *World
	cfg   Config
	mover *physics.Body

	resetPos vmath.Vec2
	fired    bool
	tick     uint64

	machine *fsm.Machine[*Simulation]
}

// NewSimulation binds a world and config, designating moverName as the launched body
// The simulation starts Armed with the mover at resetPos
func NewSimulation(world *World, cfg Config, moverName string, resetPos vmath.Vec2) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mover := world.Body(moverName)
	if mover == nil {
		return nil, fmt.Errorf("%w: mover %q not in world", physics.ErrInvalidBody, moverName)
	}
	if !mover.Movable {
		return nil, fmt.Errorf("%w: mover %q is not movable", physics.ErrInvalidBody, moverName)
	}
	if !vmath.V2IsFinite(resetPos) {
		return nil, fmt.Errorf("%w: reset position %v", physics.ErrNonFinite, resetPos)
	}
	if other := world.coincident(mover, resetPos); other != nil {
		return nil, fmt.Errorf("%w: reset position on %q", physics.ErrCoincidentBodies, other.Name)
	}

	s := &Simulation{
		world:    world,
		cfg:      cfg,
		mover:    mover,
		resetPos: resetPos,
		machine:  fsm.NewMachine[*Simulation](),
	}

	s.machine.RegisterEvent(EventReset, EventLaunch, EventPause, EventResume, EventHalt)
	s.machine.RegisterAction("ClearFired", func(s *Simulation) { s.fired = false })
	s.machine.RegisterAction("MarkFired", func(s *Simulation) { s.fired = true })
	s.machine.RegisterGuard("HasLaunchVelocity", func(s *Simulation) bool { return !vmath.V2IsZero(s.mover.Vel) })

	if err := s.machine.LoadConfig([]byte(sessionConfig)); err != nil {
		return nil, err
	}
	if err := s.machine.Init(s); err != nil {
		return nil, err
	}

	s.placeMover()
	return s, nil
}

func (s *Simulation) placeMover() {
	s.mover.Pos = s.resetPos
	s.mover.Vel = vmath.Vec2{}
}

// Reset returns the mover to its reset position at rest and re-arms
func (s *Simulation) Reset() {
	s.placeMover()
	s.tick = 0
	s.machine.HandleEvent(s, EventReset)
}

// Launch sets the mover's position and velocity and starts integration
func (s *Simulation) Launch(vel, pos vmath.Vec2) error {
	if !s.Armed() {
		return fmt.Errorf("%w: state %s", ErrNotArmed, s.State())
	}
	if !vmath.V2IsFinite(vel) || !vmath.V2IsFinite(pos) {
		return fmt.Errorf("%w: launch velocity %v position %v", physics.ErrNonFinite, vel, pos)
	}
	if vmath.V2IsZero(vel) {
		return fmt.Errorf("%w: zero launch velocity", physics.ErrDegenerateInput)
	}
	if other := s.world.coincident(s.mover, pos); other != nil {
		return fmt.Errorf("%w: launch position on %q", physics.ErrCoincidentBodies, other.Name)
	}

	prevPos, prevVel := s.mover.Pos, s.mover.Vel
	s.mover.Pos = pos
	s.mover.Vel = vel
	if !s.machine.HandleEvent(s, EventLaunch) {
		s.mover.Pos, s.mover.Vel = prevPos, prevVel
		return fmt.Errorf("%w: launch rejected in state %s", ErrNotArmed, s.State())
	}
	return nil
}

// Step executes one tick when Running; no-op otherwise
func (s *Simulation) Step() ([]Collision, error) {
	if !s.Running() {
		return nil, nil
	}
	collisions, err := s.world.Step(s.cfg)
	if err != nil {
		return nil, err
	}
	s.tick++
	return collisions, nil
}

// Pause suspends integration, returns true if the state changed
func (s *Simulation) Pause() bool {
	return s.machine.HandleEvent(s, EventPause)
}

// Resume continues a paused simulation
func (s *Simulation) Resume() bool {
	return s.machine.HandleEvent(s, EventResume)
}

// Halt stops integration until Reset; the driver calls it on a terminal condition
func (s *Simulation) Halt() bool {
	return s.machine.HandleEvent(s, EventHalt)
}

// State returns the active lifecycle leaf state
func (s *Simulation) State() string {
	return s.machine.State()
}

func (s *Simulation) Armed() bool   { return s.machine.InState(StateArmed) }
func (s *Simulation) Running() bool { return s.machine.InState(StateRunning) }
func (s *Simulation) Idle() bool    { return s.machine.InState(StateIdle) }

// Fired reports whether the mover has been launched since the last reset
func (s *Simulation) Fired() bool {
	return s.fired
}

// Tick returns ticks integrated since the last reset
func (s *Simulation) Tick() uint64 {
	return s.tick
}

func (s *Simulation) World() *World        { return s.world }
func (s *Simulation) Mover() *physics.Body { return s.mover }
func (s *Simulation) Config() Config       { return s.cfg }
func (s *Simulation) ResetPos() vmath.Vec2 { return s.resetPos }
