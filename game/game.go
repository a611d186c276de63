package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/level"
	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/status"
	"github.com/lixenwraith/slingshot/vmath"
)

// ErrOutsideStartZone is returned when an aim drag starts outside the start zone
var ErrOutsideStartZone = errors.New("aim outside start zone")

// Sounder receives audio cues; audio.SoundManager implements it
type Sounder interface {
	PlayBounce(speed float64)
	PlayGoal()
}

// TickResult reports what one Update did
type TickResult struct {
	Collisions []engine.Collision
	Goal       bool
}

// Game drives a level's simulation: zones, aiming, goal detection and cues
// Safe for concurrent use; the tick loop, input and level reloads may run on different goroutines
type Game struct {
	mu sync.Mutex

	level *level.Level
	sim   *engine.Simulation
	sound Sounder

	goals  int
	onGoal func()

	metrics *status.Registry
	stats   gameStats
}

// gameStats caches metric pointers written on every tick
type gameStats struct {
	launches, ticks, bounces, goals, resets, reloads *atomic.Int64
	lastImpact, maxSpeed                             *status.AtomicFloat
	level                                            *status.AtomicString
}

func newGameStats(r *status.Registry) gameStats {
	return gameStats{
		launches:   r.Ints.Get(status.KeyLaunches),
		ticks:      r.Ints.Get(status.KeyTicks),
		bounces:    r.Ints.Get(status.KeyBounces),
		goals:      r.Ints.Get(status.KeyGoals),
		resets:     r.Ints.Get(status.KeyResets),
		reloads:    r.Ints.Get(status.KeyReloads),
		lastImpact: r.Floats.Get(status.KeyLastImpact),
		maxSpeed:   r.Floats.Get(status.KeyMaxSpeed),
		level:      r.Strings.Get(status.KeyLevel),
	}
}

// New builds a game for l; sound may be nil
func New(l *level.Level, sound Sounder) (*Game, error) {
	sim, err := l.NewSimulation()
	if err != nil {
		return nil, fmt.Errorf("failed to build level %q: %w", l.Name, err)
	}
	metrics := status.NewRegistry()
	g := &Game{level: l, sim: sim, sound: sound, metrics: metrics, stats: newGameStats(metrics)}
	g.stats.level.Store(l.Name)
	return g, nil
}

// Metrics returns the session counters; safe to read while the game runs
func (g *Game) Metrics() *status.Registry {
	return g.metrics
}

// SetGoalHandler installs a callback run after the satellite reaches the end zone
// Called with the game lock held; it must not call back into the game
func (g *Game) SetGoalHandler(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onGoal = fn
}

// Update runs one tick
// The goal is tested against the start-of-tick position, before physics
func (g *Game) Update() (TickResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var res TickResult
	if !g.sim.Running() {
		return res, nil
	}

	sat := g.sim.Mover()
	if vmath.Overlaps(g.level.EndZone, sat) {
		g.sim.Halt()
		g.goals++
		g.stats.goals.Add(1)
		res.Goal = true
		log.Printf("Goal reached at tick %d (%.2f,%.2f)", g.sim.Tick(), sat.Pos.X, sat.Pos.Y)
		if g.sound != nil {
			g.sound.PlayGoal()
		}
		if g.onGoal != nil {
			g.onGoal()
		}
		return res, nil
	}

	collisions, err := g.sim.Step()
	if err != nil {
		g.sim.Halt()
		log.Printf("Simulation halted at tick %d: %v", g.sim.Tick(), err)
		return res, err
	}

	g.stats.ticks.Add(1)
	g.stats.maxSpeed.Max(vmath.V2Mag(sat.Vel))
	res.Collisions = collisions
	for _, c := range collisions {
		speed := vmath.V2Mag(c.VelocityBefore)
		g.stats.bounces.Add(1)
		g.stats.lastImpact.Set(speed)
		log.Printf("Bounce %s off %s at (%.2f,%.2f), speed %.3f", c.Mover.Name, c.Obstacle.Name, c.Contact.X, c.Contact.Y, speed)
		if g.sound != nil {
			g.sound.PlayBounce(speed)
		}
	}
	return res, nil
}

// DragVelocity converts an aim drag into a launch velocity
// The satellite flies away from the drag direction, with speed growing as the root of drag length
func DragVelocity(start, end vmath.Vec2, divisor float64) (vmath.Vec2, error) {
	drag := vmath.V2Sub(start, end)
	length := vmath.V2Mag(drag)
	if length == 0 {
		return vmath.Vec2{}, fmt.Errorf("%w: zero-length drag", physics.ErrDegenerateInput)
	}
	if !(divisor > 0) {
		return vmath.Vec2{}, fmt.Errorf("%w: drag divisor %v", physics.ErrDegenerateInput, divisor)
	}
	return vmath.V2Div(vmath.V2Div(drag, math.Sqrt(length)), divisor), nil
}

// LaunchFromDrag launches the satellite from start using the drag start-end
func (g *Game) LaunchFromDrag(start, end vmath.Vec2) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.sim.Armed() {
		return fmt.Errorf("%w: state %s", engine.ErrNotArmed, g.sim.State())
	}
	if !vmath.CircleContains(g.level.StartZone.Circle(), start) {
		return fmt.Errorf("%w: (%.2f,%.2f)", ErrOutsideStartZone, start.X, start.Y)
	}
	vel, err := DragVelocity(start, end, g.level.Launch.DragDivisor)
	if err != nil {
		return err
	}
	return g.launch(vel, start)
}

// LaunchDefault fires the level's configured shot
func (g *Game) LaunchDefault() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.launch(g.level.Launch.Velocity.Vec(), g.level.Launch.Position.Vec())
}

func (g *Game) launch(vel, pos vmath.Vec2) error {
	if err := g.sim.Launch(vel, pos); err != nil {
		return err
	}
	g.stats.launches.Add(1)
	log.Printf("Launched from (%.2f,%.2f) with velocity (%.3f,%.3f)", pos.X, pos.Y, vel.X, vel.Y)
	return nil
}

// Reset re-arms with the satellite at its reset position
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sim.Reset()
	g.stats.resets.Add(1)
	log.Printf("Reset")
}

// TogglePause pauses a running game or resumes a paused one, returns true if the state changed
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sim.Running() {
		return g.sim.Pause()
	}
	return g.sim.Resume()
}

// Reload swaps in a new level; on failure the current level keeps running
// The new level starts armed
func (g *Game) Reload(l *level.Level) error {
	sim, err := l.NewSimulation()
	if err != nil {
		return fmt.Errorf("failed to reload level %q: %w", l.Name, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.level = l
	g.sim = sim
	g.stats.reloads.Add(1)
	g.stats.level.Store(l.Name)
	log.Printf("Level reloaded: %s", l.Name)
	return nil
}

// InStartZone reports whether p lies strictly inside the start zone
func (g *Game) InStartZone(p vmath.Vec2) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return vmath.CircleContains(g.level.StartZone.Circle(), p)
}

// Armed reports whether a launch would be accepted
func (g *Game) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sim.Armed()
}

// State returns the simulation lifecycle state
func (g *Game) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sim.State()
}

// Snapshot is a copy of the satellite state for reporting
type Snapshot struct {
	State string
	Tick  uint64
	Pos   vmath.Vec2
	Vel   vmath.Vec2
	Goals int
}

// Snapshot copies the current satellite state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	sat := g.sim.Mover()
	return Snapshot{
		State: g.sim.State(),
		Tick:  g.sim.Tick(),
		Pos:   sat.Pos,
		Vel:   sat.Vel,
		Goals: g.goals,
	}
}

// Level returns the active level
func (g *Game) Level() *level.Level {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}
