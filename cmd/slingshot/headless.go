package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/game"
	"github.com/lixenwraith/slingshot/vmath"
)

// outcome summarizes a headless run
type outcome struct {
	Goal     bool
	Updates  uint64
	Snapshot game.Snapshot
}

func (o outcome) String() string {
	s := o.Snapshot
	if o.Goal {
		return fmt.Sprintf("goal reached after %d ticks at (%.2f,%.2f)", s.Tick, s.Pos.X, s.Pos.Y)
	}
	return fmt.Sprintf("no goal after %d updates: state %s, tick %d, pos (%.2f,%.2f), vel (%.3f,%.3f)",
		o.Updates, s.State, s.Tick, s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y)
}

// runHeadless updates g until the goal, an error, maxUpdates, or ctx ends
// interval 0 runs as fast as possible on the calling goroutine; otherwise a ClockScheduler paces it
func runHeadless(ctx context.Context, g *game.Game, maxUpdates uint64, interval time.Duration) (outcome, error) {
	var out outcome
	var runErr error

	tick := func() bool {
		if ctx.Err() != nil || out.Updates >= maxUpdates {
			return false
		}
		res, err := g.Update()
		out.Updates++
		if err != nil {
			runErr = err
			return false
		}
		if res.Goal {
			out.Goal = true
			return false
		}
		return true
	}

	if interval <= 0 {
		for tick() {
		}
		log.Printf("Run metrics: %s", g.Metrics())
		out.Snapshot = g.Snapshot()
		return out, runErr
	}

	crashed := make(chan any, 1)
	cs := engine.NewClockScheduler(interval, tick)
	cs.SetCrashHandler(func(r any) { crashed <- r })
	cs.Start()

	select {
	case <-cs.Done():
	case <-ctx.Done():
	}
	cs.Stop()

	select {
	case r := <-crashed:
		return out, fmt.Errorf("tick panicked: %v", r)
	default:
	}

	log.Printf("Scheduler stopped after %d ticks: %s", cs.TickCount(), g.Metrics())
	out.Snapshot = g.Snapshot()
	return out, runErr
}

// parseDrag reads "x1,y1,x2,y2" into an aim drag from (x1,y1) to (x2,y2)
func parseDrag(s string) (start, end vmath.Vec2, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return start, end, fmt.Errorf("drag %q: expected x1,y1,x2,y2", s)
	}
	var v [4]float64
	for i, p := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return start, end, fmt.Errorf("drag %q: %w", s, err)
		}
	}
	return vmath.V2(v[0], v[1]), vmath.V2(v[2], v[3]), nil
}
