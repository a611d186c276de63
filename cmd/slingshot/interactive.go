package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/game"
	"github.com/lixenwraith/slingshot/input"
)

const statusInterval = 100 * time.Millisecond

// arena is the world area mapped onto the terminal
type arena struct {
	width, height float64
}

func (a arena) viewport(cols, rows int) input.Viewport {
	return input.Viewport{
		ScaleX: a.width / float64(max(cols, 1)),
		ScaleY: a.height / float64(max(rows, 1)),
		Rows:   rows,
	}
}

// runInteractive reads mouse and keys from the terminal while a ClockScheduler ticks the game
// The screen shows the status and metrics lines and the aim markers only
func runInteractive(ctx context.Context, g *game.Game, area arena, keys *input.KeyMap, interval time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	cols, rows := screen.Size()
	handler := input.NewAimHandler(g, area.viewport(cols, rows))
	handler.SetKeyMap(keys)

	cs := engine.NewClockScheduler(interval, func() bool {
		if _, err := g.Update(); err != nil {
			log.Printf("Update failed: %v", err)
		}
		return true
	})
	cs.SetCrashHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\nSLINGSHOT CRASHED: %v\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})
	cs.Start()
	defer cs.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	status := time.NewTicker(statusInterval)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch intent := handler.Handle(ev); intent {
			case input.IntentQuit:
				return nil
			case input.IntentResize:
				cols, rows = screen.Size()
				handler.SetViewport(area.viewport(cols, rows))
				screen.Sync()
			case input.IntentRejected:
				log.Printf("Launch rejected: %v", handler.Err())
			case input.IntentNone, input.IntentAimMove:
			default:
				log.Printf("Input: %s", intent)
			}

		case <-status.C:
			drawStatus(screen, handler, g.Snapshot(), g.Metrics().String())
		}
	}
}

func drawStatus(screen tcell.Screen, handler *input.AimHandler, snap game.Snapshot, metrics string) {
	screen.Clear()

	line := fmt.Sprintf(" %-7s tick %-6d pos (%7.1f,%7.1f) vel (%6.2f,%6.2f) goals %d  [r]eset [space]pause [q]uit",
		snap.State, snap.Tick, snap.Pos.X, snap.Pos.Y, snap.Vel.X, snap.Vel.Y, snap.Goals)
	drawText(screen, 0, 0, line, tcell.StyleDefault.Reverse(true))
	drawText(screen, 0, 1, " "+metrics, tcell.StyleDefault.Dim(true))

	if start, end, ok := handler.Aim(); ok {
		vp := handler.Viewport()
		sc, sr := vp.Cell(start)
		ec, er := vp.Cell(end)
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		screen.SetContent(sc, sr, 'o', nil, style)
		screen.SetContent(ec, er, '+', nil, style)
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
