package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/slingshot/audio"
	"github.com/lixenwraith/slingshot/game"
	"github.com/lixenwraith/slingshot/input"
	"github.com/lixenwraith/slingshot/level"
)

var (
	levelFlag       = flag.String("level", "", "Level file (default: "+level.DefaultPath+", then embedded)")
	ticksFlag       = flag.Uint64("ticks", 6000, "Maximum updates for a headless run")
	debugFlag       = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	soundFlag       = flag.Bool("sound", false, "Play bounce and goal cues")
	watchFlag       = flag.Bool("watch", false, "Reload the level file when it changes")
	dragFlag        = flag.String("drag", "", "Launch with an aim drag x1,y1,x2,y2 instead of the level's shot")
	realtimeFlag    = flag.Bool("realtime", false, "Pace headless updates at the level tick rate")
	interactiveFlag = flag.Bool("interactive", false, "Aim with the mouse in the terminal")
	keymapFlag      = flag.String("keymap", "", "Key bindings TOML for interactive mode")
	widthFlag       = flag.Float64("width", 800, "World width mapped to the terminal in interactive mode")
	heightFlag      = flag.Float64("height", 600, "World height mapped to the terminal in interactive mode")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nSLINGSHOT CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slingshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lvl, source, err := level.LoadAuto(*levelFlag)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	log.Printf("Loaded level %q from %s", lvl.Name, source)

	var sound game.Sounder
	if *soundFlag {
		sm := audio.NewSoundManager(audio.LoadAudioConfig())
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			sound = sm
		}
	}

	g, err := game.New(lvl, sound)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	if *interactiveFlag {
		keys := input.DefaultKeyMap()
		if *keymapFlag != "" {
			data, err := os.ReadFile(*keymapFlag)
			if err != nil {
				return fmt.Errorf("failed to read keymap: %w", err)
			}
			if keys, err = input.LoadKeyMap(data); err != nil {
				return fmt.Errorf("failed to load keymap: %w", err)
			}
		}
		if *watchFlag && source != level.SourceEmbedded {
			go watchLevel(ctx, g, source, false)
		}
		return runInteractive(ctx, g, arena{width: *widthFlag, height: *heightFlag}, keys, lvl.TickInterval())
	}

	if err := launch(g); err != nil {
		return fmt.Errorf("failed to launch: %w", err)
	}
	if *watchFlag && source != level.SourceEmbedded {
		go watchLevel(ctx, g, source, true)
	}

	interval := lvl.TickInterval()
	if !*realtimeFlag {
		interval = 0
	}
	out, err := runHeadless(ctx, g, *ticksFlag, interval)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	fmt.Println(out)
	return nil
}

func launch(g *game.Game) error {
	if *dragFlag == "" {
		return g.LaunchDefault()
	}
	start, end, err := parseDrag(*dragFlag)
	if err != nil {
		return err
	}
	return g.LaunchFromDrag(start, end)
}

// watchLevel swaps in the level file on every valid save; relaunch fires the new level's shot
func watchLevel(ctx context.Context, g *game.Game, path string, relaunch bool) {
	err := level.Watch(ctx, path, func(l *level.Level) {
		if err := g.Reload(l); err != nil {
			log.Printf("Reload failed: %v", err)
			return
		}
		if relaunch {
			if err := g.LaunchDefault(); err != nil {
				log.Printf("Relaunch failed: %v", err)
			}
		}
	}, func(err error) {
		log.Printf("Level watch: %v", err)
	})
	if err != nil {
		log.Printf("Level watch stopped: %v", err)
	}
}
