package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/bounce/audio"
	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/input"
	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/render"
)

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(1)
	}

	keys := input.DefaultKeyTable()
	if err := input.ApplyBindings(keys, cfg.Keys); err != nil {
		fmt.Fprintf(os.Stderr, "bounce: keys: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logging, opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			crash(screen, log, "BOUNCE CRASHED", r)
		}
	}()
	// Normal exit terminal cleanup
	defer screen.Fini()

	sounds := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing muted", zap.Error(err))
			sounds.SetMuted(true)
		} else {
			defer sounds.Cleanup()
		}
	} else {
		sounds.SetMuted(true)
	}

	events := event.NewEventQueue()
	game := engine.NewGame(cfg, events, log)
	router := engine.NewEventRouter(events)
	router.Register(sounds)
	router.Register(engine.NewEventLogger(log))
	renderer := render.NewTerminalRenderer(screen)
	collector := input.NewCollector(keys)

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(screen, log, "EVENT POLLER CRASHED", r)
			}
		}()
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()
	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider())

	for {
		select {
		case ev := <-eventChan:
			if resize, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				renderer.Resize(resize.Size())
				continue
			}
			collector.HandleEvent(ev)

		case <-frameTicker.C:
			in := collector.Drain()
			if in.ToggleMute && cfg.Audio.Enabled {
				log.Debug("mute toggled", zap.Bool("muted", sounds.ToggleMute()))
			}

			res := game.Update(in, clock.Tick())
			router.DispatchAll()
			if res.Quit {
				log.Info("exit", zap.Int64("frames", game.Frame()), zap.Int("balls", game.HUD().Balls))
				return
			}

			renderer.RenderFrame(game.Scene(), game.HUD())
		}
	}
}

// crash restores the terminal and reports the panic with its stack
func crash(screen tcell.Screen, log *zap.Logger, title string, r any) {
	screen.Fini()
	stack := debug.Stack()
	log.Error("panic", zap.Any("value", r), zap.ByteString("stack", stack))
	_ = log.Sync()
	fmt.Fprintf(os.Stderr, "\n\x1b[31m%s: %v\x1b[0m\n", title, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", stack)
	os.Exit(1)
}
