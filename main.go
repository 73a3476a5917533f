package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"

	"github.com/thelolagemann/goinput/internal/session"
	"github.com/thelolagemann/goinput/pkg/driver"
	_ "github.com/thelolagemann/goinput/pkg/driver/fyne"
	_ "github.com/thelolagemann/goinput/pkg/driver/glfw"
	_ "github.com/thelolagemann/goinput/pkg/driver/sdl"
	_ "github.com/thelolagemann/goinput/pkg/driver/term"
	_ "github.com/thelolagemann/goinput/pkg/driver/web"
	"github.com/thelolagemann/goinput/pkg/input"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/perf"
	"github.com/thelolagemann/goinput/pkg/recorder"
	"github.com/thelolagemann/goinput/pkg/statsview"
	"github.com/thelolagemann/goinput/pkg/utils"
)

func main() {
	// start pprof
	go func() {
		err := http.ListenAndServe("localhost:6060", nil)
		if err != nil {
			return
		}
	}()

	driverName := flag.String("driver", "auto", "The input driver to use. Can be auto, fyne, glfw, sdl, term or web")
	refresh := flag.Float64("refresh", loop.DefaultRefreshRate, "Frames per second of the step scheduler")
	stepLogs := flag.Bool("steps-log", false, "Log the keys, buttons and touches of every step")
	pointerLock := flag.Bool("lock", false, "Request the pointer lock on mouse button presses")
	debug := flag.Bool("debug", false, "Log every input notification")
	record := flag.String("record", "", "Record the session to this file")
	replay := flag.String("replay", "", "Replay a recording into the session. Use \"ask\" to pick the file")
	plotFile := flag.String("plot", "", "Save a frame time plot to this file on exit")
	stats := flag.Bool("statsview", false, "Serve runtime statistics on "+statsview.Address)

	driver.RegisterFlags()
	flag.Parse()

	var logger = log.New()
	if *debug {
		logger = log.NewDebug(os.Stdout)
	}

	if len(driver.InstalledDrivers) == 0 {
		logger.Fatal("No input drivers installed. Please compile with at least one input driver")
	}

	d := driver.Get(*driverName)
	// check to make sure the driver is valid
	if d == nil {
		logger.Fatal(fmt.Sprintf("invalid input driver %q, installed: %v", *driverName, driver.Names()))
	}

	l := loop.New(loop.WithRefreshRate(*refresh), loop.WithLogger(logger))
	if err := d.Initialize(l); err != nil {
		logger.Fatal(err.Error())
	}

	sess, err := session.New(l, session.Options{
		Target:      d.Target(),
		Locker:      d.Locker(),
		PointerLock: *pointerLock,
		StepLogs:    *stepLogs,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal(err.Error())
	}
	sess.LogEvents()

	monitor := perf.NewMonitor(sess.Steps, perf.DefaultSize)

	// escape quits, F12 copies the frame time plot to the clipboard
	sess.Keyboard.Subscribe(input.Down, func(_ *input.Keyboard, ev input.KeyEvent) {
		switch ev.Key {
		case "escape":
			l.Quit()
		case "f12":
			if err := monitor.CopyToClipboard(); err != nil {
				logger.Errorf("failed to copy plot: %v", err)
			}
		}
	})

	var rec *recorder.Recorder
	if *record != "" {
		f, err := os.Create(*record)
		if err != nil {
			logger.Fatal(err.Error())
		}
		defer f.Close()
		rec = recorder.New(f, l.Bus(), sess.Steps, recorder.WithLogger(logger))
	}

	if *replay != "" {
		path := *replay
		if path == "ask" {
			if path, err = utils.AskForFile("Open recording", "."); err != nil {
				if errors.Is(err, utils.ErrCancelled) {
					return
				}
				logger.Fatal(err.Error())
			}
		}
		p, err := recorder.Load(path)
		if err != nil {
			logger.Fatal(err.Error())
		}
		p.Attach(l, sess.Steps, logger)
		logger.Infof("replaying %d events from %s", p.Len(), path)
	}

	if *stats {
		stop := statsview.Launch(os.Stdout)
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := d.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("driver: %v", err)
	}

	if rec != nil {
		if err := rec.Close(); err != nil {
			logger.Errorf("failed to write recording: %v", err)
		}
	}

	if *plotFile != "" {
		if name, err := monitor.SavePNG(*plotFile); err != nil {
			logger.Errorf("failed to save plot: %v", err)
		} else {
			logger.Infof("saved frame time plot to %s", name)
		}
	}

	if err := sess.Close(); err != nil {
		logger.Errorf("%v", err)
	}
	logger.Infof("%d frames, average frame time %.2fms", monitor.Total(), monitor.Average())
}
