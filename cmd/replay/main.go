// Command replay plays a recording back into a headless session and
// summarises what the devices saw.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/goinput/internal/session"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/input"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/perf"
	"github.com/thelolagemann/goinput/pkg/recorder"
	"github.com/thelolagemann/goinput/pkg/steps"
)

func main() {
	refresh := flag.Float64("refresh", 600, "Frames per second to replay at")
	verbose := flag.Bool("v", false, "Log every input notification")
	plotFile := flag.String("plot", "", "Save a frame time plot to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] recording\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var logger = log.New()
	if *verbose {
		logger = log.NewDebug(os.Stdout)
	}

	p, err := recorder.Load(flag.Arg(0))
	if err != nil {
		logger.Fatal(err.Error())
	}

	l := loop.New(loop.WithRefreshRate(*refresh), loop.WithLogger(logger))
	sess, err := session.New(l, session.Options{Logger: logger})
	if err != nil {
		logger.Fatal(err.Error())
	}
	sess.LogEvents()

	var keys, buttons, touches int
	sess.Keyboard.Subscribe(input.Down, func(*input.Keyboard, input.KeyEvent) { keys++ })
	sess.Mouse.Subscribe(input.Down, func(*input.Mouse, input.MouseEvent) { buttons++ })
	sess.Touch.Subscribe(input.Start, func(_ *input.Touch, ev input.TouchEvent) { touches += len(ev.Fingers) })

	monitor := perf.NewMonitor(sess.Steps, 0)

	p.Attach(l, sess.Steps, logger)
	sess.Steps.Subscribe(hooks.Wildcard, func(*steps.Steps, steps.StepEvent) {
		if p.Done() {
			l.Quit()
		}
	})

	logger.Infof("replaying %d events over %d frames", p.Len(), p.EndFrame())
	if err := l.Run(context.Background()); err != nil {
		logger.Fatal(err.Error())
	}

	logger.Infof("%s: %d key presses, %d button presses, %d touches, %d errors",
		p, keys, buttons, touches, sess.Errors())

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
}
