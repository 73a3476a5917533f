// Package term is a driver that reads key presses from the controlling
// terminal in raw mode. Terminals do not report key releases, so every
// key press is delivered as a key down immediately followed by a key up.
// Ctrl-C quits.
package term

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/pkg/term"
	"github.com/thelolagemann/goinput/pkg/driver"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
)

func init() {
	d := &termDriver{}
	driver.Install("term", d, []driver.DriverOption{
		{
			Name:        "device",
			Default:     "/dev/tty",
			Value:       &d.device,
			Type:        "string",
			Description: "Terminal device to read keys from",
		},
	})
}

type termDriver struct {
	device string

	loop *loop.Loop
	log  log.Logger
	tty  *term.Term
}

func (d *termDriver) Initialize(l *loop.Loop) error {
	d.loop = l
	d.log = l.Logger()
	return nil
}

// Start puts the terminal in raw mode and runs the loop until ctx is done
// or Ctrl-C is pressed.
func (d *termDriver) Start(ctx context.Context) error {
	if d.loop == nil {
		return errors.New("term: driver not initialized")
	}

	tty, err := term.Open(d.device, term.RawMode)
	if err != nil {
		return err
	}
	d.tty = tty
	defer d.Stop()

	go d.read(tty)

	err = d.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// read posts the key presses read from r until it fails or Ctrl-C is
// pressed.
func (d *termDriver) read(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		code, quit, err := readKey(br)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.log.Errorf("term: %v", err)
			}
			d.loop.Quit()
			return
		}
		if quit {
			d.loop.Quit()
			return
		}
		if code == 0 {
			continue
		}
		d.loop.Post(raw.Key{Code: code})
		d.loop.Post(raw.Key{Code: code, Released: true})
	}
}

func (d *termDriver) Stop() error {
	if d.tty == nil {
		return nil
	}
	tty := d.tty
	d.tty = nil
	if err := tty.Restore(); err != nil {
		tty.Close()
		return err
	}
	return tty.Close()
}

func (d *termDriver) Target() raw.Target {
	return raw.Origin
}

func (d *termDriver) Locker() raw.Locker {
	return nil
}
