// Package input implements the keyboard, mouse, touch and orientation
// devices.
//
// Every device listens to a raw.Source through an enable gate, keeps live
// state that always reflects the latest raw event, accumulates deltas and
// (in step mode) transition logs until StepClear is called, and notifies
// its subscribers through its own hooks.Registry.
//
// Devices are not safe for concurrent use; they expect to be driven from
// one event loop, see package loop.
package input

import (
	"fmt"

	"github.com/thelolagemann/goinput/internal/gate"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/log"
)

// Channels dispatched by the devices. Each device declares the subset it
// uses, plus hooks.Wildcard.
const (
	Down        hooks.Channel = "down"
	Up          hooks.Channel = "up"
	Move        hooks.Channel = "move"
	Wheel       hooks.Channel = "wheel"
	PointerLock hooks.Channel = "pointerlock"
	Start       hooks.Channel = "start"
	End         hooks.Channel = "end"
	Rotate      hooks.Channel = "rotate"
)

// device holds what every input device has in common: its name, enable
// gate, logger and error handler.
type device struct {
	name    string
	gate    *gate.Gate
	log     log.Logger
	onError func(error)
}

func (d *device) init(cfg config) error {
	d.log = cfg.logger
	d.onError = cfg.onError
	if cfg.enabled {
		return d.Enable()
	}
	return nil
}

// Enable attaches the device to its source. It is a no-op if the device is
// already enabled.
func (d *device) Enable() error {
	if d.gate.Enabled() {
		return nil
	}
	if err := d.gate.Enable(); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	d.log.Debugf("%s: enabled", d.name)
	return nil
}

// Disable detaches the device from its source. Live state and logs are
// left untouched.
func (d *device) Disable() error {
	if !d.gate.Enabled() {
		return nil
	}
	if err := d.gate.Disable(); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	d.log.Debugf("%s: disabled", d.name)
	return nil
}

// IsEnabled reports whether the device receives raw events.
func (d *device) IsEnabled() bool {
	return d.gate.Enabled()
}

// report surfaces a dispatch error from a raw event handler, which has no
// caller to return it to.
func (d *device) report(err error) {
	if err == nil {
		return
	}
	d.log.Errorf("%s: %v", d.name, err)
	if d.onError != nil {
		d.onError(fmt.Errorf("%s: %w", d.name, err))
	}
}
