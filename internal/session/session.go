// Package session assembles the devices and the step scheduler on one
// event loop, the way both the interactive program and the replay tool
// run them.
package session

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/input"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/thelolagemann/goinput/pkg/steps"
)

// Options configure a Session.
type Options struct {
	// Target is the geometry pointer positions are relative to. Defaults
	// to raw.Origin.
	Target raw.Target
	// Locker is the pointer lock capability handed to the mouse.
	Locker raw.Locker
	// PointerLock makes a mouse button press request the pointer lock.
	PointerLock bool
	// StepLogs turns on the Pressed/Released logs of every device. They
	// are written to the logger and cleared after every step.
	StepLogs bool
	Logger   log.Logger
}

// Session is a set of devices fed by one loop.
type Session struct {
	Loop        *loop.Loop
	Steps       *steps.Steps
	Keyboard    *input.Keyboard
	Mouse       *input.Mouse
	Touch       *input.Touch
	Orientation *input.Orientation

	log      log.Logger
	stepLogs bool
	errors   int
}

// New creates the devices and the scheduler on l. The scheduler starts
// running immediately.
func New(l *loop.Loop, o Options) (*Session, error) {
	if o.Target == nil {
		o.Target = raw.Origin
	}
	if o.Logger == nil {
		o.Logger = log.NewNullLogger()
	}

	s := &Session{Loop: l, log: o.Logger, stepLogs: o.StepLogs}

	opts := []input.Opt{
		input.WithLogger(o.Logger),
		input.WithErrorHandler(s.report),
	}
	if o.StepLogs {
		opts = append(opts, input.WithSteps())
	}

	var err error
	if s.Keyboard, err = input.NewKeyboard(l.Source(), opts...); err != nil {
		return nil, err
	}
	if s.Mouse, err = input.NewMouse(l.Source(), o.Target, append(opts, input.WithPointerLocker(o.Locker))...); err != nil {
		return nil, err
	}
	s.Mouse.SetPointerLock(o.PointerLock)
	if s.Touch, err = input.NewTouch(l.Source(), o.Target, opts...); err != nil {
		return nil, err
	}
	if s.Orientation, err = input.NewOrientation(l.Source(), opts...); err != nil {
		return nil, err
	}

	if s.Steps, err = steps.New(l, steps.WithLogger(o.Logger)); err != nil {
		return nil, err
	}
	// wildcard subscribers run after every other subscriber of the step
	s.Steps.Subscribe(hooks.Wildcard, func(_ *steps.Steps, ev steps.StepEvent) {
		s.endStep(ev)
	})

	return s, nil
}

func (s *Session) report(err error) {
	s.errors++
	s.log.Errorf("session: %v", err)
}

// Errors returns the number of dispatch errors the devices reported.
func (s *Session) Errors() int {
	return s.errors
}

// endStep writes the step logs and clears the per step state of every
// device.
func (s *Session) endStep(ev steps.StepEvent) {
	if s.stepLogs {
		if line := s.stepLog(); line != "" {
			s.log.Infof("step %d: %s", ev.Frame, line)
		}
	}

	s.Keyboard.StepClear()
	s.Mouse.StepClear()
	s.Touch.StepClear()
	s.Orientation.StepClear()
}

// stepLog summarises the transitions logged since the last step, empty if
// there were none.
func (s *Session) stepLog() string {
	var parts []string
	add := func(label string, names []string) {
		if len(names) > 0 {
			sort.Strings(names)
			parts = append(parts, label+" "+strings.Join(names, ","))
		}
	}

	add("keys down", keys(s.Keyboard.Pressed))
	add("keys up", keys(s.Keyboard.Released))
	add("buttons down", keys(s.Mouse.Pressed))
	add("buttons up", keys(s.Mouse.Released))
	add("touches started", fingers(s.Touch.Pressed))
	add("touches ended", fingers(s.Touch.Released))

	return strings.Join(parts, "; ")
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func fingers(fs []*input.Finger) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, strconv.Itoa(f.ID))
	}
	return out
}

// LogEvents logs every notification of every device at debug level.
func (s *Session) LogEvents() {
	s.Keyboard.Subscribe(hooks.Wildcard, func(_ *input.Keyboard, ev input.KeyEvent) {
		s.log.Debugf("keyboard: %s %s (%d)", ev.Type, ev.Key, ev.Code)
	})
	s.Mouse.Subscribe(hooks.Wildcard, func(m *input.Mouse, ev input.MouseEvent) {
		switch ev.Type {
		case input.PointerLock:
			s.log.Debugf("mouse: pointerlock locked=%t failed=%t", ev.PointerLocked, ev.Failed)
		case input.Wheel:
			s.log.Debugf("mouse: wheel %.0f", ev.Wheel)
		default:
			s.log.Debugf("mouse: %s %s at %.0f,%.0f", ev.Type, ev.Button, ev.X, ev.Y)
		}
	})
	s.Touch.Subscribe(hooks.Wildcard, func(_ *input.Touch, ev input.TouchEvent) {
		s.log.Debugf("touch: %s %d fingers", ev.Type, len(ev.Fingers))
	})
	s.Orientation.Subscribe(hooks.Wildcard, func(_ *input.Orientation, ev input.OrientationEvent) {
		s.log.Debugf("orientation: %s %.1f %.1f %.1f", ev.Type, ev.Alpha, ev.Beta, ev.Gamma)
	})
	if _, err := s.Loop.Source().Attach(raw.KindResize, func(ev raw.Event) {
		r := ev.(raw.Resize)
		s.log.Debugf("target: resized to %dx%d", r.Width, r.Height)
	}); err != nil {
		s.log.Errorf("session: %v", err)
	}
}

// Close stops the scheduler and detaches every device.
func (s *Session) Close() error {
	s.Steps.Stop()

	var result *multierror.Error
	for _, d := range []interface{ Disable() error }{s.Keyboard, s.Mouse, s.Touch, s.Orientation} {
		if err := d.Disable(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
