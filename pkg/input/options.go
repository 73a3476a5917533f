package input

import (
	"errors"

	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/raw"
)

var (
	// ErrNoSource is returned by the constructors when no raw event source
	// is given.
	ErrNoSource = errors.New("input: no event source")
	// ErrNoTarget is returned by the constructors of pointer devices when
	// no target is given.
	ErrNoTarget = errors.New("input: no target")
)

type config struct {
	enabled bool
	steps   bool
	logger  log.Logger
	locker  raw.Locker
	onError func(error)
}

// Opt configures a device at construction.
type Opt func(c *config)

// EnabledByDefault controls whether the device attaches to its source when
// it is constructed. Devices are enabled by default.
func EnabledByDefault(enabled bool) Opt {
	return func(c *config) {
		c.enabled = enabled
	}
}

// WithSteps turns on step-log mode: transitions are collected in the
// Pressed and Released logs until the next StepClear.
func WithSteps() Opt {
	return func(c *config) {
		c.steps = true
	}
}

func WithLogger(l log.Logger) Opt {
	return func(c *config) {
		c.logger = l
	}
}

// WithPointerLocker gives a Mouse the platform's pointer lock capability.
// Without one, lock requests fail immediately with a pointerlock
// notification.
func WithPointerLocker(l raw.Locker) Opt {
	return func(c *config) {
		c.locker = l
	}
}

// WithErrorHandler receives dispatch errors (a subscriber dispatching its
// own channel) raised while the device handles raw events. They are logged
// either way.
func WithErrorHandler(fn func(error)) Opt {
	return func(c *config) {
		c.onError = fn
	}
}

func newConfig(opts []Opt) config {
	c := config{enabled: true, logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
