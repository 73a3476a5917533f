// Package gate binds a device's raw listeners to its event source and
// attaches or detaches them as a unit.
package gate

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/goinput/pkg/raw"
)

type binding struct {
	kind   raw.Kind
	fn     raw.Listener
	detach raw.Detach
}

// Gate controls whether a set of listeners is attached to a source.
type Gate struct {
	src      raw.Source
	bindings []*binding
	enabled  bool
}

// New returns a disabled Gate over src.
func New(src raw.Source) *Gate {
	return &Gate{src: src}
}

// Listen binds fn to kind. Bindings made while the gate is enabled take
// effect on the next Enable.
func (g *Gate) Listen(kind raw.Kind, fn raw.Listener) {
	g.bindings = append(g.bindings, &binding{kind: kind, fn: fn})
}

// Enabled reports whether the listeners are attached.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Enable attaches every bound listener. If one of them cannot be attached
// the ones already attached are detached again and the gate stays
// disabled.
func (g *Gate) Enable() error {
	if g.enabled {
		return nil
	}

	for i, b := range g.bindings {
		detach, err := g.src.Attach(b.kind, b.fn)
		if err != nil {
			var result error = fmt.Errorf("attaching %v: %w", b.kind, err)
			for _, prev := range g.bindings[:i] {
				if derr := prev.release(); derr != nil {
					result = multierror.Append(result, derr)
				}
			}
			return result
		}
		b.detach = detach
	}

	g.enabled = true
	return nil
}

// Disable detaches every listener. Detach failures are collected; the gate
// is disabled regardless.
func (g *Gate) Disable() error {
	if !g.enabled {
		return nil
	}
	g.enabled = false

	var result *multierror.Error
	for _, b := range g.bindings {
		if err := b.release(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (b *binding) release() error {
	if b.detach == nil {
		return nil
	}
	detach := b.detach
	b.detach = nil
	if err := detach(); err != nil {
		return fmt.Errorf("detaching %v: %w", b.kind, err)
	}
	return nil
}
