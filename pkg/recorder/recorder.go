// Package recorder records the raw events of a session against the step
// they arrived on, and plays them back into a later session.
package recorder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/thelolagemann/goinput/pkg/steps"
)

// ErrClosed is returned by Close on a Recorder that is already closed.
var ErrClosed = errors.New("recorder: closed")

// Opt configures a Recorder.
type Opt func(r *Recorder)

func WithLogger(l log.Logger) Opt {
	return func(r *Recorder) {
		r.log = l
	}
}

// WithQuality sets the brotli quality of the body, 0 to 11.
func WithQuality(q int) Opt {
	return func(r *Recorder) {
		r.quality = q
	}
}

// Recorder taps a bus and keeps every event it sees until Close writes
// the recording.
type Recorder struct {
	w       io.Writer
	steps   *steps.Steps
	detach  raw.Detach
	log     log.Logger
	quality int

	body  bytes.Buffer
	count uint32
	err   error
}

// New starts recording the events emitted on bus. Each event is stamped
// with the frame s last dispatched.
func New(w io.Writer, bus *raw.Bus, s *steps.Steps, opts ...Opt) *Recorder {
	r := &Recorder{
		w:       w,
		steps:   s,
		log:     log.NewNullLogger(),
		quality: 9,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.detach = bus.Tap(r.record)
	return r
}

func (r *Recorder) record(ev raw.Event) {
	b, err := raw.Marshal(ev)
	if err != nil {
		r.log.Errorf("recorder: %v", err)
		return
	}
	if len(b) > math.MaxUint8 {
		r.log.Errorf("recorder: %v event too large (%d bytes)", ev.Kind(), len(b))
		return
	}

	r.body.Write(binary.LittleEndian.AppendUint32(nil, uint32(r.steps.Frame())))
	r.body.WriteByte(uint8(len(b)))
	r.body.Write(b)
	r.count++
}

// Len returns the number of events recorded so far.
func (r *Recorder) Len() int {
	return int(r.count)
}

// Close stops recording and writes the recording. It does not close the
// underlying writer.
func (r *Recorder) Close() error {
	if r.detach == nil {
		return ErrClosed
	}
	r.detach()
	r.detach = nil

	body := r.body.Bytes()
	h := header{count: r.count, digest: xxhash.Sum64(body)}

	compressed, err := cbrotli.Encode(body, cbrotli.WriterOptions{Quality: r.quality})
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}

	if _, err := r.w.Write(h.marshal()); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	if _, err := r.w.Write(compressed); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}

	r.log.Infof("recorder: %d events, %d bytes", r.count, headerSize+len(compressed))
	return nil
}
