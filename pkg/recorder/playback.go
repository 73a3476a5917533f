package recorder

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/thelolagemann/goinput/pkg/steps"
	"github.com/thelolagemann/goinput/pkg/utils"
)

// Emitter delivers replayed events. Both raw.Bus and loop.Loop are
// emitters.
type Emitter interface {
	Emit(ev raw.Event)
}

type entry struct {
	frame uint64
	event raw.Event
}

// Playback replays a recording.
type Playback struct {
	entries []entry
	next    int

	steps *steps.Steps
	tok   hooks.Token
	log   log.Logger
}

// Load reads a recording from path. The file may be compressed or
// archived as utils.LoadFile allows.
func Load(path string) (*Playback, error) {
	data, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	return Parse(data)
}

// Parse decodes a recording and verifies its digest.
func Parse(data []byte) (*Playback, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	body, err := cbrotli.Decode(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if xxhash.Sum64(body) != h.digest {
		return nil, ErrDigestMismatch
	}

	p := &Playback{entries: make([]entry, 0, h.count), log: log.NewNullLogger()}
	for len(body) > 0 {
		if len(body) < 5 {
			return nil, fmt.Errorf("%w: truncated entry %d", ErrCorrupt, len(p.entries))
		}
		frame := binary.LittleEndian.Uint32(body)
		n := int(body[4])
		body = body[5:]
		if len(body) < n {
			return nil, fmt.Errorf("%w: truncated entry %d", ErrCorrupt, len(p.entries))
		}

		ev, err := raw.Unmarshal(body[:n])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorrupt, len(p.entries), err)
		}
		body = body[n:]

		p.entries = append(p.entries, entry{frame: uint64(frame), event: ev})
	}

	if len(p.entries) != int(h.count) {
		return nil, fmt.Errorf("%w: %d entries, header says %d", ErrCorrupt, len(p.entries), h.count)
	}
	return p, nil
}

// Len returns the number of events in the recording.
func (p *Playback) Len() int {
	return len(p.entries)
}

// EndFrame returns the frame of the last event.
func (p *Playback) EndFrame() uint64 {
	if len(p.entries) == 0 {
		return 0
	}
	return p.entries[len(p.entries)-1].frame
}

// Attach replays the recording into e as s steps. The events recorded on
// a frame are emitted after every other subscriber of that step has run,
// which is where they arrived in the recorded session. Events recorded
// before the first step are emitted with the first.
func (p *Playback) Attach(e Emitter, s *steps.Steps, logger log.Logger) {
	if logger != nil {
		p.log = logger
	}
	p.steps = s
	p.tok = s.Subscribe(hooks.Wildcard, func(_ *steps.Steps, ev steps.StepEvent) {
		for p.next < len(p.entries) && p.entries[p.next].frame <= ev.Frame {
			e.Emit(p.entries[p.next].event)
			p.next++
		}
		if p.Done() {
			p.log.Infof("recorder: playback finished on frame %d", ev.Frame)
			p.Detach()
		}
	})
}

// Detach stops the playback.
func (p *Playback) Detach() {
	if p.steps != nil {
		p.steps.Unsubscribe(hooks.Wildcard, p.tok)
		p.steps = nil
	}
}

// Done reports whether every event has been replayed.
func (p *Playback) Done() bool {
	return p.next >= len(p.entries)
}

func (p *Playback) String() string {
	return fmt.Sprintf("%d/%d events", p.next, len(p.entries))
}
