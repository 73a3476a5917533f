// Package perf keeps the frame times of a step scheduler and renders them
// as a plot, for saving or copying to the clipboard.
package perf

import (
	"errors"
	"image"
	"sync"

	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/steps"
	"github.com/thelolagemann/goinput/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoSamples is returned when plotting before the first step.
var ErrNoSamples = errors.New("perf: no samples")

// DefaultSize is the number of frame times a Monitor keeps when none is
// given.
const DefaultSize = 240

// Monitor records the delta of every step into a ring of recent frame
// times. Samples are written on the loop goroutine and may be read from
// any other.
type Monitor struct {
	mu    sync.Mutex
	ring  []float64
	head  int
	full  bool
	total uint64

	steps *steps.Steps
	tok   hooks.Token
}

// NewMonitor subscribes to s and keeps the last size frame times.
func NewMonitor(s *steps.Steps, size int) *Monitor {
	if size <= 0 {
		size = DefaultSize
	}
	m := &Monitor{ring: make([]float64, size), steps: s}
	m.tok = s.Subscribe(steps.Step, func(_ *steps.Steps, ev steps.StepEvent) {
		m.add(ev.Delta)
	})
	return m
}

func (m *Monitor) add(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ring[m.head] = delta
	m.head++
	if m.head == len(m.ring) {
		m.head, m.full = 0, true
	}
	m.total++
}

// Detach stops recording.
func (m *Monitor) Detach() {
	m.steps.Unsubscribe(steps.Step, m.tok)
}

// Samples returns the kept frame times in milliseconds, oldest first.
func (m *Monitor) Samples() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.full {
		return append([]float64(nil), m.ring[:m.head]...)
	}
	out := make([]float64, 0, len(m.ring))
	out = append(out, m.ring[m.head:]...)
	return append(out, m.ring[:m.head]...)
}

// Total returns the number of steps seen, including those that no longer
// fit the ring.
func (m *Monitor) Total() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Average returns the mean of the kept frame times, 0 without samples.
func (m *Monitor) Average() float64 {
	samples := m.Samples()
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// Plot renders the kept frame times into a w by h image.
func (m *Monitor) Plot(w, h int) (image.Image, error) {
	samples := m.Samples()
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "ms"
	p.Y.Min = 0

	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = float64(i)
		xys[i].Y = s
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	p.Add(line, plotter.NewGrid())

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))

	return img, nil
}

// SavePNG writes a 640x480 plot to path and returns the name written.
func (m *Monitor) SavePNG(path string) (string, error) {
	img, err := m.Plot(640, 480)
	if err != nil {
		return "", err
	}
	return utils.SaveImage(img, path)
}

// CopyToClipboard places a 320x240 thumbnail of the plot on the system
// clipboard.
func (m *Monitor) CopyToClipboard() error {
	img, err := m.Plot(640, 480)
	if err != nil {
		return err
	}
	return utils.CopyImage(Thumbnail(img, 320, 240))
}
