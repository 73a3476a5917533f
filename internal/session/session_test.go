package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/goinput/pkg/input"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/thelolagemann/goinput/pkg/steps"
)

type memLogger struct {
	lines []string
}

func (l *memLogger) Infof(format string, args ...interface{}) {
	l.lines = append(l.lines, "info: "+fmt.Sprintf(format, args...))
}

func (l *memLogger) Errorf(format string, args ...interface{}) {
	l.lines = append(l.lines, "error: "+fmt.Sprintf(format, args...))
}

func (l *memLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, "debug: "+fmt.Sprintf(format, args...))
}

func (l *memLogger) Fatal(str string) {
	panic(str)
}

func (l *memLogger) has(prefix string) bool {
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func TestStepLogsAreClearedEveryStep(t *testing.T) {
	logger := &memLogger{}
	l := loop.New(loop.WithRefreshRate(1000))

	s, err := New(l, Options{StepLogs: true, Logger: logger})
	require.NoError(t, err)

	var pressed []string
	var cleared bool
	s.Steps.Subscribe(steps.Step, func(_ *steps.Steps, ev steps.StepEvent) {
		if pressed != nil {
			// the step after the key arrived
			cleared = len(s.Keyboard.Pressed) == 0
			l.Quit()
			return
		}
		if s.Keyboard.Held("A") {
			pressed = keys(s.Keyboard.Pressed)
		}
	})

	go l.Post(raw.Key{Code: 65})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))

	assert.Equal(t, []string{"A"}, pressed)
	assert.True(t, cleared)
	assert.True(t, s.Keyboard.Held("A"))
	assert.True(t, logger.has("info: step "), logger.lines)

	require.NoError(t, s.Close())
	assert.False(t, s.Steps.IsRunning())
	assert.False(t, s.Keyboard.IsEnabled())
	assert.NoError(t, s.Close())
}

func TestStepLog(t *testing.T) {
	l := loop.New()
	s, err := New(l, Options{StepLogs: true})
	require.NoError(t, err)

	assert.Empty(t, s.stepLog())

	l.Emit(raw.Key{Code: 66})
	l.Emit(raw.Key{Code: 65})
	l.Emit(raw.Button{Code: 3})
	l.Emit(raw.Touches{Phase: raw.KindTouchStart, Changed: []raw.Touch{{ID: 4}}})

	assert.Equal(t, "keys down A,B; buttons down right; touches started 4", s.stepLog())
}

func TestDispatchErrorsAreReported(t *testing.T) {
	logger := &memLogger{}
	l := loop.New()
	s, err := New(l, Options{Logger: logger})
	require.NoError(t, err)

	s.Keyboard.Subscribe(input.Down, func(*input.Keyboard, input.KeyEvent) {
		l.Emit(raw.Key{Code: 32})
	})
	l.Emit(raw.Key{Code: 65})

	assert.Equal(t, 1, s.Errors())
	assert.True(t, logger.has("error: session: "), logger.lines)
}

func TestLogEvents(t *testing.T) {
	logger := &memLogger{}
	l := loop.New()
	s, err := New(l, Options{Logger: logger})
	require.NoError(t, err)
	s.LogEvents()

	l.Emit(raw.Key{Code: 65})
	l.Emit(raw.Button{Code: 1, ClientX: 3, ClientY: 4})
	l.Emit(raw.Wheel{DY: 120, D: 120})

	assert.Contains(t, logger.lines, "debug: keyboard: down A (65)")
	assert.Contains(t, logger.lines, "debug: mouse: down left at 3,4")
	assert.Contains(t, logger.lines, "debug: mouse: wheel 120")
}

func TestPointerLockWithoutLocker(t *testing.T) {
	l := loop.New()
	s, err := New(l, Options{PointerLock: true})
	require.NoError(t, err)

	var failed bool
	s.Mouse.Subscribe(input.PointerLock, func(_ *input.Mouse, ev input.MouseEvent) {
		failed = ev.Failed
	})
	l.Emit(raw.Button{Code: 1})

	assert.True(t, failed)
	assert.False(t, s.Mouse.PointerLocked())
}
