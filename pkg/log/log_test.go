package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugLogger(t *testing.T) {
	var b strings.Builder
	l := NewDebug(&b)

	l.Infof("keyboard: %s", "enabled")
	l.Debugf("mouse: %d", 3)
	l.Errorf("touch: %v", "boom")

	assert.Equal(t, "[INFO]\tkeyboard: enabled\n[DEBUG]\tmouse: 3\n[ERROR]\ttouch: boom\n", b.String())
}

func TestDebugSuppressed(t *testing.T) {
	var b strings.Builder
	l := &logger{out: &b}

	l.Debugf("hidden")
	l.Infof("shown")

	assert.Equal(t, "[INFO]\tshown\n", b.String())
}
