package term

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) ([]int, bool) {
	t.Helper()
	r := bufio.NewReader(strings.NewReader(input))

	var codes []int
	for {
		code, quit, err := readKey(r)
		if errors.Is(err, io.EOF) {
			return codes, false
		}
		require.NoError(t, err)
		if quit {
			return codes, true
		}
		codes = append(codes, code)
	}
}

func TestReadKeys(t *testing.T) {
	codes, quit := readAll(t, "aZ9 ;?\r\t\x7f")
	assert.False(t, quit)
	assert.Equal(t, []int{65, 90, 57, 32, 186, 191, 13, 9, 8}, codes)
}

func TestReadCursorKeys(t *testing.T) {
	codes, _ := readAll(t, "\x1b[A\x1b[B\x1b[C\x1b[D\x1b[H\x1b[F\x1b[3~\x1b[5~")
	assert.Equal(t, []int{38, 40, 39, 37, 36, 35, 46, 33}, codes)
}

func TestReadEscape(t *testing.T) {
	// a trailing escape is the escape key
	codes, _ := readAll(t, "x\x1b")
	assert.Equal(t, []int{88, 27}, codes)

	// alt+q arrives as escape then q
	codes, _ = readAll(t, "\x1bq")
	assert.Equal(t, []int{27, 81}, codes)

	// unknown sequences map to nothing
	codes, _ = readAll(t, "\x1b[Z")
	assert.Equal(t, []int{0}, codes)
}

func TestCtrlCQuits(t *testing.T) {
	codes, quit := readAll(t, "ab\x03c")
	assert.True(t, quit)
	assert.Equal(t, []int{65, 66}, codes)
}
