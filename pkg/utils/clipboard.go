package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

// ErrNoClipboard is returned when the system clipboard cannot be reached,
// e.g. on a headless machine.
var ErrNoClipboard = errors.New("clipboard unavailable")

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// openClipboard initializes the clipboard package on first use.
func openClipboard() error {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		return fmt.Errorf("%w: %v", ErrNoClipboard, clipboardErr)
	}
	return nil
}

// EncodePNG returns img encoded as a PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// CopyImage places img on the system clipboard as a PNG.
func CopyImage(img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := openClipboard(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
