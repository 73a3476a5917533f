package utils

import (
	"errors"
	"strings"
)

// ErrCancelled is returned when the user dismisses a file dialog.
var ErrCancelled = errors.New("file selection cancelled")

// RecordingExtensions are the files LoadFile can read a recording from.
var RecordingExtensions = []string{"rec", "gz", "zip", "7z"}

// fileFilter names the dialog filter and normalises its extensions,
// defaulting to RecordingExtensions.
func fileFilter(title string, extensions []string) (string, []string) {
	if len(extensions) == 0 {
		return "Recordings", RecordingExtensions
	}
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext = strings.TrimPrefix(strings.ToLower(ext), "."); ext != "" {
			out = append(out, ext)
		}
	}
	return title, out
}
