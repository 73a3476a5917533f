//go:build !test

package utils

import (
	"errors"

	"github.com/sqweek/dialog"
)

// AskForFile shows a file open dialog and returns the chosen path. Without
// extensions the dialog offers recordings. Dismissing the dialog returns
// ErrCancelled.
func AskForFile(title, startingDir string, extensions ...string) (string, error) {
	name, extensions := fileFilter(title, extensions)
	path, err := dialog.File().
		SetStartDir(startingDir).
		Title(title).
		Filter(name, extensions...).
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	return path, err
}
