package utils

import (
	"image"
	"os"
	"strings"
)

// SaveImage writes img to filename as a PNG, adding the .png extension if
// it is missing.
func SaveImage(img image.Image, filename string) (string, error) {
	// does file have a .png extension?
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return filename, os.WriteFile(filename, data, 0o644)
}
