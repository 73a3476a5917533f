package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = []byte("recorded input")

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		name := filepath.Join(dir, "session.rec")
		require.NoError(t, os.WriteFile(name, payload, 0o644))

		data, err := LoadFile(name)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("gzip", func(t *testing.T) {
		var b bytes.Buffer
		zw := gzip.NewWriter(&b)
		_, err := zw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		name := filepath.Join(dir, "session.rec.gz")
		require.NoError(t, os.WriteFile(name, b.Bytes(), 0o644))

		data, err := LoadFile(name)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("zip", func(t *testing.T) {
		var b bytes.Buffer
		zw := zip.NewWriter(&b)
		w, err := zw.Create("session.rec")
		require.NoError(t, err)
		_, err = w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		name := filepath.Join(dir, "session.ZIP")
		require.NoError(t, os.WriteFile(name, b.Bytes(), 0o644))

		data, err := LoadFile(name)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("empty zip", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, zip.NewWriter(&b).Close())

		name := filepath.Join(dir, "empty.zip")
		require.NoError(t, os.WriteFile(name, b.Bytes(), 0o644))

		_, err := LoadFile(name)
		assert.True(t, errors.Is(err, ErrEmptyArchive))
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		name := filepath.Join(dir, "bad.gz")
		require.NoError(t, os.WriteFile(name, payload, 0o644))

		_, err := LoadFile(name)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.rec"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))

	name, err := SaveImage(img, filepath.Join(t.TempDir(), "plot"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}

func TestFileFilter(t *testing.T) {
	name, exts := fileFilter("Open recording", nil)
	assert.Equal(t, "Recordings", name)
	assert.Equal(t, RecordingExtensions, exts)

	name, exts = fileFilter("Images", []string{".PNG", "jpg", ""})
	assert.Equal(t, "Images", name)
	assert.Equal(t, []string{"png", "jpg"}, exts)
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 3, 5)))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}
