// Package assets resolves question images and answer sheets from disk.
// A missing or unreadable file degrades to a built-in placeholder so a
// half-populated question bank never takes the app down.
package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Library serves image files rooted at a single directory.
type Library struct {
	dir    string
	logger *slog.Logger
}

func NewLibrary(dir string, logger *slog.Logger) *Library {
	return &Library{dir: dir, logger: logger}
}

var (
	placeholderOnce sync.Once
	placeholderPNG  []byte
)

// Placeholder returns the stand-in image used when an asset cannot be
// read, encoded once and cached.
func Placeholder() []byte {
	placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, 320, 240))
		grey := color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
		for y := 0; y < 240; y++ {
			for x := 0; x < 320; x++ {
				img.Set(x, y, grey)
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			panic(err)
		}
		placeholderPNG = buf.Bytes()
	})
	return placeholderPNG
}

// Open reads the named asset. Any failure, including an attempted path
// escape, logs a warning and yields the placeholder instead of an error.
func (l *Library) Open(name string) (data []byte, contentType string) {
	cleaned := filepath.Clean("/" + name)
	path := filepath.Join(l.dir, cleaned)

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("asset unavailable, using placeholder", "asset", name, "error", err)
		return Placeholder(), "image/png"
	}
	return data, contentTypeFor(path)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
