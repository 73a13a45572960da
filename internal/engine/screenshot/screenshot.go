// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelCount reports a pixel buffer that does not match its dimensions.
var ErrPixelCount = errors.New("pixel data size mismatch")

// FromGL converts bottom-up RGBA rows, as read back from OpenGL, into an
// image with the origin at the top-left.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrPixelCount, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Recorder writes numbered PNGs into a directory.
type Recorder struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewRecorder creates a recorder writing into dir. The directory is created
// on the first save.
func NewRecorder(dir, prefix string) *Recorder {
	return &Recorder{dir: dir, prefix: prefix, now: time.Now}
}

// Save encodes img and returns the written path.
func (r *Recorder) Save(img image.Image) (string, error) {
	if r.dir != "" {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	name := fmt.Sprintf("%s_%s.png", r.prefix, r.now().Format("2006-01-02_15-04-05.000"))
	path := filepath.Join(r.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, f.Close()
}
