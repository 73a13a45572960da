package heightmap

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Registered decoders for heightfield images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Image samples a decoded image by 16-bit luminance. Image rows map to Z.
type Image struct {
	img  image.Image
	path string
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Image {
	return &Image{img: img}
}

// LoadImage decodes a heightfield image (PNG, JPEG, GIF or BMP) from disk.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}

	return &Image{img: img, path: path}, nil
}

// Size implements Source.
func (m *Image) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

// At implements Source.
func (m *Image) At(x, z int) float32 {
	b := m.img.Bounds()
	c := m.img.At(b.Min.X+x, b.Min.Y+z)
	g := color.Gray16Model.Convert(c).(color.Gray16)
	return float32(g.Y) / 0xffff
}

// Location implements Locator. It is empty for images not read from disk.
func (m *Image) Location() string {
	return m.path
}
