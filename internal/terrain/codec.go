package terrain

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"

	"github.com/Faultbox/terradrive/pkg/math"
)

// maxModelBytes is the largest blob the int32 length field can describe.
const maxModelBytes = gomath.MaxInt32

// Encode writes a grid and its optional render mesh in the persisted layout:
//
//	float32          cell spacing
//	int32            width
//	int32            depth
//	float32[w*d]     heights, x outer / z inner
//	Vec3[w*d]        normals, same order
//	int32 + bytes    embedded model blob (0 when mesh is nil)
func Encode(w io.Writer, g *Grid, mesh *Mesh) error {
	var model []byte
	if mesh != nil {
		var err error
		if model, err = EncodeMesh(mesh); err != nil {
			return err
		}
		if len(model) > maxModelBytes {
			return fmt.Errorf("%w: model blob of %d bytes", ErrInvalidInput, len(model))
		}
	}

	bw := bufio.NewWriter(w)
	fields := []any{
		g.spacing,
		int32(g.width),
		int32(g.depth),
		g.heights,
		g.normals,
		int32(len(model)),
	}
	for _, f := range fields {
		if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("writing terrain: %w", err)
		}
	}
	if _, err := bw.Write(model); err != nil {
		return fmt.Errorf("writing terrain model: %w", err)
	}
	return bw.Flush()
}

// Decode reads a terrain written by Encode. The mesh is nil when none was
// embedded.
func Decode(r io.Reader) (*Grid, *Mesh, error) {
	br := bufio.NewReader(r)

	var header struct {
		Spacing float32
		Width   int32
		Depth   int32
	}
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, nil, truncated("header", err)
	}
	if err := checkDimensions(int(header.Width), int(header.Depth)); err != nil {
		return nil, nil, err
	}

	n := int(header.Width) * int(header.Depth)
	heights := make([]float32, n)
	if err := binary.Read(br, binary.LittleEndian, heights); err != nil {
		return nil, nil, truncated("heights", err)
	}
	normals := make([]math.Vec3, n)
	if err := binary.Read(br, binary.LittleEndian, normals); err != nil {
		return nil, nil, truncated("normals", err)
	}

	grid, err := NewGrid(int(header.Width), int(header.Depth), header.Spacing, heights, normals)
	if err != nil {
		return nil, nil, err
	}

	var modelLen int32
	if err := binary.Read(br, binary.LittleEndian, &modelLen); err != nil {
		return nil, nil, truncated("model length", err)
	}
	if modelLen < 0 {
		return nil, nil, fmt.Errorf("%w: model length %d", ErrInvalidInput, modelLen)
	}
	if modelLen == 0 {
		return grid, nil, nil
	}

	model := make([]byte, modelLen)
	if _, err := io.ReadFull(br, model); err != nil {
		return nil, nil, truncated("model", err)
	}
	mesh, err := DecodeMesh(model)
	if err != nil {
		return nil, nil, err
	}
	return grid, mesh, nil
}

// WriteFile encodes a terrain to path.
func WriteFile(path string, g *Grid, mesh *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating terrain file: %w", err)
	}
	if err := Encode(f, g, mesh); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes a terrain from path.
func ReadFile(path string) (*Grid, *Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening terrain file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func truncated(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedData, what)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}
