package terrain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// meshMagic tags the decompressed mesh payload.
var meshMagic = [4]byte{'T', 'M', 'S', 'H'}

// Mesh element limits. A grid of MaxSamples samples yields at most that many
// vertices and six indices per cell.
const (
	maxMeshVertices = MaxSamples
	maxMeshIndices  = 6 * MaxSamples
	maxTextureBytes = 4096
)

// EncodeMesh serializes a render mesh into the compressed blob embedded in
// persisted terrains.
func EncodeMesh(m *Mesh) ([]byte, error) {
	switch {
	case len(m.Vertices) > maxMeshVertices:
		return nil, fmt.Errorf("%w: mesh has %d vertices", ErrInvalidInput, len(m.Vertices))
	case len(m.Indices) > maxMeshIndices:
		return nil, fmt.Errorf("%w: mesh has %d indices", ErrInvalidInput, len(m.Indices))
	case len(m.Material.Texture) > maxTextureBytes:
		return nil, fmt.Errorf("%w: texture path of %d bytes", ErrInvalidInput, len(m.Material.Texture))
	}

	var buf bytes.Buffer
	fields := []any{
		meshMagic,
		m.Material.SpecularColor,
		int32(len(m.Material.Texture)),
		[]byte(m.Material.Texture),
		m.Bounds,
		int32(len(m.Vertices)),
		m.Vertices,
		int32(len(m.Indices)),
		m.Indices,
	}
	for _, f := range fields {
		if err := binary.Write(&buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("encoding mesh: %w", err)
		}
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating mesh encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// DecodeMesh reverses EncodeMesh.
func DecodeMesh(blob []byte) (*Mesh, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("creating mesh decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing mesh: %v", ErrInvalidInput, err)
	}
	r := bytes.NewReader(raw)

	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, truncated("mesh magic", err)
	}
	if magic != meshMagic {
		return nil, fmt.Errorf("%w: bad mesh magic %q", ErrInvalidInput, magic[:])
	}

	m := &Mesh{}
	if err := binary.Read(r, binary.LittleEndian, &m.Material.SpecularColor); err != nil {
		return nil, truncated("mesh material", err)
	}
	texture, err := readBytes(r, "mesh texture", maxTextureBytes)
	if err != nil {
		return nil, err
	}
	m.Material.Texture = string(texture)

	if err := binary.Read(r, binary.LittleEndian, &m.Bounds); err != nil {
		return nil, truncated("mesh bounds", err)
	}

	count, err := readCount(r, "mesh vertex count", maxMeshVertices)
	if err != nil {
		return nil, err
	}
	m.Vertices = make([]Vertex, count)
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, truncated("mesh vertices", err)
	}

	count, err = readCount(r, "mesh index count", maxMeshIndices)
	if err != nil {
		return nil, err
	}
	m.Indices = make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, truncated("mesh indices", err)
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return nil, fmt.Errorf("%w: index %d references vertex %d of %d",
				ErrInvalidInput, i, idx, len(m.Vertices))
		}
	}

	return m, nil
}

func readCount(r io.Reader, what string, limit int) (int, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, truncated(what, err)
	}
	if n < 0 || int(n) > limit {
		return 0, fmt.Errorf("%w: %s %d", ErrInvalidInput, what, n)
	}
	return int(n), nil
}

func readBytes(r io.Reader, what string, limit int) ([]byte, error) {
	n, err := readCount(r, what, limit)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, truncated(what, err)
	}
	return b, nil
}
