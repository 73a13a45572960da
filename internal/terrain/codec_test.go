package terrain

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

func randomGrid(t *testing.T, rng *rand.Rand, w, d int, spacing float32) *Grid {
	t.Helper()
	hs := make([]float32, w*d)
	ns := make([]math.Vec3, w*d)
	for i := range hs {
		hs[i] = rng.Float32()*1000 - 500
		ns[i] = math.Vec3{
			X: rng.Float32()*2 - 1,
			Y: rng.Float32() + 0.1,
			Z: rng.Float32()*2 - 1,
		}.Normalize()
	}
	g, err := NewGrid(w, d, spacing, hs, ns)
	require.NoError(t, err)
	return g
}

func TestEncodeDecodeGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := []struct {
		w, d    int
		spacing float32
	}{
		{2, 2, 1},
		{3, 7, 30},
		{9, 4, 0.125},
		{16, 16, 12.345},
	}

	for _, s := range sizes {
		g := randomGrid(t, rng, s.w, s.d, s.spacing)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, g, nil))
		// header + heights + normals + blob length
		assert.Equal(t, 12+s.w*s.d*4+s.w*s.d*12+4, buf.Len())

		got, mesh, err := Decode(&buf)
		require.NoError(t, err)
		assert.Nil(t, mesh)
		assert.Equal(t, g, got)
	}
}

func TestEncodeLayout(t *testing.T) {
	g := flatNormalGrid(t, [][]float32{{1, 2}, {3, 4}}, 10)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, nil))
	b := buf.Bytes()

	// Heights follow x outer, z inner: h(0,0) h(0,1) h(1,0) h(1,1).
	want := []byte{
		0x00, 0x00, 0x20, 0x41, // 10
		0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3f, // 1
		0x00, 0x00, 0x00, 0x40, // 2
		0x00, 0x00, 0x40, 0x40, // 3
		0x00, 0x00, 0x80, 0x40, // 4
	}
	assert.Equal(t, want, b[:len(want)])
}

func TestEncodeDecodeWithMesh(t *testing.T) {
	src := heightmap.NewNoise(heightmap.NoiseConfig{Width: 8, Depth: 6, Seed: 3})
	mesh, grid, err := Build(src, DefaultOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "terrain.bin")
	require.NoError(t, WriteFile(path, grid, mesh))

	gotGrid, gotMesh, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, grid, gotGrid)
	require.NotNil(t, gotMesh)
	assert.Equal(t, mesh, gotMesh)
}

func TestDecodeTruncated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := randomGrid(t, rng, 3, 3, 5)
	mesh, _, err := Build(heightmap.Flat(3, 3, 0.5), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, mesh))
	full := buf.Bytes()

	for _, n := range []int{0, 3, 12, 20, 12 + 36, 12 + 36 + 108, len(full) - 1} {
		_, _, err := Decode(bytes.NewReader(full[:n]))
		assert.ErrorIs(t, err, ErrTruncatedData, "cut at %d of %d", n, len(full))
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"one column", []byte{0, 0, 0x80, 0x3f, 1, 0, 0, 0, 2, 0, 0, 0}},
		{"negative depth", []byte{0, 0, 0x80, 0x3f, 2, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}},
		{"too many samples", []byte{0, 0, 0x80, 0x3f, 0, 0, 1, 0, 0, 0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGridSizeLimit(t *testing.T) {
	tests := []struct {
		w, d int
		ok   bool
	}{
		{8192, 8192, true},
		{8193, 8192, false},
		{MaxSamples / 2, 2, true},
		{MaxSamples/2 + 1, 2, false},
		{2, MaxSamples/2 + 1, false},
	}

	for _, tt := range tests {
		err := checkDimensions(tt.w, tt.d)
		if tt.ok {
			assert.NoError(t, err, "%dx%d", tt.w, tt.d)
		} else {
			assert.ErrorIs(t, err, ErrInvalidInput, "%dx%d", tt.w, tt.d)
		}
	}
}

func TestEncodeDecodeLongGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, size := range [][2]int{{4097, 2}, {2, 5000}} {
		g := randomGrid(t, rng, size[0], size[1], 30)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, g, nil))
		got, _, err := Decode(&buf)
		require.NoError(t, err, "%dx%d", size[0], size[1])
		assert.Equal(t, g.heights, got.heights)
	}
}

func TestDecodeRejectsHeaderPastLimit(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range []any{float32(1), int32(8193), int32(8192)} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
	}

	_, _, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeMeshRejectsGarbage(t *testing.T) {
	_, err := DecodeMesh([]byte("not a zstd frame"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
