package terrain

import (
	"fmt"
	gomath "math"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

// corner is one triangle corner before duplicate vertices are merged.
type corner struct {
	position uint32
	texCoord [2]float32
}

// meshBuilder accumulates positions and triangle corners.
type meshBuilder struct {
	positions []math.Vec3
	corners   []corner
	material  Material
}

func (b *meshBuilder) addCorner(position int, texCoord [2]float32) {
	b.corners = append(b.corners, corner{position: uint32(position), texCoord: texCoord})
}

// Build converts a height source into a render mesh and the height grid
// extracted from it.
func Build(src heightmap.Source, opts Options) (*Mesh, *Grid, error) {
	width, depth := src.Size()
	if err := checkDimensions(width, depth); err != nil {
		return nil, nil, fmt.Errorf("height source: %w", err)
	}
	if !(opts.CellSpacing > 0) {
		return nil, nil, fmt.Errorf("%w: cell spacing %v must be positive", ErrInvalidInput, opts.CellSpacing)
	}

	b := &meshBuilder{
		positions: make([]math.Vec3, 0, width*depth),
		corners:   make([]corner, 0, (width-1)*(depth-1)*6),
	}

	// Vertices, centered so the heightfield sits around x=0,z=0.
	// Sample 1 maps to height 0 and sample 0 to -Amplitude.
	halfW := float32(width-1) / 2
	halfD := float32(depth-1) / 2
	for z := range depth {
		for x := range width {
			b.positions = append(b.positions, math.Vec3{
				X: (float32(x) - halfW) * opts.CellSpacing,
				Y: (src.At(x, z) - 1) * opts.Amplitude,
				Z: (float32(z) - halfD) * opts.CellSpacing,
			})
		}
	}

	b.material = Material{SpecularColor: DefaultSpecular}
	if opts.TextureName != "" {
		b.material.Texture = resolveTexture(src, opts.TextureName)
	}

	// Two triangles per cell. Texture coordinates depend only on the sample,
	// so they tile continuously across cells.
	add := func(x, z int) {
		b.addCorner(x+z*width, [2]float32{float32(x) * opts.TexCoordScale, float32(z) * opts.TexCoordScale})
	}
	for z := range depth - 1 {
		for x := range width - 1 {
			add(x, z)
			add(x+1, z)
			add(x+1, z+1)

			add(x, z)
			add(x+1, z+1)
			add(x, z+1)
		}
	}

	mesh := finishMesh(b.positions, b.corners, b.material)

	grid, err := gridFromMesh(mesh, width, depth, opts.CellSpacing)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Named("terrain")
	lo, hi := grid.HeightRange()
	log.Info("terrain built",
		zap.Int("width", width),
		zap.Int("depth", depth),
		zap.Float32("cell_spacing", opts.CellSpacing),
		zap.Float32("min_height", lo),
		zap.Float32("max_height", hi),
		zap.Int("triangles", mesh.TriangleCount()))
	log.Debug("mesh merged",
		zap.Int("corners", len(b.corners)),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.String("texture", mesh.Material.Texture))
	return mesh, grid, nil
}

// resolveTexture places the texture next to the height source file when the
// source knows where it was read from.
func resolveTexture(src heightmap.Source, name string) string {
	if loc, ok := src.(heightmap.Locator); ok && loc.Location() != "" {
		return filepath.Join(filepath.Dir(loc.Location()), name)
	}
	return name
}

// finishMesh merges corners that share a position and texture coordinate into
// single vertices and gives every vertex the normalized sum of the face
// normals around its position.
func finishMesh(positions []math.Vec3, corners []corner, material Material) *Mesh {
	// Face normals accumulated per position, area weighted.
	sums := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(corners); i += 3 {
		p0 := positions[corners[i].position]
		p1 := positions[corners[i+1].position]
		p2 := positions[corners[i+2].position]
		n := p2.Sub(p0).Cross(p1.Sub(p0))
		for _, c := range corners[i : i+3] {
			sums[c.position] = sums[c.position].Add(n)
		}
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, 0, len(positions)),
		Indices:  make([]uint32, 0, len(corners)),
		Material: material,
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	merged := make(map[corner]uint32, len(positions))
	for _, c := range corners {
		idx, ok := merged[c]
		if !ok {
			pos := positions[c.position]
			normal := sums[c.position].Normalize()
			if normal == (math.Vec3{}) {
				normal = math.UnitY
			}
			idx = uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos.Array(),
				Normal:   normal.Array(),
				TexCoord: c.texCoord,
			})
			merged[c] = idx
			updateBounds(&mesh.Bounds, pos.Array())
		}
		mesh.Indices = append(mesh.Indices, idx)
	}

	return mesh
}

// gridFromMesh maps each finished vertex back to its sample coordinates so the
// grid carries the averaged normals rather than raw face normals.
func gridFromMesh(mesh *Mesh, width, depth int, spacing float32) (*Grid, error) {
	heights := make([]float32, width*depth)
	normals := make([]math.Vec3, width*depth)
	filled := make([]bool, width*depth)

	halfW := float64(width-1) / 2
	halfD := float64(depth-1) / 2
	for i, v := range mesh.Vertices {
		x := int(gomath.Round(float64(v.Position[0]/spacing) + halfW))
		z := int(gomath.Round(float64(v.Position[2]/spacing) + halfD))
		if x < 0 || z < 0 || x >= width || z >= depth {
			return nil, fmt.Errorf("%w: vertex %d at %v maps outside the grid", ErrInvalidInput, i, v.Position)
		}
		idx := x*depth + z
		heights[idx] = v.Position[1]
		normals[idx] = math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		filled[idx] = true
	}
	for i, ok := range filled {
		if !ok {
			return nil, fmt.Errorf("%w: sample (%d,%d) has no vertex", ErrInvalidInput, i/depth, i%depth)
		}
	}

	return NewGrid(width, depth, spacing, heights, normals)
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
