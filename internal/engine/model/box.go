package model

import (
	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/pkg/math"
)

// boxFaces lists each face as its outward normal and four corner indices
// (see Part.Corners) in counter-clockwise order seen from outside.
var boxFaces = [6]struct {
	normal  math.Vec3
	corners [4]int
}{
	{math.Vec3{X: 1}, [4]int{1, 3, 7, 5}},
	{math.Vec3{X: -1}, [4]int{0, 4, 6, 2}},
	{math.Vec3{Y: 1}, [4]int{2, 6, 7, 3}},
	{math.Vec3{Y: -1}, [4]int{0, 1, 5, 4}},
	{math.Vec3{Z: 1}, [4]int{4, 5, 7, 6}},
	{math.Vec3{Z: -1}, [4]int{0, 2, 3, 1}},
}

// BoxMesh returns 24 flat-shaded vertices and 36 indices for the part's box,
// in the same vertex layout as the terrain.
func BoxMesh(p Part) ([]terrain.Vertex, []uint32) {
	corners := p.Corners()
	vertices := make([]terrain.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for i, ci := range f.corners {
			vertices = append(vertices, terrain.Vertex{
				Position: corners[ci].Array(),
				Normal:   f.normal.Array(),
				TexCoord: uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}
