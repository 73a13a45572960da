package terrain

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/terradrive/pkg/math"
)

// normalTolerance is how far a stored normal's length may drift from 1.
const normalTolerance = 1e-3

// MaxSamples bounds width*depth. Grids past it can be neither built, decoded
// nor persisted, so every grid that exists round-trips through Encode.
const MaxSamples = 1 << 26

// checkDimensions validates a grid size before anything is allocated.
func checkDimensions(width, depth int) error {
	if width < 2 || depth < 2 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 2x2", ErrInvalidInput, width, depth)
	}
	if width > MaxSamples/depth {
		return fmt.Errorf("%w: grid %dx%d exceeds %d samples", ErrInvalidInput, width, depth, MaxSamples)
	}
	return nil
}

// Grid is the immutable height grid queried at runtime. Samples are stored
// x-major (index x*depth+z), the same order they are persisted in.
type Grid struct {
	width   int
	depth   int
	spacing float32
	heights []float32
	normals []math.Vec3
	origin  math.Vec3
}

// NewGrid validates and wraps height and normal samples. The slices are owned
// by the grid afterwards.
func NewGrid(width, depth int, spacing float32, heights []float32, normals []math.Vec3) (*Grid, error) {
	if err := checkDimensions(width, depth); err != nil {
		return nil, err
	}
	if !(spacing > 0) || gomath.IsInf(float64(spacing), 0) {
		return nil, fmt.Errorf("%w: cell spacing %v must be positive", ErrInvalidInput, spacing)
	}
	n := width * depth
	if len(heights) != n || len(normals) != n {
		return nil, fmt.Errorf("%w: expected %d samples, got %d heights and %d normals",
			ErrInvalidInput, n, len(heights), len(normals))
	}
	for i, nrm := range normals {
		if l := nrm.Length(); math.Abs(l-1) > normalTolerance {
			return nil, fmt.Errorf("%w: normal %d (%d,%d) has length %v",
				ErrInvalidInput, i, i/depth, i%depth, l)
		}
	}

	return &Grid{
		width:   width,
		depth:   depth,
		spacing: spacing,
		heights: heights,
		normals: normals,
		origin: math.Vec3{
			X: -float32(width-1) / 2 * spacing,
			Z: -float32(depth-1) / 2 * spacing,
		},
	}, nil
}

// Width returns the number of samples along X.
func (g *Grid) Width() int { return g.width }

// Depth returns the number of samples along Z.
func (g *Grid) Depth() int { return g.depth }

// Spacing returns the world distance between adjacent samples.
func (g *Grid) Spacing() float32 { return g.spacing }

// Origin returns the world position of sample (0,0); the grid is centered on
// the world origin.
func (g *Grid) Origin() math.Vec3 { return g.origin }

// Extent returns the world size of the grid along X and Z.
func (g *Grid) Extent() (x, z float32) {
	return float32(g.width-1) * g.spacing, float32(g.depth-1) * g.spacing
}

// Height returns the stored height at sample (x, z).
func (g *Grid) Height(x, z int) float32 {
	return g.heights[x*g.depth+z]
}

// Normal returns the stored unit normal at sample (x, z).
func (g *Grid) Normal(x, z int) math.Vec3 {
	return g.normals[x*g.depth+z]
}

// HeightRange returns the lowest and highest stored height.
func (g *Grid) HeightRange() (min, max float32) {
	min, max = g.heights[0], g.heights[0]
	for _, h := range g.heights[1:] {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}
