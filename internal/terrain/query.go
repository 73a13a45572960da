package terrain

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/terradrive/pkg/math"
)

// Engine answers bounds, height and normal queries over a Grid. It never
// mutates the grid, so one engine can serve any number of callers.
type Engine struct {
	grid    *Grid
	extentX float32
	extentZ float32
}

// NewEngine wraps a grid for querying.
func NewEngine(g *Grid) *Engine {
	ex, ez := g.Extent()
	return &Engine{
		grid:    g,
		extentX: ex,
		extentZ: ez,
	}
}

// Grid returns the queried grid.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Contains reports whether p lies strictly inside the grid on X and Z.
// Points exactly on an edge are outside, which keeps the far corners of the
// sampled cell inside the grid.
func (e *Engine) Contains(p math.Vec3) bool {
	local := p.Sub(e.grid.origin)
	return local.X > 0 &&
		local.X < e.extentX &&
		local.Z > 0 &&
		local.Z < e.extentZ
}

// Sample returns the bilinearly interpolated height and unit normal at p.
// It fails with ErrOutOfBounds when Contains(p) is false.
func (e *Engine) Sample(p math.Vec3) (float32, math.Vec3, error) {
	if !e.Contains(p) {
		return 0, math.Vec3{}, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, p.X, p.Z)
	}

	g := e.grid
	local := p.Sub(g.origin)

	// Indices of the lower corner of the cell, and how far into the cell p is.
	left, fracX := cellCoord(local.X, g.spacing, g.width)
	top, fracZ := cellCoord(local.Z, g.spacing, g.depth)

	// Interpolate along X on both rows, then between the rows along Z.
	topHeight := math.Lerp(g.Height(left, top), g.Height(left+1, top), fracX)
	bottomHeight := math.Lerp(g.Height(left, top+1), g.Height(left+1, top+1), fracX)
	height := math.Lerp(topHeight, bottomHeight, fracZ)

	topNormal := g.Normal(left, top).Lerp(g.Normal(left+1, top), fracX)
	bottomNormal := g.Normal(left, top+1).Lerp(g.Normal(left+1, top+1), fracX)
	normal := topNormal.Lerp(bottomNormal, fracZ).Normalize()
	if normal == (math.Vec3{}) {
		normal = math.UnitY
	}

	return height, normal, nil
}

// Height returns only the interpolated height at p.
func (e *Engine) Height(p math.Vec3) (float32, error) {
	h, _, err := e.Sample(p)
	return h, err
}

// cellCoord splits a grid-local coordinate into the lower sample index and
// the fraction [0,1] across the cell. Rounding right at the far edge can put
// the index on the last sample; that is folded back into the last cell.
func cellCoord(local, spacing float32, samples int) (int, float32) {
	f := local / spacing
	idx := int(gomath.Floor(float64(f)))
	frac := f - float32(idx)
	if idx > samples-2 {
		idx = samples - 2
		frac = 1
	}
	if idx < 0 {
		idx = 0
		frac = 0
	}
	return idx, frac
}
