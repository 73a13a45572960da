// Package heightmap provides height-sample sources for the terrain builder.
//
// A source is a W×H grid of samples in [0,1]. Sample value 1 is the top of the
// terrain and 0 the bottom; the builder maps them into world heights.
package heightmap

// Source is a rectangular grid of height samples.
type Source interface {
	// Size returns the number of samples along X and Z.
	Size() (width, depth int)
	// At returns the sample at integer coordinates (x, z), in [0,1].
	At(x, z int) float32
}

// Locator is implemented by sources that were read from a file, so that
// resources referenced by the terrain can be resolved next to it.
type Locator interface {
	Location() string
}

// Grid is an in-memory source with samples stored x-major: Samples[x*Depth+z].
type Grid struct {
	Width   int
	Depth   int
	Samples []float32
}

// NewGrid allocates a zeroed grid source. Negative sizes count as zero, which
// consumers reject as too small.
func NewGrid(width, depth int) *Grid {
	width, depth = max(width, 0), max(depth, 0)
	return &Grid{
		Width:   width,
		Depth:   depth,
		Samples: make([]float32, width*depth),
	}
}

// FromRows builds a grid from rows[x][z]. Every row must have the same length.
func FromRows(rows [][]float32) *Grid {
	if len(rows) == 0 {
		return &Grid{}
	}
	g := NewGrid(len(rows), len(rows[0]))
	for x, row := range rows {
		for z, v := range row {
			g.Set(x, z, v)
		}
	}
	return g
}

// Size implements Source.
func (g *Grid) Size() (int, int) {
	return g.Width, g.Depth
}

// At implements Source.
func (g *Grid) At(x, z int) float32 {
	return g.Samples[x*g.Depth+z]
}

// Set stores a sample.
func (g *Grid) Set(x, z int, v float32) {
	g.Samples[x*g.Depth+z] = v
}

// Flat returns a source where every sample equals v.
func Flat(width, depth int, v float32) *Grid {
	g := NewGrid(width, depth)
	for i := range g.Samples {
		g.Samples[i] = v
	}
	return g
}

// Range returns the minimum and maximum sample of src.
func Range(src Source) (min, max float32) {
	w, d := src.Size()
	if w == 0 || d == 0 {
		return 0, 0
	}
	min = src.At(0, 0)
	max = min
	for x := range w {
		for z := range d {
			v := src.At(x, z)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
