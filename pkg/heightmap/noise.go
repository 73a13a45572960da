package heightmap

import (
	"github.com/aquilax/go-perlin"
)

// Noise parameters.
const (
	DefaultNoiseAlpha     = 2.0
	DefaultNoiseBeta      = 2.0
	DefaultNoiseOctaves   = 3
	DefaultNoiseFrequency = 0.02
)

// Noise is a procedural source backed by Perlin noise. Samples are computed
// once at construction so At is a plain lookup.
type Noise struct {
	grid *Grid
}

// NoiseConfig controls procedural generation.
type NoiseConfig struct {
	Width     int
	Depth     int
	Seed      int64
	Frequency float64 // noise units per sample
	Octaves   int32
}

// NewNoise generates a width×depth source from the given configuration.
func NewNoise(cfg NoiseConfig) *Noise {
	if cfg.Frequency <= 0 {
		cfg.Frequency = DefaultNoiseFrequency
	}
	if cfg.Octaves <= 0 {
		cfg.Octaves = DefaultNoiseOctaves
	}

	p := perlin.NewPerlin(DefaultNoiseAlpha, DefaultNoiseBeta, cfg.Octaves, cfg.Seed)

	g := NewGrid(cfg.Width, cfg.Depth)
	for x := range cfg.Width {
		for z := range cfg.Depth {
			// Noise2D returns roughly [-1,1]; remap to [0,1]
			n := p.Noise2D(float64(x)*cfg.Frequency, float64(z)*cfg.Frequency)
			g.Set(x, z, clamp01(float32((n+1)/2)))
		}
	}
	return &Noise{grid: g}
}

// Size implements Source.
func (n *Noise) Size() (int, int) {
	return n.grid.Size()
}

// At implements Source.
func (n *Noise) At(x, z int) float32 {
	return n.grid.At(x, z)
}
