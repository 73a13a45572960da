// Package terrain builds heightfield terrain meshes and answers height and
// normal queries over the resulting height grid.
package terrain

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material describes how the renderer shades the terrain.
type Material struct {
	SpecularColor [3]float32
	Texture       string // path of the diffuse texture, empty for untextured
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material Material
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Options controls how height samples become terrain geometry.
type Options struct {
	// CellSpacing is the world distance between adjacent samples.
	CellSpacing float32 `yaml:"cell_spacing"`
	// Amplitude scales samples into heights between -Amplitude and 0.
	Amplitude float32 `yaml:"amplitude"`
	// TexCoordScale controls how often the texture repeats across the terrain.
	TexCoordScale float32 `yaml:"tex_coord_scale"`
	// TextureName is resolved next to the height source. Empty disables texturing.
	TextureName string `yaml:"texture_name"`
}

// Default build parameters.
const (
	DefaultCellSpacing   = 30.0
	DefaultAmplitude     = 640.0
	DefaultTexCoordScale = 0.1
	DefaultTextureName   = "rocks.bmp"
)

// DefaultSpecular is the fixed specular tint of the terrain material.
var DefaultSpecular = [3]float32{0.4, 0.4, 0.4}

// DefaultOptions returns the standard build parameters.
func DefaultOptions() Options {
	return Options{
		CellSpacing:   DefaultCellSpacing,
		Amplitude:     DefaultAmplitude,
		TexCoordScale: DefaultTexCoordScale,
		TextureName:   DefaultTextureName,
	}
}
