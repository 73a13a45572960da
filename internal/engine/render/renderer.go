// Package render draws the terrain and box models with OpenGL.
package render

import (
	"fmt"
	"image"
	"image/color"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/engine/model"
	"github.com/Faultbox/terradrive/internal/engine/shader"
	"github.com/Faultbox/terradrive/internal/engine/texture"
	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/pkg/math"
)

// Light is the scene's directional light.
type Light struct {
	Direction math.Vec3
	Ambient   math.Vec3
	Diffuse   math.Vec3
}

// Fog fades distant geometry into Color between Near and Far.
type Fog struct {
	Color     math.Vec3
	Near, Far float32
}

// Frame holds the parameters shared by every draw in a frame.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Light      Light
	Fog        Fog
}

// SunDirection returns the direction sunlight travels for a sun at the given
// longitude (degrees around Y) and latitude (degrees above the horizon).
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(longitude) * gomath.Pi / 180
	lat := float64(latitude) * gomath.Pi / 180
	toSun := math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
	return toSun.Negate()
}

// DefaultLight is a low afternoon sun.
func DefaultLight() Light {
	return Light{
		Direction: SunDirection(50, 55),
		Ambient:   math.Vec3{X: 0.35, Y: 0.35, Z: 0.4},
		Diffuse:   math.Vec3{X: 0.8, Y: 0.78, Z: 0.7},
	}
}

// drawParams is set in full before every draw call.
type drawParams struct {
	model    math.Mat4
	color    math.Vec3
	specular math.Vec3
	texture  uint32 // 0 draws untextured
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func upload(vertices []terrain.Vertex, indices []uint32) gpuMesh {
	var m gpuMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	m.count = int32(len(indices))
	return m
}

func (m *gpuMesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

// Model is a model uploaded for drawing.
type Model struct {
	parts  []gpuMesh
	colors []math.Vec3
}

// Renderer owns the GPU resources of the scene.
type Renderer struct {
	program *shader.Program
	log     *zap.Logger

	terrain         gpuMesh
	terrainTexture  uint32
	terrainSpecular math.Vec3

	models []*Model
}

// New initializes OpenGL bindings and compiles the scene shader. A GL
// context must be current.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	program, err := shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}

	r := &Renderer{
		program: program,
		log:     logger.Named("render"),
	}
	r.log.Info("renderer ready", zap.String("gl_version", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.MULTISAMPLE)
	return r, nil
}

// LoadTerrain uploads the terrain mesh and its texture. A texture that fails
// to load is replaced with a checkerboard.
func (r *Renderer) LoadTerrain(mesh *terrain.Mesh) {
	r.terrain.release()
	if r.terrainTexture != 0 {
		gl.DeleteTextures(1, &r.terrainTexture)
		r.terrainTexture = 0
	}

	r.terrain = upload(mesh.Vertices, mesh.Indices)
	r.terrainSpecular = math.Vec3{X: mesh.Material.SpecularColor[0], Y: mesh.Material.SpecularColor[1], Z: mesh.Material.SpecularColor[2]}

	if mesh.Material.Texture == "" {
		return
	}
	img, err := texture.Load(mesh.Material.Texture)
	if err != nil {
		r.log.Warn("terrain texture unavailable, using checkerboard",
			zap.String("path", mesh.Material.Texture), zap.Error(err))
		img = texture.Checker(64, 8,
			color.RGBA{R: 150, G: 140, B: 120, A: 255},
			color.RGBA{R: 120, G: 112, B: 96, A: 255})
	}
	r.terrainTexture = uploadTexture(img)

	r.log.Info("terrain uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()))
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	return texID
}

// LoadModel uploads one box mesh per part.
func (r *Renderer) LoadModel(m *model.Model) *Model {
	gm := &Model{
		parts:  make([]gpuMesh, len(m.Parts)),
		colors: make([]math.Vec3, len(m.Parts)),
	}
	for i, p := range m.Parts {
		vertices, indices := model.BoxMesh(p)
		gm.parts[i] = upload(vertices, indices)
		gm.colors[i] = p.Color
	}
	r.models = append(r.models, gm)
	return gm
}

// BeginFrame clears the screen and binds the per-frame parameters.
func (r *Renderer) BeginFrame(f Frame, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(f.Fog.Color.X, f.Fog.Color.Y, f.Fog.Color.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uEye", f.Eye)
	p.SetVec3("uLightDir", f.Light.Direction)
	p.SetVec3("uAmbient", f.Light.Ambient)
	p.SetVec3("uDiffuse", f.Light.Diffuse)
	p.SetVec3("uFogColor", f.Fog.Color)
	p.SetFloat("uFogNear", f.Fog.Near)
	p.SetFloat("uFogFar", f.Fog.Far)
	p.SetInt("uTexture", 0)
}

// DrawTerrain draws the loaded terrain.
func (r *Renderer) DrawTerrain() {
	if r.terrain.vao == 0 {
		return
	}
	r.draw(r.terrain, drawParams{
		model:    math.Identity(),
		color:    math.Vec3{X: 1, Y: 1, Z: 1},
		specular: r.terrainSpecular,
		texture:  r.terrainTexture,
	})
}

// DrawModel draws every part of m. bones holds one model-space transform per
// part; world places the model.
func (r *Renderer) DrawModel(m *Model, world math.Mat4, bones []math.Mat4) {
	for i, part := range m.parts {
		r.draw(part, drawParams{
			model:    world.Mul(bones[i]),
			color:    m.colors[i],
			specular: math.Vec3{X: 0.2, Y: 0.2, Z: 0.2},
		})
	}
}

func (r *Renderer) draw(mesh gpuMesh, d drawParams) {
	p := r.program
	p.SetMat4("uModel", d.model)
	p.SetVec3("uColor", d.color)
	p.SetVec3("uSpecular", d.specular)
	if d.texture != 0 {
		p.SetInt("uTextured", 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, d.texture)
	} else {
		p.SetInt("uTextured", 0)
	}

	gl.BindVertexArray(mesh.vao)
	gl.DrawElements(gl.TRIANGLES, mesh.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	r.terrain.release()
	if r.terrainTexture != 0 {
		gl.DeleteTextures(1, &r.terrainTexture)
		r.terrainTexture = 0
	}
	for _, m := range r.models {
		for i := range m.parts {
			m.parts[i].release()
		}
	}
	r.models = nil
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
