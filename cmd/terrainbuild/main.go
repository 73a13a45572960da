// terrainbuild is a CLI utility for building and inspecting terrain files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = cmdBuild(args, os.Stdout)
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "sample":
		err = cmdSample(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrainbuild - heightfield terrain builder

Usage:
  terrainbuild <command> [options]

Commands:
  build [options] -o <out.terrain>   Build a terrain from a heightmap or noise
  info <file.terrain>                Show grid and mesh information
  sample <file.terrain> <x> <z>      Query height and normal at a world point

Build options:
  -heightmap <img>   Heightmap image (BMP, PNG, JPEG, GIF)
  -noise <WxD>       Generate a WxD Perlin noise heightmap instead
  -seed <n>          Noise seed
  -spacing <f>       Cell spacing (default 30)
  -amplitude <f>     Height of a full-white sample (default 640)
  -texscale <f>      Texture coordinates per sample (default 0.1)
  -texture <name>    Texture file name, empty for none (default rocks.bmp)

Examples:
  terrainbuild build -heightmap terrain.bmp -o terrain.terrain
  terrainbuild build -noise 256x256 -seed 7 -o hills.terrain
  terrainbuild info hills.terrain
  terrainbuild sample hills.terrain 120 -45`)
}

// usageError reports missing or malformed arguments.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

// parseNoiseSize parses a WxD noise size.
func parseNoiseSize(s string) (int, int, error) {
	var w, d int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &d); err != nil {
		return 0, 0, usageError(fmt.Sprintf("bad -noise %q: want WxD", s))
	}
	if w < 2 || d < 2 {
		return 0, 0, fmt.Errorf("%w: noise size %dx%d is smaller than 2x2", terrain.ErrInvalidInput, w, d)
	}
	return w, d, nil
}

func cmdBuild(args []string, stdout io.Writer) error {
	def := terrain.DefaultOptions()

	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	heightmapPath := fs.String("heightmap", "", "Heightmap image")
	noise := fs.String("noise", "", "Noise size as WxD")
	seed := fs.Int64("seed", 1, "Noise seed")
	spacing := fs.Float64("spacing", float64(def.CellSpacing), "Cell spacing")
	amplitude := fs.Float64("amplitude", float64(def.Amplitude), "Height amplitude")
	texScale := fs.Float64("texscale", float64(def.TexCoordScale), "Texture coordinate scale")
	texture := fs.String("texture", def.TextureName, "Texture file name")
	out := fs.String("o", "", "Output file")
	verbose := fs.Bool("v", false, "Log build details")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		return usageError("terrainbuild build (-heightmap <img> | -noise <WxD>) -o <out.terrain>")
	}

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			return err
		}
	}

	var src heightmap.Source
	switch {
	case *heightmapPath != "" && *noise != "":
		return usageError("-heightmap and -noise are exclusive")
	case *heightmapPath != "":
		img, err := heightmap.LoadImage(*heightmapPath)
		if err != nil {
			return err
		}
		src = img
	case *noise != "":
		w, d, err := parseNoiseSize(*noise)
		if err != nil {
			return err
		}
		src = heightmap.NewNoise(heightmap.NoiseConfig{Width: w, Depth: d, Seed: *seed})
	default:
		return usageError("one of -heightmap or -noise is required")
	}

	mesh, grid, err := terrain.Build(src, terrain.Options{
		CellSpacing:   float32(*spacing),
		Amplitude:     float32(*amplitude),
		TexCoordScale: float32(*texScale),
		TextureName:   *texture,
	})
	if err != nil {
		return err
	}

	if err := terrain.WriteFile(*out, grid, mesh); err != nil {
		return err
	}

	lo, hi := grid.HeightRange()
	fmt.Fprintf(stdout, "Wrote %s\n", *out)
	fmt.Fprintf(stdout, "Grid:      %d x %d (spacing %g)\n", grid.Width(), grid.Depth(), grid.Spacing())
	fmt.Fprintf(stdout, "Heights:   %.2f .. %.2f\n", lo, hi)
	fmt.Fprintf(stdout, "Triangles: %d\n", mesh.TriangleCount())
	return nil
}

func cmdInfo(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return usageError("terrainbuild info <file.terrain>")
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	grid, mesh, err := terrain.ReadFile(args[0])
	if err != nil {
		return err
	}

	ex, ez := grid.Extent()
	lo, hi := grid.HeightRange()
	origin := grid.Origin()

	fmt.Fprintf(stdout, "File:    %s (%.2f KB)\n", args[0], float64(info.Size())/1024)
	fmt.Fprintf(stdout, "Grid:    %d x %d\n", grid.Width(), grid.Depth())
	fmt.Fprintf(stdout, "Spacing: %g\n", grid.Spacing())
	fmt.Fprintf(stdout, "Extent:  %g x %g\n", ex, ez)
	fmt.Fprintf(stdout, "Origin:  (%g, %g, %g)\n", origin.X, origin.Y, origin.Z)
	fmt.Fprintf(stdout, "Heights: %.2f .. %.2f\n", lo, hi)
	fmt.Fprintln(stdout)

	if mesh == nil {
		fmt.Fprintln(stdout, "Mesh:    (none)")
		return nil
	}
	texture := mesh.Material.Texture
	if texture == "" {
		texture = "(none)"
	}
	fmt.Fprintln(stdout, "Mesh:")
	fmt.Fprintf(stdout, "  Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(stdout, "  Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(stdout, "  Texture:   %s\n", texture)
	fmt.Fprintf(stdout, "  Bounds:    %v .. %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	return nil
}

func cmdSample(args []string, stdout io.Writer) error {
	if len(args) < 3 {
		return usageError("terrainbuild sample <file.terrain> <x> <z>")
	}

	x, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("bad x: %w", err)
	}
	z, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return fmt.Errorf("bad z: %w", err)
	}

	grid, _, err := terrain.ReadFile(args[0])
	if err != nil {
		return err
	}
	engine := terrain.NewEngine(grid)

	p := math.Vec3{X: float32(x), Z: float32(z)}
	fmt.Fprintf(stdout, "Point:    (%g, %g)\n", p.X, p.Z)
	if !engine.Contains(p) {
		fmt.Fprintln(stdout, "Contains: false")
		return nil
	}
	height, normal, err := engine.Sample(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Contains: true")
	fmt.Fprintf(stdout, "Height:   %.3f\n", height)
	fmt.Fprintf(stdout, "Normal:   (%.4f, %.4f, %.4f)\n", normal.X, normal.Y, normal.Z)
	return nil
}
