package terrain

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/field"
	"github.com/jim-ec/endless/internal/profiling"
)

const (
	// WorldHeight scales the normalized height maps into world units.
	WorldHeight = 128

	// Sample offsets decorrelating the sediment layers.
	soilOffset = 20
	sandOffset = 80

	// Slopes steeper than this show bare rock.
	steepnessThreshold = 0.55
)

// Sediment classifies a cell's material.
type Sediment uint8

const (
	SedimentRock Sediment = iota
	SedimentSoil
	SedimentSand
	SedimentAir
)

var sedimentColors = [...]mgl32.Vec3{
	SedimentRock: rgb(40, 40, 50),
	SedimentSoil: rgb(100, 40, 20),
	SedimentSand: rgb(194, 150, 80),
	SedimentAir:  rgb(0, 0, 0),
}

// Color returns the base color of the sediment.
func (s Sediment) Color() mgl32.Vec3 {
	return sedimentColors[s]
}

func rgb(r, g, b int) mgl32.Vec3 {
	return mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

func rescale(x, fromLo, fromHi, toLo, toHi float32) float32 {
	return (x-fromLo)*(toHi-toLo)/(fromHi-fromLo) + toLo
}

// Generator samples stacked sediment layers from seeded noise. Generation is
// a pure function of (position, seed): it cannot fail, only be slow.
type Generator struct {
	noise *Noise
}

// NewGenerator creates a generator for the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{noise: NewNoise(seed)}
}

// columnTops returns the cumulative layer ceilings (rock, rock+soil,
// rock+soil+sand) in world units for one column. Heights are computed in
// float32 and rounded with Ceil so that every LOD sampling the same world
// column classifies its cells against identical thresholds.
func (g *Generator) columnTops(wx, wy float64) [3]float32 {
	rock := rescale(g.noise.Sample(wx, wy), -1, 1, 0.1, 1.0)
	rock = math32.Pow(rock, 2) * WorldHeight
	soil := rescale(g.noise.Sample(wx+soilOffset, wy+soilOffset), -1, 1, 0.1, 0.3) * WorldHeight
	sand := rescale(g.noise.Sample(wx+sandOffset, wy+sandOffset), -1, 1, 0.1, 0.2) * WorldHeight
	return [3]float32{
		math32.Ceil(rock),
		math32.Ceil(rock + soil),
		math32.Ceil(rock + soil + sand),
	}
}

// SurfaceHeight returns the world z of the terrain surface at (x, y).
func (g *Generator) SurfaceHeight(wx, wy float64) float32 {
	return g.columnTops(wx, wy)[2]
}

// ChunkFields bundles the generator outputs for one chunk.
type ChunkFields struct {
	Sediments *field.Field[Sediment]
	Occupancy *field.Field[bool]
}

// Generate builds the sediment and occupancy fields for a chunk with the
// given world origin and voxel step (2^lod). Every cell samples the noise at
// its own world coordinate, so all LODs of a region read the same underlying
// continuous function.
func (g *Generator) Generate(origin [3]int, step, extent int) *ChunkFields {
	defer profiling.Track("terrain.Generate")()

	tops := field.GenerateSheet(extent, func(co [2]int) [3]float32 {
		wx := float64(origin[0] + co[0]*step)
		wy := float64(origin[1] + co[1]*step)
		return g.columnTops(wx, wy)
	})

	sediments := field.Generate(extent, func(co [3]int) Sediment {
		wz := float32(origin[2] + co[2]*step)
		t := tops.At([2]int{co[0], co[1]})
		switch {
		case wz < t[0]:
			return SedimentRock
		case wz < t[1]:
			return SedimentSoil
		case wz < t[2]:
			return SedimentSand
		default:
			return SedimentAir
		}
	})

	occupancy := field.Map(sediments, func(s Sediment) bool {
		return s != SedimentAir
	})

	return &ChunkFields{Sediments: sediments, Occupancy: occupancy}
}

// Colors derives the per-cell color field from the sediment palette, with
// rock showing through on steep slopes. Steepness comes from the visibility
// normals and is smoothed across the shell to avoid per-voxel banding.
func Colors(sediments *field.Field[Sediment], shell *field.Field[bool], env *field.Field[field.Env], vis *field.Field[field.Vis]) *field.Field[mgl32.Vec3] {
	defer profiling.Track("terrain.Colors")()

	steepness := field.Smooth(field.Steepness(field.Normals(vis)), shell, env)
	return field.MapWithCoordinate(sediments, func(s Sediment, co [3]int) mgl32.Vec3 {
		if shell.At(co) && steepness.At(co) > steepnessThreshold {
			return SedimentRock.Color()
		}
		return s.Color()
	})
}
