package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/field"
	"github.com/jim-ec/endless/internal/meshing"
	"github.com/jim-ec/endless/internal/profiling"
	"github.com/jim-ec/endless/internal/terrain"
)

const (
	// ChunkSize is the world-space edge length of a chunk. A chunk at LOD L
	// holds (ChunkSize >> L) voxels per axis, each 2^L world units wide, so
	// the world footprint is the same at every LOD.
	ChunkSize = 64

	// MaxLod keeps the voxel extent at least 1.
	MaxLod = 6
)

// ChunkCoord identifies a chunk by its integer grid position.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the chunk's world-space origin.
func (c ChunkCoord) Origin() [3]int {
	return [3]int{c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize}
}

func (c ChunkCoord) sqDist(o ChunkCoord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	dz := c.Z - o.Z
	return dx*dx + dy*dy + dz*dz
}

// ExtentForLod returns the voxel extent of a chunk at the given LOD.
func ExtentForLod(lod int) int {
	return ChunkSize >> lod
}

// Chunk is one generated and meshed region of the world. Chunks are built by
// a worker, immutable afterwards, and replaced wholesale when their required
// LOD changes.
type Chunk struct {
	Coord  ChunkCoord
	Lod    int
	Shell  *field.Field[bool]
	Colors *field.Field[mgl32.Vec3]
	Mesh   *meshing.Mesh
}

// BuildChunk runs the full generation pipeline for one (coordinate, LOD)
// pair: terrain sampling, neighborhood analysis, then meshing. Pure CPU
// work, no locks.
func BuildChunk(gen *terrain.Generator, coord ChunkCoord, lod int) *Chunk {
	extent := ExtentForLod(lod)
	step := 1 << lod
	origin := coord.Origin()

	fields := gen.Generate(origin, step, extent)

	stop := profiling.Track("world.analyze")
	env := field.Environment(fields.Occupancy)
	shell := field.Shell(fields.Occupancy, env)
	vis := field.Visibility(env)
	stop()

	colors := terrain.Colors(fields.Sediments, shell, env, vis)

	placement := meshing.Placement{
		Translation: mgl32.Vec3{float32(origin[0]), float32(origin[1]), float32(origin[2])},
		Rotation:    mgl32.QuatIdent(),
		Scale:       float32(step),
	}

	return &Chunk{
		Coord:  coord,
		Lod:    lod,
		Shell:  shell,
		Colors: colors,
		Mesh:   meshing.Build(shell, vis, colors, placement),
	}
}

// chunkAt returns the chunk cell containing a world position.
func chunkAt(pos mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(float64(pos.X()))), ChunkSize),
		Y: floorDiv(int(math.Floor(float64(pos.Y()))), ChunkSize),
		Z: floorDiv(int(math.Floor(float64(pos.Z()))), ChunkSize),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
