package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/field"
	"github.com/jim-ec/endless/internal/profiling"
)

// VertexStride is the number of float32 per vertex
// (position.xyz + normal.xyz + color.rgb).
const VertexStride = 9

// Mesh is a flat triangle-list vertex buffer in chunk-local coordinates,
// paired with the placement that maps it into world space.
type Mesh struct {
	Vertices    []float32
	VertexCount int
	Placement   Placement
}

// Unit cube corners; faces below index into this table.
var cubeCorners = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{1, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{0, 1, 1},
	{1, 1, 1},
}

// cubeFaces lists the two triangles of each cube face, wound
// counter-clockwise seen from outside. The flat normal is the normalized
// cross product of the first triangle's edge vectors.
var cubeFaces = [6]struct {
	vis     field.Vis
	corners [6]uint8
	normal  mgl32.Vec3
}{
	{vis: field.VisZN, corners: [6]uint8{0, 2, 3, 0, 3, 1}},
	{vis: field.VisZP, corners: [6]uint8{4, 5, 7, 4, 7, 6}},
	{vis: field.VisYN, corners: [6]uint8{4, 0, 1, 4, 1, 5}},
	{vis: field.VisXP, corners: [6]uint8{5, 1, 3, 5, 3, 7}},
	{vis: field.VisYP, corners: [6]uint8{7, 3, 2, 7, 2, 6}},
	{vis: field.VisXN, corners: [6]uint8{6, 2, 0, 6, 0, 4}},
}

func init() {
	for i := range cubeFaces {
		f := &cubeFaces[i]
		a := cubeCorners[f.corners[0]]
		b := cubeCorners[f.corners[1]]
		c := cubeCorners[f.corners[2]]
		f.normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
	}
}

// Build walks the shell in field coordinate order and emits two triangles
// for every visible face of every occupied cell, making the output
// reproducible for identical inputs. Vertices stay on the local unit
// lattice; the placement carries the chunk's translation and LOD scale.
func Build(shell *field.Field[bool], vis *field.Field[field.Vis], colors *field.Field[mgl32.Vec3], placement Placement) *Mesh {
	defer profiling.Track("meshing.Build")()

	vertices := make([]float32, 0, 4096)
	for co := range shell.Coordinates() {
		if !shell.At(co) {
			continue
		}
		v := vis.At(co)
		if v == 0 {
			continue
		}
		c := colors.At(co)
		for _, face := range cubeFaces {
			if v&face.vis == 0 {
				continue
			}
			for _, corner := range face.corners {
				p := cubeCorners[corner]
				vertices = append(vertices,
					p.X()+float32(co[0]), p.Y()+float32(co[1]), p.Z()+float32(co[2]),
					face.normal.X(), face.normal.Y(), face.normal.Z(),
					c.X(), c.Y(), c.Z(),
				)
			}
		}
	}

	return &Mesh{
		Vertices:    vertices,
		VertexCount: len(vertices) / VertexStride,
		Placement:   placement,
	}
}
