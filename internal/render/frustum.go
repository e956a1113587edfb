package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/world"
)

type plane struct {
	a, b, c, d float32
}

// extractPlanes builds the left, right, bottom, top and near clip
// half-spaces from a combined clip-space matrix. The far plane is skipped:
// the generation radius already bounds how far chunks can exist, so a far
// test can never reject anything.
func extractPlanes(clip mgl32.Mat4) [5]plane {
	// mgl32 matrices are column-major.
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return [5]plane{
		normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}), // left
		normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}), // right
		normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}), // bottom
		normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}), // top
		normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}), // near
	}
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IsVisible reports whether a chunk's bounding cube can intersect the view
// frustum. The test works in the chunk's local lattice space: the planes are
// extracted from viewProj * placement, and a chunk is rejected only when all
// 8 corners of its 0..extent cube lie strictly outside one plane. The test
// is conservative: false positives are possible, false negatives are not.
func IsVisible(chunk *world.Chunk, viewProj mgl32.Mat4) bool {
	clip := viewProj.Mul4(chunk.Mesh.Placement.Matrix())
	planes := extractPlanes(clip)

	extent := float32(chunk.Shell.Extent())
	var corners [8]mgl32.Vec3
	for i := range corners {
		corners[i] = mgl32.Vec3{
			float32(i&1) * extent,
			float32(i>>1&1) * extent,
			float32(i>>2&1) * extent,
		}
	}

	for _, p := range planes {
		outside := true
		for _, co := range corners {
			if p.a*co.X()+p.b*co.Y()+p.c*co.Z()+p.d >= 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}
