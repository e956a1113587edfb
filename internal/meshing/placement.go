package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Placement is a rigid placement with uniform scale: it maps a chunk's local
// 0..extent lattice into world space. Rotation is carried for completeness
// but stays identity for terrain chunks.
type Placement struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       float32
}

// IdentityPlacement returns the neutral placement.
func IdentityPlacement() Placement {
	return Placement{
		Rotation: mgl32.QuatIdent(),
		Scale:    1,
	}
}

// Matrix returns the equivalent homogeneous transform,
// translation * scale * rotation.
func (p Placement) Matrix() mgl32.Mat4 {
	m := p.Rotation.Mat4()
	for i := 0; i < 12; i++ {
		m[i] *= p.Scale
	}
	m[12] = p.Translation.X()
	m[13] = p.Translation.Y()
	m[14] = p.Translation.Z()
	return m
}

// Apply maps a point through the placement.
func (p Placement) Apply(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(v.Mul(p.Scale)).Add(p.Translation)
}

// Inverse returns the inverse placement.
func (p Placement) Inverse() Placement {
	scale := 1 / p.Scale
	rotation := p.Rotation.Conjugate()
	return Placement{
		Translation: rotation.Rotate(p.Translation.Mul(-scale)),
		Rotation:    rotation,
		Scale:       scale,
	}
}

// Mul composes two placements; the result applies q first, then p.
func (p Placement) Mul(q Placement) Placement {
	return Placement{
		Translation: p.Translation.Add(p.Rotation.Rotate(q.Translation.Mul(p.Scale))),
		Rotation:    p.Rotation.Mul(q.Rotation),
		Scale:       p.Scale * q.Scale,
	}
}

// Interpolate blends two placements, slerping the rotation.
func (p Placement) Interpolate(q Placement, t float32) Placement {
	return Placement{
		Translation: p.Translation.Add(q.Translation.Sub(p.Translation).Mul(t)),
		Rotation:    mgl32.QuatSlerp(p.Rotation, q.Rotation, t),
		Scale:       p.Scale + (q.Scale-p.Scale)*t,
	}
}
