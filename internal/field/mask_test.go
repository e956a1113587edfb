package field

import (
	"math/bits"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// single places one occupied cell in an otherwise empty cube.
func single(extent int, at [3]int) *Field[bool] {
	return Generate(extent, func(co [3]int) bool { return co == at })
}

func TestEnvironmentSelfBit(t *testing.T) {
	occ := single(3, [3]int{1, 1, 1})
	env := Environment(occ)
	if env.At([3]int{1, 1, 1})&EnvZZZ == 0 {
		t.Error("occupied cell missing EnvZZZ")
	}
	if got := env.At([3]int{1, 1, 1}); got != EnvZZZ {
		t.Errorf("lone cell environment = %027b, want only EnvZZZ", got)
	}
}

func TestEnvironmentNeighborBits(t *testing.T) {
	occ := single(3, [3]int{1, 1, 1})
	env := Environment(occ)

	// Every cell of the cube sees the center as exactly one neighbor bit.
	for co := range occ.Coordinates() {
		if co == ([3]int{1, 1, 1}) {
			continue
		}
		m := env.At(co)
		if bits.OnesCount32(uint32(m)) != 1 {
			t.Errorf("cell %v environment has %d bits set, want 1", co, bits.OnesCount32(uint32(m)))
		}
	}
	if env.At([3]int{0, 1, 1})&EnvPZZ == 0 {
		t.Error("cell (0,1,1) should see the center as +x neighbor")
	}
	if env.At([3]int{2, 1, 1})&EnvNZZ == 0 {
		t.Error("cell (2,1,1) should see the center as -x neighbor")
	}
	if env.At([3]int{1, 0, 1})&EnvZPZ == 0 {
		t.Error("cell (1,0,1) should see the center as +y neighbor")
	}
	if env.At([3]int{1, 1, 2})&EnvZZN == 0 {
		t.Error("cell (1,1,2) should see the center as -z neighbor")
	}
	if env.At([3]int{0, 0, 0})&EnvPPP == 0 {
		t.Error("cell (0,0,0) should see the center as diagonal +x+y+z neighbor")
	}
}

func TestEnvironmentBoundary(t *testing.T) {
	// A full cube: interior cells are fully surrounded, boundary cells miss
	// the out-of-range neighbors.
	occ := Generate(3, func([3]int) bool { return true })
	env := Environment(occ)
	if env.At([3]int{1, 1, 1}) != EnvAll {
		t.Errorf("interior cell environment = %027b, want EnvAll", env.At([3]int{1, 1, 1}))
	}
	if env.At([3]int{0, 0, 0}) == EnvAll {
		t.Error("corner cell must not be fully surrounded")
	}
	// A corner sees itself plus the 7 in-range neighbors.
	if got := bits.OnesCount32(uint32(env.At([3]int{0, 0, 0}))); got != 8 {
		t.Errorf("corner environment has %d bits, want 8", got)
	}
}

func TestVisibilitySingleCell(t *testing.T) {
	occ := single(3, [3]int{1, 1, 1})
	vis := Visibility(Environment(occ))

	if got := vis.At([3]int{1, 1, 1}); got != VisAll {
		t.Errorf("fully exposed cell visibility = %06b, want all 6 faces", got)
	}
	for co := range occ.Coordinates() {
		if co == ([3]int{1, 1, 1}) {
			continue
		}
		// Empty cells still get a mask, but the mesh builder only consults
		// it for occupied shell cells. Boundary faces must stay clear.
		m := vis.At(co)
		checkBoundaryFaces(t, co, 3, m)
	}
}

func checkBoundaryFaces(t *testing.T, co [3]int, extent int, m Vis) {
	t.Helper()
	type rule struct {
		axis, at int
		face     Vis
	}
	for _, r := range []rule{
		{0, extent - 1, VisXP}, {0, 0, VisXN},
		{1, extent - 1, VisYP}, {1, 0, VisYN},
		{2, extent - 1, VisZP}, {2, 0, VisZN},
	} {
		if co[r.axis] == r.at && m&r.face != 0 {
			t.Errorf("cell %v reports outward face %06b at the field boundary", co, r.face)
		}
	}
}

func TestVisibilityNeverAtBoundary(t *testing.T) {
	occ := Generate(4, func(co [3]int) bool { return (co[0]+co[1]+co[2])%2 == 0 })
	vis := Visibility(Environment(occ))
	for co := range occ.Coordinates() {
		checkBoundaryFaces(t, co, 4, vis.At(co))
	}
}

func TestVisibilitySuppressedByNeighbor(t *testing.T) {
	occ := Generate(4, func(co [3]int) bool {
		return co == ([3]int{1, 1, 1}) || co == ([3]int{2, 1, 1})
	})
	vis := Visibility(Environment(occ))
	if vis.At([3]int{1, 1, 1})&VisXP != 0 {
		t.Error("face towards occupied neighbor must not be visible")
	}
	if vis.At([3]int{2, 1, 1})&VisXN != 0 {
		t.Error("face towards occupied neighbor must not be visible")
	}
	if vis.At([3]int{1, 1, 1})&VisYP == 0 {
		t.Error("exposed interior face should be visible")
	}
}

func TestShellPrunesInterior(t *testing.T) {
	occ := Generate(4, func([3]int) bool { return true })
	env := Environment(occ)
	shell := Shell(occ, env)

	for co := range occ.Coordinates() {
		interior := co[0] > 0 && co[0] < 3 && co[1] > 0 && co[1] < 3 &&
			co[2] > 0 && co[2] < 3
		if shell.At(co) == interior {
			t.Errorf("cell %v: shell = %v, interior = %v", co, shell.At(co), interior)
		}
	}
}

func TestShellIdempotent(t *testing.T) {
	occ := Generate(5, func(co [3]int) bool { return co[2] < 3 })
	shell := Shell(occ, Environment(occ))
	again := Shell(shell, Environment(shell))
	for co := range occ.Coordinates() {
		if shell.At(co) != again.At(co) {
			t.Fatalf("shell not idempotent at %v", co)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	occ := single(3, [3]int{1, 1, 1})
	normals := Normals(Visibility(Environment(occ)))
	n := normals.At([3]int{1, 1, 1})
	// All six faces visible: contributions cancel to zero.
	if n != (mgl32.Vec3{}) {
		t.Errorf("symmetric cell normal = %v, want zero", n)
	}

	occ = Generate(3, func(co [3]int) bool { return co[2] < 2 })
	normals = Normals(Visibility(Environment(occ)))
	n = normals.At([3]int{1, 1, 1})
	if n[2] <= 0 {
		t.Errorf("top-of-column normal = %v, want +z component", n)
	}
	if d := n.Len() - 1; d > 1e-6 || d < -1e-6 {
		t.Errorf("normal %v not unit length", n)
	}
}

func TestSteepness(t *testing.T) {
	occ := Generate(3, func(co [3]int) bool { return co[2] < 2 })
	steep := Steepness(Normals(Visibility(Environment(occ))))
	if got := steep.At([3]int{1, 1, 1}); got != 0 {
		t.Errorf("flat ground steepness = %v, want 0", got)
	}
}

func TestCoverage(t *testing.T) {
	occ := single(3, [3]int{1, 1, 1})
	cov := Coverage(Visibility(Environment(occ)))
	if got := cov.At([3]int{1, 1, 1}); got != 6.0/8.0 {
		t.Errorf("coverage = %v, want 0.75", got)
	}
}

func TestSmoothAverages(t *testing.T) {
	mask := Generate(3, func(co [3]int) bool { return co[2] == 0 })
	env := Environment(mask)
	vals := Generate(3, func(co [3]int) float32 {
		if co == ([3]int{1, 1, 0}) {
			return 9
		}
		return 0
	})
	smoothed := Smooth(vals, mask, env)

	// Center of the bottom layer averages itself with its 8 masked
	// neighbors: 9/9 = 1.
	if got := smoothed.At([3]int{1, 1, 0}); got != 1 {
		t.Errorf("smoothed center = %v, want 1", got)
	}
	// Unmasked cells pass through.
	if got := smoothed.At([3]int{1, 1, 2}); got != 0 {
		t.Errorf("unmasked cell changed to %v", got)
	}
}
