package field

import (
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// Env records which cells of the 3x3x3 neighborhood around a cell are
// occupied, one bit per neighbor plus one for the cell itself. The three
// letters name the x, y and z offsets: Z is zero, P is +1, N is -1.
type Env uint32

const (
	EnvZZZ Env = 1 << iota
	EnvZZP
	EnvZZN
	EnvZPZ
	EnvZPP
	EnvZPN
	EnvZNZ
	EnvZNP
	EnvZNN
	EnvPZZ
	EnvPZP
	EnvPZN
	EnvPPZ
	EnvPPP
	EnvPPN
	EnvPNZ
	EnvPNP
	EnvPNN
	EnvNZZ
	EnvNZP
	EnvNZN
	EnvNPZ
	EnvNPP
	EnvNPN
	EnvNNZ
	EnvNNP
	EnvNNN

	// EnvAll marks a fully surrounded cell.
	EnvAll Env = 1<<27 - 1
)

// Vis records which of the six axis-aligned faces of a cell are exposed.
type Vis uint8

const (
	VisXP Vis = 1 << iota
	VisXN
	VisYP
	VisYN
	VisZP
	VisZN

	VisAll Vis = 1<<6 - 1
)

// envNeighbors pairs each neighbor bit with its lattice offset. EnvZZZ (the
// cell itself) is deliberately absent.
var envNeighbors = [26]struct {
	bit Env
	off [3]int
}{
	{EnvZZP, [3]int{0, 0, 1}},
	{EnvZZN, [3]int{0, 0, -1}},
	{EnvZPZ, [3]int{0, 1, 0}},
	{EnvZPP, [3]int{0, 1, 1}},
	{EnvZPN, [3]int{0, 1, -1}},
	{EnvZNZ, [3]int{0, -1, 0}},
	{EnvZNP, [3]int{0, -1, 1}},
	{EnvZNN, [3]int{0, -1, -1}},
	{EnvPZZ, [3]int{1, 0, 0}},
	{EnvPZP, [3]int{1, 0, 1}},
	{EnvPZN, [3]int{1, 0, -1}},
	{EnvPPZ, [3]int{1, 1, 0}},
	{EnvPPP, [3]int{1, 1, 1}},
	{EnvPPN, [3]int{1, 1, -1}},
	{EnvPNZ, [3]int{1, -1, 0}},
	{EnvPNP, [3]int{1, -1, 1}},
	{EnvPNN, [3]int{1, -1, -1}},
	{EnvNZZ, [3]int{-1, 0, 0}},
	{EnvNZP, [3]int{-1, 0, 1}},
	{EnvNZN, [3]int{-1, 0, -1}},
	{EnvNPZ, [3]int{-1, 1, 0}},
	{EnvNPP, [3]int{-1, 1, 1}},
	{EnvNPN, [3]int{-1, 1, -1}},
	{EnvNNZ, [3]int{-1, -1, 0}},
	{EnvNNP, [3]int{-1, -1, 1}},
	{EnvNNN, [3]int{-1, -1, -1}},
}

// Environment computes the neighborhood mask of every cell of an occupancy
// field. Neighbors outside the field count as unoccupied.
func Environment(occ *Field[bool]) *Field[Env] {
	e := occ.Extent()
	return MapWithCoordinate(occ, func(set bool, co [3]int) Env {
		var env Env
		if set {
			env |= EnvZZZ
		}
		for _, n := range envNeighbors {
			x := co[0] + n.off[0]
			y := co[1] + n.off[1]
			z := co[2] + n.off[2]
			if x < 0 || x >= e || y < 0 || y >= e || z < 0 || z >= e {
				continue
			}
			if occ.At([3]int{x, y, z}) {
				env |= n.bit
			}
		}
		return env
	})
}

// Shell prunes cells that are fully surrounded. Such cells cannot contribute
// a visible face, so dropping them shrinks the mesh builder's workload
// without changing the rendered surface.
func Shell(occ *Field[bool], env *Field[Env]) *Field[bool] {
	return MapWithCoordinate(occ, func(set bool, co [3]int) bool {
		return set && env.At(co) != EnvAll
	})
}

// Visibility derives the exposed-face set of every cell from its
// environment. A face is exposed when its direct neighbor is unoccupied.
// Faces at the field boundary are never exposed: the neighboring chunk owns
// that surface and stitches it by adjacency.
func Visibility(env *Field[Env]) *Field[Vis] {
	e := env.Extent()
	return MapWithCoordinate(env, func(m Env, co [3]int) Vis {
		var vis Vis
		if co[0] < e-1 && m&EnvPZZ == 0 {
			vis |= VisXP
		}
		if co[0] > 0 && m&EnvNZZ == 0 {
			vis |= VisXN
		}
		if co[1] < e-1 && m&EnvZPZ == 0 {
			vis |= VisYP
		}
		if co[1] > 0 && m&EnvZNZ == 0 {
			vis |= VisYN
		}
		if co[2] < e-1 && m&EnvZZP == 0 {
			vis |= VisZP
		}
		if co[2] > 0 && m&EnvZZN == 0 {
			vis |= VisZN
		}
		return vis
	})
}

// Normals turns each cell's exposed-face set into an averaged outward
// surface normal, or the zero vector for cells without exposed faces.
func Normals(vis *Field[Vis]) *Field[mgl32.Vec3] {
	return Map(vis, func(v Vis) mgl32.Vec3 {
		var n mgl32.Vec3
		if v&VisXP != 0 {
			n[0] += 1
		}
		if v&VisXN != 0 {
			n[0] -= 1
		}
		if v&VisYP != 0 {
			n[1] += 1
		}
		if v&VisYN != 0 {
			n[1] -= 1
		}
		if v&VisZP != 0 {
			n[2] += 1
		}
		if v&VisZN != 0 {
			n[2] -= 1
		}
		if n != (mgl32.Vec3{}) {
			n = n.Normalize()
		}
		return n
	})
}

// Steepness measures how far a cell's normal deviates from straight up.
// Flat ground is 0, a vertical wall is 1, an overhang exceeds 1.
func Steepness(normals *Field[mgl32.Vec3]) *Field[float32] {
	up := mgl32.Vec3{0, 0, 1}
	return Map(normals, func(n mgl32.Vec3) float32 {
		return 1 - n.Dot(up)
	})
}

// Coverage is the fraction of exposed faces per cell.
func Coverage(vis *Field[Vis]) *Field[float32] {
	return Map(vis, func(v Vis) float32 {
		return float32(bits.OnesCount8(uint8(v))) / 8
	})
}

// Smooth averages each masked cell with its masked neighbors, using the
// environment to select in-range neighbors. Cells outside the mask pass
// through unchanged.
func Smooth(f *Field[float32], mask *Field[bool], env *Field[Env]) *Field[float32] {
	return MapWithCoordinate(f, func(v float32, co [3]int) float32 {
		if !mask.At(co) {
			return v
		}
		sum := v
		count := 1
		m := env.At(co)
		for _, n := range envNeighbors {
			if m&n.bit == 0 {
				continue
			}
			nco := [3]int{co[0] + n.off[0], co[1] + n.off[1], co[2] + n.off[2]}
			if mask.At(nco) {
				sum += f.At(nco)
				count++
			}
		}
		return sum / float32(count)
	})
}
