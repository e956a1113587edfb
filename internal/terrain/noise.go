package terrain

import (
	"github.com/aquilax/go-perlin"
)

const (
	// Base frequency of the terrain noise in world units.
	frequency = 0.01
	// Strength of the turbulence displacement applied to sample positions.
	turbulence = 0.5
)

// Noise samples layered Perlin noise with a turbulence warp: the sample
// position is displaced by two secondary noise fields before the main
// fractal field is read. Sampling is a pure function of (position, seed),
// which is what keeps chunk generation deterministic and LOD-consistent.
type Noise struct {
	fbm   *perlin.Perlin
	warpX *perlin.Perlin
	warpY *perlin.Perlin
}

// NewNoise creates a seeded noise sampler.
func NewNoise(seed int64) *Noise {
	return &Noise{
		fbm:   perlin.NewPerlin(2.0, 2.0, 4, seed),
		warpX: perlin.NewPerlin(2.0, 2.0, 2, seed+1),
		warpY: perlin.NewPerlin(2.0, 2.0, 2, seed+2),
	}
}

// Sample returns coherent noise in roughly [-1, 1] at world coordinates.
func (n *Noise) Sample(x, y float64) float32 {
	fx := x * frequency
	fy := y * frequency
	wx := fx + turbulence*n.warpX.Noise2D(fx, fy)
	wy := fy + turbulence*n.warpY.Noise2D(fx, fy)
	return float32(n.fbm.Noise2D(wx, wy))
}
