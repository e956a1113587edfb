package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RequiredSet computes the set of chunks the viewer needs, mapping each
// in-range coordinate to its level of detail. The LOD grows with distance
// from the viewer, quantized by lodShift, and is clipped so a chunk's voxel
// extent never reaches zero. Pure and deterministic.
func RequiredSet(viewer mgl32.Vec3, radius, lodShift int) map[ChunkCoord]int {
	center := chunkAt(viewer)
	required := make(map[ChunkCoord]int)
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				sq := dx*dx + dy*dy + dz*dz
				if sq > radius*radius {
					continue
				}
				lod := int(math.Sqrt(float64(sq))) >> lodShift
				if lod > MaxLod {
					lod = MaxLod
				}
				required[ChunkCoord{center.X + dx, center.Y + dy, center.Z + dz}] = lod
			}
		}
	}
	return required
}
