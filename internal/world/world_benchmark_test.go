package world

import (
	"testing"

	"github.com/jim-ec/endless/internal/terrain"
)

func BenchmarkBuildChunk(b *testing.B) {
	gen := terrain.NewGenerator(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildChunk(gen, ChunkCoord{0, 0, 1}, 0)
	}
}

func BenchmarkBuildChunkCoarse(b *testing.B) {
	gen := terrain.NewGenerator(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildChunk(gen, ChunkCoord{0, 0, 1}, 3)
	}
}
