package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/profiling"
	"github.com/jim-ec/endless/internal/terrain"
)

// World owns the resident chunk map and drives the streamer. All of its
// methods run on the main thread; only the streamer's task tables are shared
// with workers.
type World struct {
	resident map[ChunkCoord]*Chunk
	streamer *Streamer

	radius   int
	lodShift int
}

// New creates a world streaming around the viewer with the given generation
// radius, LOD quantization and worker pool size.
func New(gen *terrain.Generator, radius, lodShift, workers int) *World {
	return &World{
		resident: make(map[ChunkCoord]*Chunk),
		streamer: NewStreamer(gen, workers),
		radius:   radius,
		lodShift: lodShift,
	}
}

// Close stops the background workers.
func (w *World) Close() {
	w.streamer.Close()
}

// Update runs one reconciliation pass: recompute the required set around the
// viewer, evict chunks that left it, queue missing or re-LODded chunks, and
// integrate completed builds. Returns the chunks integrated this pass so the
// caller can upload their meshes.
func (w *World) Update(viewer mgl32.Vec3) []*Chunk {
	defer profiling.Track("world.Update")()

	required := RequiredSet(viewer, w.radius, w.lodShift)
	w.streamer.SetViewer(chunkAt(viewer))

	for coord := range w.resident {
		if _, ok := required[coord]; !ok {
			delete(w.resident, coord)
		}
	}

	w.streamer.Reconcile(required)
	for coord, lod := range required {
		if c, ok := w.resident[coord]; ok && c.Lod == lod {
			continue
		}
		w.streamer.Submit(coord, lod)
	}

	// Builds that finished for a coordinate no longer required (the viewer
	// moved while the worker ran) are dropped on arrival.
	fresh := w.streamer.Poll()
	kept := fresh[:0]
	for _, c := range fresh {
		if _, ok := required[c.Coord]; !ok {
			continue
		}
		w.resident[c.Coord] = c
		kept = append(kept, c)
	}
	return kept
}

// Resident returns the resident chunk map. Owned by the main thread; callers
// must not retain it across Update calls.
func (w *World) Resident() map[ChunkCoord]*Chunk {
	return w.resident
}
