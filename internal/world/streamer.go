package world

import (
	"runtime"
	"sync"

	"github.com/jim-ec/endless/internal/terrain"
)

// Streamer turns (coordinate, LOD) requests into built chunks on a fixed
// pool of workers. The task tables are the only shared mutable state:
// pending holds requests not yet claimed, inProgress tags each claimed
// coordinate with the LOD being built. A coordinate may be pending at a new
// LOD while a worker still builds the old one; the stale build is detected
// and discarded at publish time.
type Streamer struct {
	mu         sync.Mutex
	pending    map[ChunkCoord]int
	inProgress map[ChunkCoord]int
	viewer     ChunkCoord

	results chan *Chunk
	done    chan struct{}

	gen *terrain.Generator
}

// NewStreamer starts a streamer with the given worker pool size.
func NewStreamer(gen *terrain.Generator, workers int) *Streamer {
	if workers < 1 {
		workers = 1
	}
	s := &Streamer{
		pending:    make(map[ChunkCoord]int),
		inProgress: make(map[ChunkCoord]int),
		results:    make(chan *Chunk, 256),
		done:       make(chan struct{}),
		gen:        gen,
	}
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

// Close stops the workers. In-flight builds run to completion and are
// dropped.
func (s *Streamer) Close() {
	close(s.done)
}

// SetViewer records the viewer cell that claim prioritization measures
// distances against.
func (s *Streamer) SetViewer(coord ChunkCoord) {
	s.mu.Lock()
	s.viewer = coord
	s.mu.Unlock()
}

// Submit queues a chunk for generation, superseding any pending request for
// the same coordinate. Requests already being built at the same LOD are
// dropped here; re-requests at a different LOD stay pending so a worker can
// pick them up while the old build is still running.
func (s *Streamer) Submit(coord ChunkCoord, lod int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.inProgress[coord]; ok && l == lod {
		delete(s.pending, coord)
		return
	}
	s.pending[coord] = lod
}

// Reconcile drops pending requests that the required set no longer names at
// their pending LOD.
func (s *Streamer) Reconcile(required map[ChunkCoord]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for coord, lod := range s.pending {
		if want, ok := required[coord]; !ok || want != lod {
			delete(s.pending, coord)
		}
	}
}

// Poll drains completed chunks without blocking.
func (s *Streamer) Poll() []*Chunk {
	var out []*Chunk
	for {
		select {
		case c := <-s.results:
			out = append(out, c)
		default:
			return out
		}
	}
}

func (s *Streamer) worker() {
	for {
		select {
		case <-s.done:
			return
		default:
		}

		coord, lod, ok := s.claim()
		if !ok {
			// No claimable work; tasks arrive continuously under camera
			// motion, so a cooperative yield beats a blocking wait here.
			runtime.Gosched()
			continue
		}

		chunk := BuildChunk(s.gen, coord, lod)

		if s.publish(chunk) {
			select {
			case s.results <- chunk:
			case <-s.done:
				return
			}
		}
	}
}

// claim picks the pending request closest to the viewer (finer LOD wins
// ties) whose coordinate is not already being built at the same LOD, and
// marks it in progress.
func (s *Streamer) claim() (ChunkCoord, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		bestCoord ChunkCoord
		bestLod   int
		bestDist  int
		found     bool
	)
	for coord, lod := range s.pending {
		if l, ok := s.inProgress[coord]; ok && l == lod {
			continue
		}
		d := coord.sqDist(s.viewer)
		if !found || d < bestDist || (d == bestDist && lod < bestLod) {
			bestCoord, bestLod, bestDist = coord, lod, d
			found = true
		}
	}
	if !found {
		return ChunkCoord{}, 0, false
	}
	s.inProgress[bestCoord] = bestLod
	return bestCoord, bestLod, true
}

// publish validates a finished build against the task tables. Only a build
// still marked in progress at its own LOD may be forwarded; anything else
// was superseded while the work ran and is silently dropped.
func (s *Streamer) publish(c *Chunk) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.inProgress[c.Coord]; !ok || l != c.Lod {
		return false
	}
	delete(s.inProgress, c.Coord)
	if l, ok := s.pending[c.Coord]; ok && l == c.Lod {
		delete(s.pending, c.Coord)
	}
	return true
}
