package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler. Generation stages running on worker
// goroutines and main-loop phases both record into the same table, so a
// frame's snapshot shows where the pipeline spends its time.

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("terrain.Generate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Called at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest entries of the current totals,
// e.g. "meshing.Build:4.2ms, terrain.Generate:2.1ms".
func TopN(n int) string {
	snap := Snapshot()
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", e.name, float64(e.dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
