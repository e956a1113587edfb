package config

import "sync"

// StreamSettings holds the streaming configuration shared between the main
// loop and whoever tweaks it at runtime.
type StreamSettings struct {
	mu               sync.RWMutex
	generationRadius int // in chunks
	lodShift         int // distance-to-LOD quantization
	workers          int
	seed             int64
}

var globalStreamSettings = &StreamSettings{
	generationRadius: 3,
	lodShift:         1,
	workers:          8,
	seed:             0,
}

// GetGenerationRadius returns the chunk generation radius around the viewer.
func GetGenerationRadius() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.generationRadius
}

// SetGenerationRadius sets the generation radius, clamped to sane values.
func SetGenerationRadius(radius int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if radius < 1 {
		radius = 1
	}
	if radius > 16 {
		radius = 16
	}
	globalStreamSettings.generationRadius = radius
}

// GetLodShift returns how coarsely viewer distance quantizes into LOD steps.
func GetLodShift() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.lodShift
}

// SetLodShift sets the LOD quantization shift.
func SetLodShift(shift int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if shift < 0 {
		shift = 0
	}
	if shift > 4 {
		shift = 4
	}
	globalStreamSettings.lodShift = shift
}

// GetWorkers returns the generation worker pool size.
func GetWorkers() int {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.workers
}

// SetWorkers sets the worker pool size.
func SetWorkers(n int) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}
	globalStreamSettings.workers = n
}

// GetSeed returns the terrain seed.
func GetSeed() int64 {
	globalStreamSettings.mu.RLock()
	defer globalStreamSettings.mu.RUnlock()
	return globalStreamSettings.seed
}

// SetSeed sets the terrain seed.
func SetSeed(seed int64) {
	globalStreamSettings.mu.Lock()
	defer globalStreamSettings.mu.Unlock()
	globalStreamSettings.seed = seed
}
