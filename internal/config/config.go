// Package config holds tunable engine knobs behind mutex-guarded
// package-level state: clamped Get/Set accessor pairs over a single
// guarded struct.
package config

import "sync"

// EngineSettings holds tunable Manifold Dual Contouring parameters.
type EngineSettings struct {
	mu               sync.RWMutex
	defaultRes       float64 // grid resolution, world units per cell edge
	defaultRelError  float64 // relative_error
	maxRetries       int     // retry-jitter cap
	workerPoolSize   int     // goroutines used by internal/pool stages
	compactNeighbors bool    // consider the full 3x3x3 neighborhood during compaction
}

var global = &EngineSettings{
	defaultRes:       0.1,
	defaultRelError:  0.1,
	maxRetries:       64,
	workerPoolSize:   4,
	compactNeighbors: true,
}

// GetDefaultResolution returns the default grid resolution.
func GetDefaultResolution() float64 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.defaultRes
}

// SetDefaultResolution sets the default grid resolution, clamped to a
// sane strictly-positive range.
func SetDefaultResolution(res float64) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if res < 1e-6 {
		res = 1e-6
	}
	if res > 1e6 {
		res = 1e6
	}
	global.defaultRes = res
}

// GetDefaultRelativeError returns the default relative_error.
func GetDefaultRelativeError() float64 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.defaultRelError
}

// SetDefaultRelativeError sets the default relative_error, clamped to
// (0, 10].
func SetDefaultRelativeError(relError float64) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if relError < 1e-6 {
		relError = 1e-6
	}
	if relError > 10 {
		relError = 10
	}
	global.defaultRelError = relError
}

// GetMaxRetries returns the retry-jitter cap.
func GetMaxRetries() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.maxRetries
}

// SetMaxRetries sets the retry-jitter cap, clamped to [1, 10000].
func SetMaxRetries(n int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if n > 10000 {
		n = 10000
	}
	global.maxRetries = n
}

// GetWorkerPoolSize returns the goroutine count used by data-parallel
// stages.
func GetWorkerPoolSize() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.workerPoolSize
}

// SetWorkerPoolSize sets the worker pool size, clamped to [1, 256].
func SetWorkerPoolSize(n int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	global.workerPoolSize = n
}

// GetCompactNeighbors returns whether compaction checks the full 3x3x3
// neighborhood (true) or only the face-adjacent 6 cells (false).
func GetCompactNeighbors() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.compactNeighbors
}

// SetCompactNeighbors toggles the compaction neighborhood mode.
func SetCompactNeighbors(full bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.compactNeighbors = full
}
