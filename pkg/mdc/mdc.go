// Package mdc is the Manifold Dual Contouring driver: it orchestrates
// adaptive sampling, compaction, edge localization, octree construction,
// hierarchical QEF solving and quad emission into a single Tessellate
// call, and owns the zero-value-perturbation retry loop.
package mdc

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/config"
	"mdc/internal/field"
	"mdc/internal/octree"
	"mdc/internal/pool"
	"mdc/internal/profiling"
	"mdc/internal/quadmesh"
	"mdc/internal/voxelgrid"
	"mdc/pkg/mesh"
)

// ImplicitFunction re-exports the engine's sole input contract so
// callers need not import internal/field directly.
type ImplicitFunction = field.ImplicitFunction

// Engine holds one tessellation run's tunables: resolution, the derived
// error tolerance (relative_error is never consulted again once the
// absolute error tolerance is derived), and the PRNG driving retry jitter.
type Engine struct {
	res             float64
	errorTolerance  float64
	rng             *rand.Rand
	workers         *pool.WorkerPool
}

// New builds an Engine. res must be > 0; relativeError is unitless and
// combines with res into error_tolerance = res * relativeError. seed
// drives the retry-jitter PRNG, so two Engines built with the same seed
// tessellating the same field apply the same sequence of jitter offsets.
// The order of the output's vertices and faces is not reproducible across
// runs: leaf construction and quad emission range over Go maps, whose
// iteration order varies.
func New(res, relativeError float64, seed int64) (*Engine, error) {
	if res <= 0 {
		return nil, fmt.Errorf("mdc: res must be > 0, got %v", res)
	}
	return &Engine{
		res:            res,
		errorTolerance: res * relativeError,
		rng:            rand.New(rand.NewSource(seed)),
		workers:        pool.NewWorkerPool(config.GetWorkerPoolSize(), 256),
	}, nil
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	e.workers.Shutdown()
}

// Tessellate runs the pipeline once; on a HitZero failure it jitters the
// sampling lattice's phase and retries, up to config.GetMaxRetries()
// times, returning the last HitZero error if the cap is exceeded.
func (e *Engine) Tessellate(f ImplicitFunction) (*mesh.Mesh, error) {
	profiling.ResetRun()

	var jitter mgl64.Vec3
	var lastErr error
	maxRetries := config.GetMaxRetries()

	for attempt := 0; attempt <= maxRetries; attempt++ {
		m, err := e.tessellateOnce(f, jitter)
		if err == nil {
			return m, nil
		}
		hitZero, ok := err.(*voxelgrid.ErrHitZero)
		if !ok {
			return nil, err
		}
		lastErr = hitZero
		jitter = e.nextJitter()
	}
	return nil, fmt.Errorf("mdc: exceeded %d retries, last error: %w", maxRetries, lastErr)
}

// nextJitter produces a small random negative-leaning vector per axis,
// magnitude around res/10, with a denominator perturbation so repeated
// retries don't resonate with the lattice spacing.
func (e *Engine) nextJitter() mgl64.Vec3 {
	axis := func() float64 {
		denom := 10.0 + e.rng.Float64()*2.0
		return -e.res / denom * e.rng.Float64()
	}
	return mgl64.Vec3{axis(), axis(), axis()}
}

func (e *Engine) tessellateOnce(f ImplicitFunction, jitter mgl64.Vec3) (*mesh.Mesh, error) {
	profiling.ResetAttempt()

	stop := profiling.Track("sample")
	grid, origin, err := voxelgrid.Sample(f, e.res, jitter)
	stop()
	if err != nil {
		return nil, err
	}

	stop = profiling.Track("compact")
	voxelgrid.Compact(grid, e.workers)
	stop()

	stop = profiling.Track("edges")
	edges := voxelgrid.GenerateEdgeGrid(f, grid, origin, e.res)
	stop()

	stop = profiling.Track("leaves")
	leaves, leafIndex := octree.BuildLeaves(grid, edges, origin, e.res)
	stop()

	stop = profiling.Track("subsample")
	layers := octree.BuildLayers(leaves)
	stop()

	stop = profiling.Track("solve")
	octree.SolveAll(layers, e.errorTolerance)
	stop()

	out := mesh.New()
	stop = profiling.Track("emit")
	quadmesh.EmitQuads(grid, edges, layers, leafIndex, e.errorTolerance, out)
	stop()

	return out, nil
}
