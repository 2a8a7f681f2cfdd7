// Package voxelgrid builds the sparse value grid and the edge
// grid of zero crossings the rest of the octree is built
// from.
package voxelgrid

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/config"
	"mdc/internal/field"
	"mdc/internal/geom"
	"mdc/internal/pool"
)

// ErrHitZero is returned when F evaluates to exactly zero at a sampled
// lattice point. The driver recovers from it by jittering the origin and
// retrying; it is the only error in this package that isn't fatal.
type ErrHitZero struct {
	Pos mgl64.Vec3
}

func (e *ErrHitZero) Error() string {
	return fmt.Sprintf("voxelgrid: hit zero value at %v during grid sampling", e.Pos)
}

// ValueGrid is a sparse mapping from lattice Index to signed field value.
// Reads use a RWMutex because compaction fans read-only shards of it
// out across a worker pool; construction itself is single-goroutine.
type ValueGrid struct {
	mu     sync.RWMutex
	values map[geom.Index]float64
}

// NewValueGrid returns an empty grid.
func NewValueGrid() *ValueGrid {
	return &ValueGrid{values: make(map[geom.Index]float64)}
}

// Get returns the value stored at idx, if any.
func (g *ValueGrid) Get(idx geom.Index) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.values[idx]
	return v, ok
}

func (g *ValueGrid) set(idx geom.Index, v float64) {
	g.values[idx] = v
}

// Len returns the number of stored entries.
func (g *ValueGrid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.values)
}

// Keys returns a snapshot of every stored Index, in unspecified order.
func (g *ValueGrid) Keys() []geom.Index {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]geom.Index, 0, len(g.values))
	for k := range g.values {
		out = append(out, k)
	}
	return out
}

func (g *ValueGrid) deleteAll(keys []geom.Index) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, k := range keys {
		delete(g.values, k)
	}
}

// Sample populates a fresh ValueGrid for f by adaptive recursive octree
// descent, with cell spacing res. The bounding box f reports is
// dilated by res*2.1 before sampling starts, then shifted by
// latticeOffset — the retry-jitter vector, zero on a first
// attempt — to choose which lattice phase the grid samples at without
// moving the field itself. The shifted box's minimum corner is returned
// as the world position of lattice Index{0,0,0}, and every other Index
// in the grid is relative to it.
func Sample(f field.ImplicitFunction, res float64, latticeOffset mgl64.Vec3) (*ValueGrid, mgl64.Vec3, error) {
	bbox := f.BBox().Dilate(res * 2.1)
	origin := bbox.Min.Add(latticeOffset)
	dim := bbox.Dim()
	dims := [3]int{
		int(math.Ceil(dim[0] / res)),
		int(math.Ceil(dim[1] / res)),
		int(math.Ceil(dim[2] / res)),
	}
	maxDim := dims[0]
	if dims[1] > maxDim {
		maxDim = dims[1]
	}
	if dims[2] > maxDim {
		maxDim = dims[2]
	}
	size := geom.Pow2RoundUp(maxDim)

	grid := NewValueGrid()
	originVal := f.Value(origin)
	if originVal == 0 {
		return nil, mgl64.Vec3{}, &ErrHitZero{Pos: origin}
	}
	if err := sampleRecursive(f, grid, geom.Index{0, 0, 0}, origin, size, originVal, res); err != nil {
		return nil, mgl64.Vec3{}, err
	}
	return grid, origin, nil
}

// sampleRecursive descends one octree level at a time: at each level
// evaluate the 8 corners of the current sub-cube, reusing the one corner
// value already known from the parent level.
func sampleRecursive(f field.ImplicitFunction, grid *ValueGrid, idx geom.Index, pos mgl64.Vec3, size int, val float64, res float64) error {
	half := size / 2
	halfF := float64(half)
	spanVec := mgl64.Vec3{res, res, res}.Mul(halfF)
	vpos := [2]mgl64.Vec3{pos, pos.Add(spanVec)}
	subCubeDiagonal := halfF * res * math.Sqrt(3)

	midx := idx
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				mpos := mgl64.Vec3{vpos[x][0], vpos[y][1], vpos[z][2]}

				var value float64
				if midx == idx {
					value = val
				} else {
					value = f.Value(mpos)
				}

				if value == 0 {
					return &ErrHitZero{Pos: mpos}
				}

				if half > 1 && math.Abs(value) <= subCubeDiagonal {
					if err := sampleRecursive(f, grid, midx, mpos, half, value, res); err != nil {
						return err
					}
				} else {
					grid.set(midx, value)
				}
				midx[0] += half
			}
			midx[0] -= 2 * half
			midx[1] += half
		}
		midx[1] -= 2 * half
		midx[2] += half
	}
	return nil
}

// Compact drops every entry whose neighborhood contains no value of
// opposite sign, fanning the read-only scan out across workers
// pulled from p. The neighborhood scanned is config.GetCompactNeighbors's
// full 3x3x3 block, or just the 6 face-adjacent cells when that's false.
func Compact(grid *ValueGrid, p *pool.WorkerPool) {
	keys := grid.Keys()
	if len(keys) == 0 {
		return
	}
	full := config.GetCompactNeighbors()
	var mu sync.Mutex
	var toRemove []geom.Index
	p.RunSharded(len(keys), func(start, end int) {
		var removed []geom.Index
		for _, idx := range keys[start:end] {
			v, _ := grid.Get(idx)
			if !hasOppositeSignNeighbor(grid, idx, v, full) {
				removed = append(removed, idx)
			}
		}
		if len(removed) == 0 {
			return
		}
		mu.Lock()
		toRemove = append(toRemove, removed...)
		mu.Unlock()
	})
	grid.deleteAll(toRemove)
}

// faceOffsets are the 6 face-adjacent (non-diagonal) neighbor offsets,
// used when full is false.
var faceOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

func hasOppositeSignNeighbor(grid *ValueGrid, idx geom.Index, v float64, full bool) bool {
	neg := v < 0
	if !full {
		for _, off := range faceOffsets {
			adj := geom.Index{idx[0] + off[0], idx[1] + off[1], idx[2] + off[2]}
			if av, ok := grid.Get(adj); ok {
				if (av < 0) != neg {
					return true
				}
			}
		}
		return false
	}
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				adj := geom.Index{idx[0] + dx, idx[1] + dy, idx[2] + dz}
				if av, ok := grid.Get(adj); ok {
					if (av < 0) != neg {
						return true
					}
				}
			}
		}
	}
	return false
}
