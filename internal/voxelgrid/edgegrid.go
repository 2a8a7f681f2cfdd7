package voxelgrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/field"
	"mdc/internal/geom"
	"mdc/internal/topology"
)

// precisionZero bounds how close to the true root find_zero needs to land
// before it stops bisecting/secant-stepping.
const precisionZero = 0.05

// EdgeIndex names one of a cell's 12 edges by the low-corner lattice Index
// it hangs off of.
type EdgeIndex struct {
	Edge  topology.Edge
	Index geom.Index
}

// Base canonicalizes the edge to its axis representative (A, B or C), the
// same identity two edges share when they run parallel through the same
// lattice line.
func (e EdgeIndex) Base() EdgeIndex {
	return EdgeIndex{Edge: e.Edge.Base(), Index: e.Index}
}

// EdgeGrid maps every zero-crossing edge to the Plane (point + normal)
// where the surface crosses it.
type EdgeGrid map[EdgeIndex]geom.Plane

// GenerateEdgeGrid walks every stored value-grid corner and, for each of
// the 3 edges whose low corner it is, locates the zero crossing if its
// two endpoint signs differ.
func GenerateEdgeGrid(f field.ImplicitFunction, grid *ValueGrid, origin mgl64.Vec3, res float64) EdgeGrid {
	edges := make(EdgeGrid)
	for _, idx := range grid.Keys() {
		v, ok := grid.Get(idx)
		if !ok {
			continue
		}
		for axis := 0; axis < 3; axis++ {
			e := topology.Edge(axis)
			var delta geom.Index
			delta[axis] = 1
			other := idx.Add(delta)
			ov, ok := grid.Get(other)
			if !ok {
				continue
			}
			if (v < 0) == (ov < 0) {
				continue
			}
			a := idx.Pos(origin, res)
			b := other.Pos(origin, res)
			if plane, found := FindZero(f, a, v, b, ov, res); found {
				edges[EdgeIndex{Edge: e, Index: idx}] = plane
			}
		}
	}
	return edges
}

// FindZero locates the root of f along the segment a->b, whose endpoint
// values av and bv are known to have opposite signs, by repeated secant
// (false-position) steps that replace the endpoint of the same sign, with
// the segment midpoint used only if a secant point falls outside the
// segment, stopping as soon as either endpoint's
// value is already within precisionZero*res of zero. The returned plane
// sits at whichever endpoint has the smaller |value|, never a
// synthesized midpoint.
func FindZero(f field.ImplicitFunction, a mgl64.Vec3, av float64, b mgl64.Vec3, bv float64, res float64) (geom.Plane, bool) {
	tol := precisionZero * res
	lo, hi := a, b
	loVal, hiVal := av, bv
	if loVal > 0 {
		lo, hi = hi, lo
		loVal, hiVal = hiVal, loVal
	}

	dist := func() float64 {
		d := math.Abs(loVal)
		if v := math.Abs(hiVal); v < d {
			d = v
		}
		return d
	}

	for i := 0; i < 64 && dist() >= tol; i++ {
		t := loVal / (loVal - hiVal)
		secant := lo.Add(hi.Sub(lo).Mul(t))
		if !isBetween(secant, lo, hi) {
			secant = lo.Add(hi).Mul(0.5)
		}

		midVal := f.Value(secant)
		if midVal == 0 {
			lo, loVal = secant, midVal
			break
		}
		if midVal < 0 {
			lo, loVal = secant, midVal
		} else {
			hi, hiVal = secant, midVal
		}
	}

	p := lo
	if math.Abs(hiVal) < math.Abs(loVal) {
		p = hi
	}

	n := f.Normal(p)
	if n.Len() < 1e-12 {
		return geom.Plane{}, false
	}
	return geom.Plane{P: p, N: n.Normalize()}, true
}

func isBetween(p, a, b mgl64.Vec3) bool {
	span := b.Sub(a)
	l2 := span.Dot(span)
	if l2 == 0 {
		return true
	}
	t := p.Sub(a).Dot(span) / l2
	return t >= -1e-9 && t <= 1+1e-9
}
