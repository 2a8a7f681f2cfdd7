// Package qef implements the Quadratic Error Function accumulator used to
// place one dual vertex per octree node: given a set of tangent planes
// (point + unit normal), find the point minimizing sum((x-p)*n)^2,
// constrained to a bounding box.
package qef

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/geom"
)

// Qef accumulates tangent planes into the normal-equations form of the
// least-squares problem (ATA, ATb, and the plane count / mass point used
// to re-center the solve), so that merging two accumulators is just
// summing their matrices — associative and commutative, independent of
// how many planes went into each side.
type Qef struct {
	ata      mgl64.Mat3
	atb      mgl64.Vec3
	btb      float64
	massSum  mgl64.Vec3
	count    int
	box      geom.Box
	Solved   bool
	Error    float64
	Solution mgl64.Vec3
}

// New builds a Qef from a set of tangent planes, constrained to box.
// Error starts at NaN (unsolved) until Solve is called.
func New(planes []geom.Plane, box geom.Box) *Qef {
	q := &Qef{box: box, Error: math.NaN()}
	for _, p := range planes {
		q.Add(p)
	}
	return q
}

// Add accumulates one more tangent plane into the QEF.
func (q *Qef) Add(p geom.Plane) {
	n := p.N
	d := n.Dot(p.P)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			q.ata.Set(r, c, q.ata.At(r, c)+n[r]*n[c])
		}
		q.atb[r] += n[r] * d
	}
	q.btb += d * d
	q.massSum = q.massSum.Add(p.P)
	q.count++
}

// Merge folds another Qef's accumulated planes into q. Used to build a
// parent's QEF directly from its children's accumulators, without
// re-solving from raw planes.
func (q *Qef) Merge(o *Qef) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			q.ata.Set(r, c, q.ata.At(r, c)+o.ata.At(r, c))
		}
		q.atb[r] += o.atb[r]
	}
	q.btb += o.btb
	q.massSum = q.massSum.Add(o.massSum)
	q.count += o.count
	q.box.Extend(o.box.Min)
	q.box.Extend(o.box.Max)
}

// massPoint returns the centroid of every plane point folded into q, used
// as the solve's reference origin (so the quadratic is well-conditioned
// even far from the world origin).
func (q *Qef) massPoint() mgl64.Vec3 {
	if q.count == 0 {
		return mgl64.Vec3{}
	}
	return q.massSum.Mul(1.0 / float64(q.count))
}

// Solve computes the least-squares point and its residual error, clamped
// to the constraining box. Must be called at most once per Qef — callers
// (the hierarchical solve, lookup_cell_point's lazy solve) check Solved
// first, and a second call panics.
func (q *Qef) Solve() {
	if q.Solved {
		panic("qef: Solve called on an already-solved QEF")
	}
	mp := q.massPoint()

	// Re-center the system at the mass point: solve for x' = x - mp so
	// that A(x'+mp) = b becomes A*x' = b - A*mp, a better-conditioned
	// system when the planes cluster far from the lattice origin.
	var amp mgl64.Vec3
	for r := 0; r < 3; r++ {
		amp[r] = q.ata.Row(r).Dot(mp)
	}
	rhs := q.atb.Sub(amp)

	det := q.ata.Det()
	var xprime mgl64.Vec3
	if math.Abs(det) > 1e-12 {
		inv := q.ata.Inv()
		xprime = inv.Mul3x1(rhs)
	} else {
		// Degenerate (rank-deficient) system: fall back to the mass
		// point itself, zero displacement.
		xprime = mgl64.Vec3{}
	}

	solution := xprime.Add(mp)
	solution = q.box.Clamp(solution)

	var quad float64
	for r := 0; r < 3; r++ {
		quad += solution[r] * q.ata.Row(r).Dot(solution)
	}
	residual := quad - 2*solution.Dot(q.atb) + q.btb
	q.Solution = solution
	q.Error = math.Sqrt(math.Abs(residual) / float64(max(q.count, 1)))
	q.Solved = true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
