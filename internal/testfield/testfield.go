// Package testfield collects small, self-contained ImplicitFunction
// implementations: the concrete scenarios used by the engine's own
// property/scenario tests and the CLI demo, and a raster-backed
// HeightmapField decoded from a BMP heightmap (not one of the CLI's
// built-in scenarios).
package testfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/geom"
)

// Sphere is F(p) = |p - center| - radius.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) BBox() geom.Box {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return geom.NewBox(s.Center.Sub(r), s.Center.Add(r))
}

func (s Sphere) Value(p mgl64.Vec3) float64 {
	return p.Sub(s.Center).Len() - s.Radius
}

func (s Sphere) Normal(p mgl64.Vec3) mgl64.Vec3 {
	return p.Sub(s.Center).Normalize()
}

// ChebyshevCube is F(p) = max(|x|,|y|,|z|) - halfExtent, an axis-aligned
// cube under the Chebyshev (L-infinity) norm.
type ChebyshevCube struct {
	HalfExtent float64
}

func (c ChebyshevCube) BBox() geom.Box {
	h := mgl64.Vec3{c.HalfExtent, c.HalfExtent, c.HalfExtent}
	return geom.NewBox(h.Mul(-1), h)
}

func (c ChebyshevCube) Value(p mgl64.Vec3) float64 {
	return maxAbs3(p) - c.HalfExtent
}

// Normal returns the axis-aligned normal of whichever face p is closest
// to, breaking ties toward the X axis, then Y, then Z; the normal's sign
// follows the sign of p's coordinate on that axis.
func (c ChebyshevCube) Normal(p mgl64.Vec3) mgl64.Vec3 {
	ax, ay, az := math.Abs(p[0]), math.Abs(p[1]), math.Abs(p[2])
	switch {
	case ax >= ay && ax >= az:
		return mgl64.Vec3{math.Copysign(1, p[0]), 0, 0}
	case ay >= az:
		return mgl64.Vec3{0, math.Copysign(1, p[1]), 0}
	default:
		return mgl64.Vec3{0, 0, math.Copysign(1, p[2])}
	}
}

func maxAbs3(p mgl64.Vec3) float64 {
	m := math.Abs(p[0])
	if v := math.Abs(p[1]); v > m {
		m = v
	}
	if v := math.Abs(p[2]); v > m {
		m = v
	}
	return m
}

// Union is F(p) = min(a(p), b(p)), the implicit union of two fields; used
// to build the disjoint-spheres and tangent-spheres scenarios from two
// Sphere values.
type Union struct {
	A, B interface {
		BBox() geom.Box
		Value(p mgl64.Vec3) float64
		Normal(p mgl64.Vec3) mgl64.Vec3
	}
}

func (u Union) BBox() geom.Box {
	return u.A.BBox().Union(u.B.BBox())
}

func (u Union) Value(p mgl64.Vec3) float64 {
	return math.Min(u.A.Value(p), u.B.Value(p))
}

// Normal returns whichever operand's normal is closer to p's surface,
// i.e. the operand with the smaller |Value|.
func (u Union) Normal(p mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(u.A.Value(p)) <= math.Abs(u.B.Value(p)) {
		return u.A.Normal(p)
	}
	return u.B.Normal(p)
}

// ThinShell is F(p) = ||p| - 1| - thickness/2, a spherical shell of the
// given thickness centered on the unit sphere.
type ThinShell struct {
	Thickness float64
}

func (s ThinShell) BBox() geom.Box {
	r := 1 + s.Thickness
	v := mgl64.Vec3{r, r, r}
	return geom.NewBox(v.Mul(-1), v)
}

func (s ThinShell) Value(p mgl64.Vec3) float64 {
	return math.Abs(p.Len()-1) - s.Thickness/2
}

func (s ThinShell) Normal(p mgl64.Vec3) mgl64.Vec3 {
	if p.Len() < 1 {
		return p.Normalize().Mul(-1)
	}
	return p.Normalize()
}

// Plane is F(p) = p.y - height, an infinite horizontal plane clipped to
// extent on X and Z for bounding-box purposes.
type Plane struct {
	Height float64
	Extent float64
}

func (pl Plane) BBox() geom.Box {
	e := pl.Extent
	return geom.NewBox(
		mgl64.Vec3{-e, pl.Height - e, -e},
		mgl64.Vec3{e, pl.Height + e, e},
	)
}

func (pl Plane) Value(p mgl64.Vec3) float64 {
	return p[1] - pl.Height
}

func (pl Plane) Normal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{0, 1, 0}
}
