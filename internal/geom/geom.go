// Package geom holds the small set of 3D geometry primitives the rest of
// the engine is built on: points/vectors (via mgl64), an axis-aligned
// bounding box with dilation, a tangent plane, and the integer corner
// index used to address the sampling lattice.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Index addresses a corner on the uniform sampling lattice rooted at some
// origin with a fixed spacing. corner_pos(i) = origin + i*res.
type Index [3]int

// Add returns the componentwise sum of i and o.
func (i Index) Add(o Index) Index {
	return Index{i[0] + o[0], i[1] + o[1], i[2] + o[2]}
}

// Sub returns the componentwise difference i - o.
func (i Index) Sub(o Index) Index {
	return Index{i[0] - o[0], i[1] - o[1], i[2] - o[2]}
}

// Half returns the parent index one octree layer up (integer division by 2
// on every axis).
func (i Index) Half() Index {
	return Index{i[0] / 2, i[1] / 2, i[2] / 2}
}

// Parity returns, per axis, whether the coordinate is odd (the low/high
// side of the 2x2x2 block it belongs to in its parent cell).
func (i Index) Parity() [3]int {
	return [3]int{i[0] & 1, i[1] & 1, i[2] & 1}
}

// Pos maps an Index to a world-space point given the lattice origin and
// cell spacing res.
func (i Index) Pos(origin mgl64.Vec3, res float64) mgl64.Vec3 {
	return origin.Add(mgl64.Vec3{float64(i[0]), float64(i[1]), float64(i[2])}.Mul(res))
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox builds a Box from two corners, without assuming ordering.
func NewBox(a, b mgl64.Vec3) Box {
	box := Box{Min: a, Max: a}
	box.Extend(b)
	return box
}

// EmptyBox returns a box with infinities as bounds, ready to be grown via
// Extend — the identity element for bounding-box union.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box to include p.
func (b *Box) Extend(p mgl64.Vec3) {
	for a := 0; a < 3; a++ {
		if p[a] < b.Min[a] {
			b.Min[a] = p[a]
		}
		if p[a] > b.Max[a] {
			b.Max[a] = p[a]
		}
	}
}

// Dim returns the per-axis extent of the box.
func (b Box) Dim() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Dilate grows the box outward by the given amount on every face.
func (b Box) Dilate(amount float64) Box {
	v := mgl64.Vec3{amount, amount, amount}
	return Box{Min: b.Min.Sub(v), Max: b.Max.Add(v)}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	out := b
	for a := 0; a < 3; a++ {
		out.Min[a] = math.Min(out.Min[a], o.Min[a])
		out.Max[a] = math.Max(out.Max[a], o.Max[a])
	}
	return out
}

// Clamp constrains p to lie within the box, axis by axis.
func (b Box) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	out := p
	for a := 0; a < 3; a++ {
		if out[a] < b.Min[a] {
			out[a] = b.Min[a]
		}
		if out[a] > b.Max[a] {
			out[a] = b.Max[a]
		}
	}
	return out
}

// Plane is a point on a zero crossing together with the unit surface
// normal (field gradient) there.
type Plane struct {
	P mgl64.Vec3
	N mgl64.Vec3
}

// Pow2RoundUp returns the smallest power of two >= x. x must be >= 1.
func Pow2RoundUp(x int) int {
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}
