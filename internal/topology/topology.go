// Package topology holds the static per-cube tables describing the 12
// edges and 8 corners of a single grid cell: which corners an edge joins,
// which edges bound a face, and which edges are incident to a corner.
// These tables are pure geometry of a cube and never change at runtime.
package topology

import "mdc/internal/bitset"

// Edge names one of the 12 edges of a cell. Edges 0,1,2 (A,B,C) are the
// three positive-axis edges incident to the cell's reference (lowest
// index) corner, along +x, +y, +z respectively. All other edges are
// translated copies of one of those three, at the offsets in EdgeOffset.
//
//	      +-------9-------+
//	     /|              /|
//	    7 |            10 |              ^
//	   /  8            /  11            /
//	  +-------6-------+   |     ^    higher indexes in y
//	  |   |           |   |     |     /
//	  |   +-------3---|---+     |    /
//	  2  /            5  /  higher indexes
//	  | 1             | 4      in z
//	  |/              |/        |/
//	  o-------0-------+         +-- higher indexes in x -->
type Edge int

const (
	A Edge = iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
)

// NumEdges is the number of edges on a cell.
const NumEdges = 12

// Base returns the canonical positive-axis edge (A, B or C) that e is a
// translated copy of. Two edges on different cells denote the same
// physical edge iff their (Base, translated index) pair agrees.
func (e Edge) Base() Edge {
	return Edge(int(e) % 3)
}

// Axis returns which axis (0=x,1=y,2=z) the edge runs along.
func (e Edge) Axis() int {
	return int(e) % 3
}

// EdgeOffset gives, for every edge, the cell-relative offset of its
// low-index corner.
var EdgeOffset = [NumEdges]geomIndex{
	{0, 0, 0}, // A
	{0, 0, 0}, // B
	{0, 0, 0}, // C
	{0, 1, 0}, // D
	{1, 0, 0}, // E
	{1, 0, 0}, // F
	{0, 0, 1}, // G
	{0, 0, 1}, // H
	{0, 1, 0}, // I
	{0, 1, 1}, // J
	{1, 0, 1}, // K
	{1, 1, 0}, // L
}

// geomIndex mirrors geom.Index's shape without importing geom, to keep
// this package dependency-free; callers convert as needed.
type geomIndex [3]int

// Quads lists, for each of the three positive-axis edges (indexed 0..2),
// the four edges — one per cell sharing that physical edge — that
// together bound the quad dual to it.
var Quads = [3][4]Edge{
	{A, G, J, D},
	{B, E, K, H},
	{C, I, L, F},
}

// CornerIndex packs a corner's integer coordinate parity into 0..7:
// bit0=x, bit1=y, bit2=z.
func CornerIndex(x, y, z int) int {
	return (x & 1) | (y&1)<<1 | (z&1)<<2
}

// OutsideEdgesPerCorner lists, for each of the 8 cell corners, the 3
// edges incident to it.
var OutsideEdgesPerCorner = [8]bitset.Set{
	bitset.FromBits(0, 1, 2),
	bitset.FromBits(0, 4, 5),
	bitset.FromBits(1, 3, 8),
	bitset.FromBits(3, 4, 11),
	bitset.FromBits(2, 6, 7),
	bitset.FromBits(5, 6, 10),
	bitset.FromBits(7, 8, 9),
	bitset.FromBits(9, 10, 11),
}

// Face names one of the 6 faces of a cell, in axis-then-side order:
// -x, +x, -y, +y, -z, +z. This ordering matches the per-face-axis
// neighbor slot used throughout the octree (slot = axis*2 + side).
type Face int

const (
	NegX Face = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
)

// NumFaces is the number of faces on a cell.
const NumFaces = 6

// FaceOffset gives the cell-index delta to the neighbor across a face.
var FaceOffset = [NumFaces]geomIndex{
	{-1, 0, 0},
	{1, 0, 0},
	{0, -1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
}

// EdgesOnFace lists, for each face, the 4 edges of the cell lying on it.
var EdgesOnFace = [NumFaces]bitset.Set{
	bitset.FromBits(int(B), int(H), int(C), int(I)), // -x
	bitset.FromBits(int(E), int(K), int(F), int(L)), // +x
	bitset.FromBits(int(A), int(G), int(C), int(F)), // -y
	bitset.FromBits(int(D), int(J), int(I), int(L)), // +y
	bitset.FromBits(int(A), int(D), int(B), int(E)), // -z
	bitset.FromBits(int(G), int(J), int(H), int(K)), // +z
}

// edgeKey identifies an edge by its (offset, axis) shape, shared by every
// cell — used to translate an edge across a face into the neighbor's
// local edge numbering.
type edgeKey struct {
	ox, oy, oz, axis int
}

var edgeByKey map[edgeKey]Edge

func init() {
	edgeByKey = make(map[edgeKey]Edge, NumEdges)
	for e := Edge(0); e < NumEdges; e++ {
		o := EdgeOffset[e]
		edgeByKey[edgeKey{o[0], o[1], o[2], e.Axis()}] = e
	}
}

// EdgeAt returns the edge of the given axis whose EdgeOffset exactly
// matches off (off's component along axis is ignored; EdgeOffset always
// carries 0 there). Used by octree subsampling to name a parent edge from
// a child's position within the 2x2x2 block.
func EdgeAt(axis int, off [3]int) Edge {
	off[axis] = 0
	e, ok := edgeByKey[edgeKey{off[0], off[1], off[2], axis}]
	if !ok {
		panic("topology: no edge found for given (axis, offset)")
	}
	return e
}

// AcrossFace translates edge e (named in the local cell) into the edge
// name it has in the cell across the given face, i.e. the local edge
// whose low corner, once the face offset is undone, lands on the same
// physical corner and axis as e.
func AcrossFace(e Edge, f Face) Edge {
	o := EdgeOffset[e]
	d := FaceOffset[f]
	key := edgeKey{o[0] - d[0], o[1] - d[1], o[2] - d[2], e.Axis()}
	translated, ok := edgeByKey[key]
	if !ok {
		panic("topology: no edge across face for given (edge, face)")
	}
	return translated
}
