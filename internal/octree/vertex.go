// Package octree builds the layered octree of dual vertices: one leaf
// vertex per sign-changing edge-component of every grid cell, folded
// upward by repeated 2x2x2 subsampling into coarser layers, each carrying
// a merged QEF and the bookkeeping (edge-intersection counts, Euler
// characteristic) needed to decide where coarsening may safely stop.
package octree

import (
	"mdc/internal/bitset"
	"mdc/internal/geom"
	"mdc/internal/qef"
	"mdc/internal/topology"
)

// noParent and noMeshIndex are the "unset" sentinels for Vertex.Parent and
// Vertex.MeshIndex — plain ints rather than a pointer/Option, so a Vertex
// stays a flat, cheap-to-copy-by-pointer struct.
const (
	noParent    = -1
	noMeshIndex = -1
)

// VertexIndex names one dual vertex within one cell: the cell's lattice
// Index plus the edge-component BitSet (from cellconfig.Table) that this
// vertex is the centroid of. A cell with an ambiguous sign pattern hosts
// more than one VertexIndex.
type VertexIndex struct {
	Cell      geom.Index
	Component bitset.Set
}

// Vertex is one node of one octree layer: a leaf directly seeded from
// tangent planes, or an internal node produced by Subsample folding 2x2x2
// children together.
type Vertex struct {
	Index               geom.Index
	QEF                 *qef.Qef
	Neighbors           [topology.NumFaces][]int
	Parent              int
	Children            []int
	MeshIndex           int
	EdgeIntersections   [topology.NumEdges]int
	EulerCharacteristic int
}

func newVertex(idx geom.Index) *Vertex {
	return &Vertex{
		Index:     idx,
		Parent:    noParent,
		MeshIndex: noMeshIndex,
	}
}

// HasParent reports whether v has been folded into a coarser layer yet.
func (v *Vertex) HasParent() bool { return v.Parent != noParent }

// HasMeshIndex reports whether v has already been emitted to the output
// mesh's vertex list.
func (v *Vertex) HasMeshIndex() bool { return v.MeshIndex != noMeshIndex }

// IsManifold implements the is_2manifold predicate: the
// subtree rooted at v is locally 2-manifold iff its Euler characteristic
// is 1 and, on every one of the cell's 6 faces, the edge-intersection
// count summed over that face's 4 edges is 0 or 2.
func (v *Vertex) IsManifold() bool {
	if v.EulerCharacteristic != 1 {
		return false
	}
	for f := 0; f < topology.NumFaces; f++ {
		sum := 0
		for _, e := range topology.EdgesOnFace[f].Bits() {
			sum += v.EdgeIntersections[e]
		}
		if sum != 0 && sum != 2 {
			return false
		}
	}
	return true
}
