// Package quadmesh walks every sign-change edge in
// the edge grid, resolving each of its (up to four) surrounding cells to
// a coarsest manifold-safe octree ancestor, and emitting the dual quad
// (as one or two triangles) between them.
package quadmesh

import (
	"fmt"

	"mdc/internal/bitset"
	"mdc/internal/cellconfig"
	"mdc/internal/geom"
	"mdc/internal/octree"
	"mdc/internal/topology"
	"mdc/internal/voxelgrid"
	"mdc/pkg/mesh"
)

// noParent mirrors octree's internal sentinel; duplicated here rather
// than exported, since it's the public contract of Vertex.Parent (an
// ordinary -1-sentinel int), not an implementation detail leaking across
// the package boundary.
const noParent = -1

// lookupCellPoint implements the ascend-to-coarsest-safe-ancestor walk:
// start at the leaf named by vi, then keep climbing to
// the parent layer as long as the parent is solved within tolerance, is
// not the octree root, and is 2-manifold. The walk only moves onto a
// candidate parent once it passes all three checks; a failing candidate
// is rejected and the walk stops at the last vertex already accepted,
// which is the chosen vertex. Solves the chosen vertex's QEF lazily if
// no earlier hierarchical solve pass reached it, and allocates its mesh
// vertex on first use.
func lookupCellPoint(layers [][]*octree.Vertex, leafIndex map[octree.VertexIndex]int, vi octree.VertexIndex, errorTolerance float64, out *mesh.Mesh) int {
	li, ok := leafIndex[vi]
	if !ok {
		panic(fmt.Sprintf("quadmesh: no leaf vertex for %v", vi))
	}

	layerIdx := 0
	v := layers[0][li]
	for v.Parent != noParent && layerIdx < len(layers)-1 {
		parent := layers[layerIdx+1][v.Parent]

		goodSolve := parent.QEF.Solved && parent.QEF.Error <= errorTolerance
		atRoot := layerIdx+1 == len(layers)-1
		manifold := parent.IsManifold()
		if !goodSolve || atRoot || !manifold {
			break
		}

		v = parent
		layerIdx++
	}

	if !v.QEF.Solved {
		v.QEF.Solve()
	}
	if !v.HasMeshIndex() {
		v.MeshIndex = out.AddVertex(v.QEF.Solution)
	}
	return v.MeshIndex
}

// EmitQuads walks every canonical edge in edges and emits the dual
// triangle(s) for it into out.
func EmitQuads(grid *voxelgrid.ValueGrid, edges voxelgrid.EdgeGrid, layers [][]*octree.Vertex, leafIndex map[octree.VertexIndex]int, errorTolerance float64, out *mesh.Mesh) {
	for eidx := range edges {
		axis := int(eidx.Edge)
		quad := topology.Quads[axis]

		indices := make([]int, 0, 4)
		seen := make(map[int]bool, 4)
		for _, q := range quad {
			off := topology.EdgeOffset[q]
			cellIdx := eidx.Index.Sub(geom.Index{off[0], off[1], off[2]})
			pattern := cellSignPattern(grid, cellIdx)
			component := cellconfig.ComponentFor(pattern, q)
			vi := octree.VertexIndex{Cell: cellIdx, Component: component}
			mi := lookupCellPoint(layers, leafIndex, vi, errorTolerance, out)
			if seen[mi] {
				continue
			}
			seen[mi] = true
			indices = append(indices, mi)
		}

		if len(indices) < 3 {
			continue
		}

		lowVal, _ := grid.Get(eidx.Index)
		if lowVal < 0 {
			for l, r := 0, len(indices)-1; l < r; l, r = l+1, r-1 {
				indices[l], indices[r] = indices[r], indices[l]
			}
		}

		out.AddFace(indices[0], indices[1], indices[2])
		if len(indices) == 4 {
			out.AddFace(indices[2], indices[3], indices[0])
		}
	}
}

// cellSignPattern is the quad-emission-side twin of octree's unexported
// helper of the same name: both compute the 8-bit corner sign BitSet for
// a cell, panicking if any corner is missing from the grid, since every
// cell around an edge in the edge grid is expected to have all 8 corners.
func cellSignPattern(grid *voxelgrid.ValueGrid, idx geom.Index) bitset.Set {
	var pattern bitset.Set
	for c := 0; c < 8; c++ {
		off := geom.Index{c & 1, (c >> 1) & 1, (c >> 2) & 1}
		corner := idx.Add(off)
		v, ok := grid.Get(corner)
		if !ok {
			panic(fmt.Sprintf("quadmesh: missing value-grid corner %v for cell %v", corner, idx))
		}
		if v < 0 {
			pattern = pattern.With(c)
		}
	}
	return pattern
}
