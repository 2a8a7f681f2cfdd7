package octree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/bitset"
	"mdc/internal/cellconfig"
	"mdc/internal/geom"
	"mdc/internal/qef"
	"mdc/internal/topology"
	"mdc/internal/voxelgrid"
)

// symbolicNeighbor is a not-yet-resolved neighbor reference recorded
// during leaf construction: the neighboring vertex, named by VertexIndex,
// across a given face of v.
type symbolicNeighbor struct {
	face  topology.Face
	other VertexIndex
}

// cellSignPattern computes the 8-bit corner sign BitSet for the cell
// whose low corner sits at idx. A missing corner here is a
// precondition violation and panics: GenerateEdgeGrid checks only an
// edge's two endpoints, so every cell around a crossing edge is expected
// to have all 8 corners in the grid already.
func cellSignPattern(grid *voxelgrid.ValueGrid, idx geom.Index) bitset.Set {
	var pattern bitset.Set
	for c := 0; c < 8; c++ {
		off := geom.Index{c & 1, (c >> 1) & 1, (c >> 2) & 1}
		corner := idx.Add(off)
		v, ok := grid.Get(corner)
		if !ok {
			panic(fmt.Sprintf("octree: missing value-grid corner %v for cell %v", corner, idx))
		}
		if v < 0 {
			pattern = pattern.With(c)
		}
	}
	return pattern
}

func cellFullyPresent(grid *voxelgrid.ValueGrid, idx geom.Index) bool {
	for c := 0; c < 8; c++ {
		off := geom.Index{c & 1, (c >> 1) & 1, (c >> 2) & 1}
		if _, ok := grid.Get(idx.Add(off)); !ok {
			return false
		}
	}
	return true
}

// BuildLeaves builds one dual Vertex per connected edge-
// component of every cell touched by the edge grid, with symbolic
// (VertexIndex-named) neighbor links resolved to layer-local indices
// before returning.
func BuildLeaves(grid *voxelgrid.ValueGrid, edges voxelgrid.EdgeGrid, origin mgl64.Vec3, res float64) ([]*Vertex, map[VertexIndex]int) {
	vertices := make(map[VertexIndex]*Vertex)
	order := make([]VertexIndex, 0)
	pending := make(map[VertexIndex][]symbolicNeighbor)

	getOrCreate := func(vi VertexIndex) *Vertex {
		if v, ok := vertices[vi]; ok {
			return v
		}
		v := newVertex(vi.Cell)
		v.QEF = buildLeafQEF(edges, vi, origin, res)
		for _, e := range vi.Component.Bits() {
			v.EdgeIntersections[e] = 1
		}
		v.EulerCharacteristic = 1
		vertices[vi] = v
		order = append(order, vi)
		return v
	}

	for eidx := range edges {
		axis := int(eidx.Edge)
		for _, q := range topology.Quads[axis] {
			off := topology.EdgeOffset[q]
			cellIdx := eidx.Index.Sub(geom.Index{off[0], off[1], off[2]})
			pattern := cellSignPattern(grid, cellIdx)
			component := cellconfig.ComponentFor(pattern, q)
			vi := VertexIndex{Cell: cellIdx, Component: component}
			getOrCreate(vi)

			for f := 0; f < topology.NumFaces; f++ {
				face := topology.Face(f)
				onFace := component.Intersect(topology.EdgesOnFace[f])
				if onFace.Empty() {
					continue
				}
				neighborCell := cellIdx.Add(geom.Index{
					topology.FaceOffset[f][0],
					topology.FaceOffset[f][1],
					topology.FaceOffset[f][2],
				})
				if !cellFullyPresent(grid, neighborCell) {
					continue
				}
				var translated bitset.Set
				for _, e := range onFace.Bits() {
					translated = translated.With(int(topology.AcrossFace(topology.Edge(e), face)))
				}
				neighborPattern := cellSignPattern(grid, neighborCell)
				for _, comp := range cellconfig.ComponentsIntersecting(neighborPattern, translated) {
					nvi := VertexIndex{Cell: neighborCell, Component: comp}
					getOrCreate(nvi)
					pending[vi] = append(pending[vi], symbolicNeighbor{face: face, other: nvi})
				}
			}
		}
	}

	layer := make([]*Vertex, len(order))
	index := make(map[VertexIndex]int, len(order))
	for i, vi := range order {
		index[vi] = i
		layer[i] = vertices[vi]
	}
	for vi, refs := range pending {
		v := vertices[vi]
		seen := make(map[topology.Face]map[int]bool, topology.NumFaces)
		for _, ref := range refs {
			j, ok := index[ref.other]
			if !ok {
				continue
			}
			if seen[ref.face] == nil {
				seen[ref.face] = make(map[int]bool, len(v.Neighbors[ref.face]))
				for _, existing := range v.Neighbors[ref.face] {
					seen[ref.face][existing] = true
				}
			}
			if seen[ref.face][j] {
				continue
			}
			seen[ref.face][j] = true
			v.Neighbors[ref.face] = append(v.Neighbors[ref.face], j)
		}
	}
	return layer, index
}

// buildLeafQEF seeds a new leaf's QEF from the tangent planes of every
// edge in its component, each looked up under its canonical (base-edge,
// cell) key in the edge grid, constrained to the cell's world-space
// axis-aligned bounding box.
func buildLeafQEF(edges voxelgrid.EdgeGrid, vi VertexIndex, origin mgl64.Vec3, res float64) *qef.Qef {
	var planes []geom.Plane
	for _, e := range vi.Component.Bits() {
		edge := topology.Edge(e)
		off := topology.EdgeOffset[edge]
		canonicalIdx := vi.Cell.Add(geom.Index{off[0], off[1], off[2]})
		key := voxelgrid.EdgeIndex{Edge: edge.Base(), Index: canonicalIdx}
		if plane, ok := edges[key]; ok {
			planes = append(planes, plane)
		}
	}
	lo := vi.Cell.Pos(origin, res)
	hi := vi.Cell.Add(geom.Index{1, 1, 1}).Pos(origin, res)
	return qef.New(planes, geom.NewBox(lo, hi))
}
