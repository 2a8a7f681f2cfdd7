package octree

import (
	"mdc/internal/geom"
	"mdc/internal/qef"
	"mdc/internal/topology"
)

// BuildLayers repeatedly folds layer L into layer L+1 until a
// layer comes back the same size as the one that produced it — no
// further coarsening is possible — appending that final layer once
// before stopping. Appending unconditionally, rather than discarding a
// same-size layer, keeps every child's Parent link populated without
// leaning on a construction-order side effect.
func BuildLayers(leaves []*Vertex) [][]*Vertex {
	layers := [][]*Vertex{leaves}
	for {
		last := layers[len(layers)-1]
		next := Subsample(last)
		layers = append(layers, next)
		if len(next) == len(last) {
			return layers
		}
	}
}

// Subsample groups layer's vertices into connected
// components within each 2x2x2 parent block (reachable from one another
// via neighbor links restricted to that block), and folds each component
// into one parent Vertex.
func Subsample(layer []*Vertex) []*Vertex {
	claimed := make([]bool, len(layer))
	var parents []*Vertex

	for i, v := range layer {
		if claimed[i] {
			continue
		}
		parentIndex := v.Index.Half()
		component := connectedComponent(layer, i, parentIndex)
		for _, ci := range component {
			claimed[ci] = true
		}
		parents = append(parents, buildParent(layer, component, parentIndex))
	}

	// Rewrite each parent's neighbor handles from child-layer indices to
	// the child's own parent handle, now that every parent exists.
	childToParent := make(map[int]int, len(layer))
	for pi, p := range parents {
		for _, ci := range p.Children {
			childToParent[ci] = pi
		}
	}
	for _, p := range parents {
		for f := 0; f < topology.NumFaces; f++ {
			seen := make(map[int]bool, len(p.Neighbors[f]))
			var resolved []int
			for _, childNeighborIdx := range p.Neighbors[f] {
				pi, ok := childToParent[childNeighborIdx]
				if !ok || seen[pi] {
					continue
				}
				seen[pi] = true
				resolved = append(resolved, pi)
			}
			p.Neighbors[f] = resolved
		}
	}

	for ci, v := range layer {
		if pi, ok := childToParent[ci]; ok {
			v.Parent = pi
		}
	}

	return parents
}

// connectedComponent returns the indices, within layer, of every vertex
// reachable from start by neighbor walks that never leave parentIndex's
// 2x2x2 block.
func connectedComponent(layer []*Vertex, start int, parentIndex geom.Index) []int {
	visited := map[int]bool{start: true}
	stack := []int{start}
	var component []int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, i)
		for f := 0; f < topology.NumFaces; f++ {
			for _, j := range layer[i].Neighbors[f] {
				if visited[j] {
					continue
				}
				if layer[j].Index.Half() != parentIndex {
					continue
				}
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}
	return component
}

// buildParent folds the children (layer indices) sharing parentIndex
// into a single coarser Vertex: merged QEF, unioned boundary neighbor
// links (still named by child-layer index, resolved by the caller), and
// the edge-intersection / Euler bookkeeping.
func buildParent(layer []*Vertex, children []int, parentIndex geom.Index) *Vertex {
	p := newVertex(parentIndex)
	p.Children = append([]int{}, children...)
	p.QEF = qef.New(nil, geom.EmptyBox())

	innerSum := 0
	for _, ci := range children {
		c := layer[ci]
		p.QEF.Merge(c.QEF)
		p.EulerCharacteristic += c.EulerCharacteristic

		octant := c.Index.Parity()
		for e := 0; e < topology.NumEdges; e++ {
			val := c.EdgeIntersections[e]
			if val == 0 {
				continue
			}
			axis := topology.Edge(e).Axis()
			off := topology.EdgeOffset[topology.Edge(e)]
			boundary := true
			var parentOff [3]int
			for axi := 0; axi < 3; axi++ {
				if axi == axis {
					continue
				}
				coord := octant[axi] + off[axi]
				if coord != 0 && coord != 2 {
					boundary = false
					break
				}
				parentOff[axi] = coord / 2
			}
			if !boundary {
				innerSum += val
				continue
			}
			parentEdge := topology.EdgeAt(axis, parentOff)
			p.EdgeIntersections[parentEdge] += val
		}

		for f := 0; f < topology.NumFaces; f++ {
			face := topology.Face(f)
			axis := f / 2
			side := f % 2
			if octant[axis] != side {
				continue
			}
			p.Neighbors[face] = append(p.Neighbors[face], c.Neighbors[face]...)
		}
	}
	p.EulerCharacteristic -= innerSum / 4
	return p
}
