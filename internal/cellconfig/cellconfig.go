// Package cellconfig builds CELL_CONFIGS, the table partitioning a cell's
// sign-changing edges into the edge-components that each become a
// distinct dual vertex.
//
// The table is generated once, lazily, from a connected-components
// routine over the 256 possible 8-bit corner sign patterns, as sanctioned
// for an immutable static table: two sign-changing edges are placed in
// the same component iff their corners whose sign bit is set ("inside"
// corners) belong to one inside region, i.e. are the same corner or are
// linked through cube edges whose two corners are both inside. Edges that
// only share an "outside" corner are left in
// separate components — this is what keeps the classic ambiguous
// checkerboard pattern (opposite corners sharing a sign, the rest not)
// from collapsing into a single, non-manifold vertex: each inside corner
// gets its own component, exactly as confirmed against the
// connected_edges() reference case for cell bitset {0,3,5,6} inside.
package cellconfig

import (
	"mdc/internal/bitset"
	"mdc/internal/topology"
)

// Table holds, for every one of the 256 cell sign patterns, the list of
// edge-component BitSets into which the cell's sign-changing edges
// partition. A pattern with no sign change (all corners share a sign)
// maps to an empty slice.
var Table [256][]bitset.Set

func init() {
	for pattern := 0; pattern < 256; pattern++ {
		Table[pattern] = buildConfig(pattern)
	}
}

func buildConfig(pattern int) []bitset.Set {
	inside := func(corner int) bool { return pattern&(1<<uint(corner)) != 0 }

	// An edge is active (sign-changing) iff its two endpoint corners
	// disagree.
	type endpoints struct{ lo, hi int }
	edgeCorners := make([]endpoints, topology.NumEdges)
	active := make([]bool, topology.NumEdges)
	for e := topology.Edge(0); e < topology.NumEdges; e++ {
		lo := topology.CornerIndex(
			topology.EdgeOffset[e][0],
			topology.EdgeOffset[e][1],
			topology.EdgeOffset[e][2],
		)
		hiOffset := topology.EdgeOffset[e]
		hiOffset[e.Axis()]++
		hi := topology.CornerIndex(hiOffset[0], hiOffset[1], hiOffset[2])
		edgeCorners[e] = endpoints{lo, hi}
		active[e] = inside(lo) != inside(hi)
	}

	// Nodes 0..11 are edges; node NumEdges+c stands for corner c.
	parent := make([]int, topology.NumEdges+8)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for corner := 0; corner < 8; corner++ {
		if !inside(corner) {
			continue
		}
		var members []int
		for e := 0; e < topology.NumEdges; e++ {
			if !active[e] {
				continue
			}
			ep := edgeCorners[e]
			if ep.lo == corner || ep.hi == corner {
				members = append(members, e)
			}
		}
		for _, m := range members {
			union(topology.NumEdges+corner, m)
		}
	}
	for e := 0; e < topology.NumEdges; e++ {
		if ep := edgeCorners[e]; !active[e] && inside(ep.lo) {
			union(topology.NumEdges+ep.lo, topology.NumEdges+ep.hi)
		}
	}

	groups := make(map[int]bitset.Set)
	var order []int
	for e := 0; e < topology.NumEdges; e++ {
		if !active[e] {
			continue
		}
		root := find(e)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = groups[root].With(e)
	}

	out := make([]bitset.Set, 0, len(order))
	for _, root := range order {
		out = append(out, groups[root])
	}
	return out
}

// ComponentFor returns the edge-component BitSet of pattern's table that
// contains edge. Panics if no such component exists (a logic-bug
// precondition — e isn't a sign-changing edge of pattern).
func ComponentFor(pattern bitset.Set, edge topology.Edge) bitset.Set {
	for _, set := range Table[pattern.AsU32()] {
		if set.Get(int(edge)) {
			return set
		}
	}
	panic("cellconfig: no edge-component contains the given edge for this pattern")
}

// ComponentsIntersecting returns every component of pattern's table that
// shares at least one edge with edges.
func ComponentsIntersecting(pattern bitset.Set, edges bitset.Set) []bitset.Set {
	var out []bitset.Set
	for _, set := range Table[pattern.AsU32()] {
		if !set.Intersect(edges).Empty() {
			out = append(out, set)
		}
	}
	return out
}
