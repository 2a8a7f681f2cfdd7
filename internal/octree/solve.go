package octree

// SolveAll implements the top-down hierarchical solve: starting
// at the top layer, solve each vertex's QEF once; only recurse into its
// children if the residual exceeds errorTolerance. A QEF is solved at
// most once across the whole tree.
func SolveAll(layers [][]*Vertex, errorTolerance float64) {
	layerOf := make(map[*Vertex]int)
	for li, layer := range layers {
		for _, v := range layer {
			layerOf[v] = li
		}
	}
	top := layers[len(layers)-1]
	for _, v := range top {
		solveSubtree(layers, layerOf, v, errorTolerance)
	}
}

func solveSubtree(layers [][]*Vertex, layerOf map[*Vertex]int, v *Vertex, errorTolerance float64) {
	if !v.QEF.Solved {
		v.QEF.Solve()
	}
	if v.QEF.Error <= errorTolerance {
		return
	}
	if len(v.Children) == 0 {
		return
	}
	childLayer := layers[layerOf[v]-1]
	for _, ci := range v.Children {
		solveSubtree(layers, layerOf, childLayer[ci], errorTolerance)
	}
}
