package mdc_test

import (
	"github.com/go-gl/mathgl/mgl64"

	"mdc/pkg/mesh"
)

func vec3(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

// surfaceArea sums the area of every face's triangulation, splitting
// quads along the 0-2 diagonal the same way pkg/mesh.ToTriangleMesh does.
func surfaceArea(m *mesh.Mesh) float64 {
	var total float64
	for _, face := range m.Faces {
		switch len(face) {
		case 3:
			total += triangleArea(m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]])
		case 4:
			total += triangleArea(m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]])
			total += triangleArea(m.Vertices[face[2]], m.Vertices[face[3]], m.Vertices[face[0]])
		}
	}
	return total
}

func triangleArea(a, b, c mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() * 0.5
}

// countConnectedComponents unions vertices sharing a face edge via
// union-find, then counts the distinct roots referenced by any face.
func countConnectedComponents(m *mesh.Mesh) int {
	parent := make([]int, len(m.Vertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	referenced := make(map[int]bool)
	for _, face := range m.Faces {
		for i := range face {
			referenced[face[i]] = true
			union(face[i], face[(i+1)%len(face)])
		}
	}

	roots := make(map[int]bool)
	for v := range referenced {
		roots[find(v)] = true
	}
	return len(roots)
}
