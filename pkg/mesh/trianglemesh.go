package mesh

import "github.com/go-gl/mathgl/mgl64"

// TriangleMesh is the pure-triangle form produced by Mesh.ToTriangleMesh.
type TriangleMesh struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]int
}

// VertexAt returns the world-space position of vertex i.
func (t *TriangleMesh) VertexAt(i int) mgl64.Vec3 {
	return t.Vertices[i]
}

// Normal returns the unnormalized face normal of triangle face, via the
// cross product of its first two edges.
func (t *TriangleMesh) Normal(face int) mgl64.Vec3 {
	tri := t.Triangles[face]
	a := t.Vertices[tri[0]]
	b := t.Vertices[tri[1]]
	c := t.Vertices[tri[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// Centroid returns the average of a triangle's three vertices.
func (t *TriangleMesh) Centroid(face int) mgl64.Vec3 {
	tri := t.Triangles[face]
	sum := t.Vertices[tri[0]].Add(t.Vertices[tri[1]]).Add(t.Vertices[tri[2]])
	return sum.Mul(1.0 / 3.0)
}

// FlatTopology returns every triangle's 3 vertex indices concatenated
// into one flat buffer.
func (t *TriangleMesh) FlatTopology() []int {
	flat := make([]int, 0, len(t.Triangles)*3)
	for _, tri := range t.Triangles {
		flat = append(flat, tri[0], tri[1], tri[2])
	}
	return flat
}
