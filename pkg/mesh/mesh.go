// Package mesh is the output surface produced by the MDC engine: a
// vertex list plus faces of 3 or 4 indices, with adapters to a pure-
// triangle form and to Wavefront OBJ text.
package mesh

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/pool"
)

// Mesh is the engine's native output: faces may be triangles or quads
// (quads are planar only approximately).
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][]int
}

// New returns an empty Mesh ready to be appended to during quad
// emission.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends p to the vertex list and returns its index.
func (m *Mesh) AddVertex(p mgl64.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// AddFace appends a face referencing the given vertex indices (3 or 4
// of them).
func (m *Mesh) AddFace(indices ...int) {
	m.Faces = append(m.Faces, indices)
}

// FlatTopology returns, for every face, its arity (3 or 4), alongside a
// single flat buffer of every face's vertex indices concatenated in
// order — useful to callers uploading topology without per-face slices.
func (m *Mesh) FlatTopology() (arities []int, flatIndices []int) {
	arities = make([]int, len(m.Faces))
	for i, f := range m.Faces {
		arities[i] = len(f)
		flatIndices = append(flatIndices, f...)
	}
	return arities, flatIndices
}

// ToTriangleMesh splits every quad face as (0,1,2),(2,3,0) and passes
// triangles through unchanged, fanning the per-face work out across p.
func (m *Mesh) ToTriangleMesh(p *pool.WorkerPool) *TriangleMesh {
	perFace := make([][][3]int, len(m.Faces))
	p.RunSharded(len(m.Faces), func(start, end int) {
		for i := start; i < end; i++ {
			f := m.Faces[i]
			switch len(f) {
			case 3:
				perFace[i] = [][3]int{{f[0], f[1], f[2]}}
			case 4:
				perFace[i] = [][3]int{{f[0], f[1], f[2]}, {f[2], f[3], f[0]}}
			default:
				panic(fmt.Sprintf("mesh: face with unsupported arity %d", len(f)))
			}
		}
	})

	tm := &TriangleMesh{Vertices: m.Vertices}
	for _, tris := range perFace {
		tm.Triangles = append(tm.Triangles, tris...)
	}
	return tm
}

// WriteOBJ serializes m as Wavefront OBJ text: an "o SDFMesh" header, one
// "v x y z" line per vertex, one "f i1 i2 ..." line per face (1-based
// indices). If reverseWinding is set, each face's vertex order is
// reversed before it's written.
func (m *Mesh) WriteOBJ(w io.Writer, reverseWinding bool) error {
	if _, err := fmt.Fprintln(w, "o SDFMesh"); err != nil {
		return err
	}
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		indices := f
		if reverseWinding {
			indices = make([]int, len(f))
			for i, idx := range f {
				indices[len(f)-1-i] = idx
			}
		}
		if _, err := fmt.Fprint(w, "f"); err != nil {
			return err
		}
		for _, idx := range indices {
			if _, err := fmt.Fprintf(w, " %d", idx+1); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
