package mesh_test

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"mdc/internal/pool"
	"mdc/pkg/mesh"
)

func TestToTriangleMeshSplitsQuadsAlongZeroTwoDiagonal(t *testing.T) {
	m := mesh.New()
	m.AddVertex(mgl64.Vec3{0, 0, 0})
	m.AddVertex(mgl64.Vec3{1, 0, 0})
	m.AddVertex(mgl64.Vec3{1, 1, 0})
	m.AddVertex(mgl64.Vec3{0, 1, 0})
	m.AddFace(0, 1, 2, 3)
	m.AddFace(0, 1, 2)

	p := pool.NewWorkerPool(2, 8)
	defer p.Shutdown()
	tm := m.ToTriangleMesh(p)

	require.Len(t, tm.Triangles, 3)
	require.Equal(t, [3]int{0, 1, 2}, tm.Triangles[0])
	require.Equal(t, [3]int{2, 3, 0}, tm.Triangles[1])
	require.Equal(t, [3]int{0, 1, 2}, tm.Triangles[2])
}

func TestWriteOBJProducesExpectedFormat(t *testing.T) {
	m := mesh.New()
	m.AddVertex(mgl64.Vec3{0, 0, 0})
	m.AddVertex(mgl64.Vec3{1, 0, 0})
	m.AddVertex(mgl64.Vec3{0, 1, 0})
	m.AddFace(0, 1, 2)

	var buf strings.Builder
	require.NoError(t, m.WriteOBJ(&buf, false))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "o SDFMesh\n"))
	require.Contains(t, out, "v 0 0 0\n")
	require.Contains(t, out, "v 1 0 0\n")
	require.Contains(t, out, "f 1 2 3\n")
}

func TestWriteOBJReverseWindingFlipsFaceOrder(t *testing.T) {
	m := mesh.New()
	m.AddVertex(mgl64.Vec3{0, 0, 0})
	m.AddVertex(mgl64.Vec3{1, 0, 0})
	m.AddVertex(mgl64.Vec3{0, 1, 0})
	m.AddFace(0, 1, 2)

	var buf strings.Builder
	require.NoError(t, m.WriteOBJ(&buf, true))
	require.Contains(t, buf.String(), "f 3 2 1\n")
}

func TestFlatTopologyConcatenatesFacesInOrder(t *testing.T) {
	m := mesh.New()
	for i := 0; i < 4; i++ {
		m.AddVertex(mgl64.Vec3{float64(i), 0, 0})
	}
	m.AddFace(0, 1, 2)
	m.AddFace(1, 2, 3, 0)

	arities, flat := m.FlatTopology()
	require.Equal(t, []int{3, 4}, arities)
	require.Equal(t, []int{0, 1, 2, 1, 2, 3, 0}, flat)
}
