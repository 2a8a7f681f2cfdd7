package qef

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/geom"
)

func TestSolveThreeOrthogonalPlanesMeetAtCorner(t *testing.T) {
	box := geom.NewBox(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	planes := []geom.Plane{
		{P: mgl64.Vec3{0.3, 0, 0}, N: mgl64.Vec3{1, 0, 0}},
		{P: mgl64.Vec3{0, 0.3, 0}, N: mgl64.Vec3{0, 1, 0}},
		{P: mgl64.Vec3{0, 0, 0.3}, N: mgl64.Vec3{0, 0, 1}},
	}
	q := New(planes, box)
	q.Solve()

	want := mgl64.Vec3{0.3, 0.3, 0.3}
	if q.Solution.Sub(want).Len() > 1e-9 {
		t.Fatalf("solution = %v, want %v", q.Solution, want)
	}
	if math.Abs(q.Error) > 1e-9 {
		t.Fatalf("expected ~zero residual for a consistent system, got %v", q.Error)
	}
}

func TestSolveClampsToBox(t *testing.T) {
	box := geom.NewBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	planes := []geom.Plane{
		{P: mgl64.Vec3{5, 0, 0}, N: mgl64.Vec3{1, 0, 0}},
		{P: mgl64.Vec3{0, 5, 0}, N: mgl64.Vec3{0, 1, 0}},
		{P: mgl64.Vec3{0, 0, 5}, N: mgl64.Vec3{0, 0, 1}},
	}
	q := New(planes, box)
	q.Solve()
	for a := 0; a < 3; a++ {
		if q.Solution[a] < box.Min[a]-1e-9 || q.Solution[a] > box.Max[a]+1e-9 {
			t.Fatalf("solution %v escaped the constraining box %v", q.Solution, box)
		}
	}
}

func TestMergeMatchesSolvingCombinedPlanes(t *testing.T) {
	box := geom.EmptyBox()
	box.Extend(mgl64.Vec3{-10, -10, -10})
	box.Extend(mgl64.Vec3{10, 10, 10})
	p1 := []geom.Plane{{P: mgl64.Vec3{1, 0, 0}, N: mgl64.Vec3{1, 0, 0}}}
	p2 := []geom.Plane{{P: mgl64.Vec3{0, 1, 0}, N: mgl64.Vec3{0, 1, 0}}, {P: mgl64.Vec3{0, 0, 1}, N: mgl64.Vec3{0, 0, 1}}}

	merged := New(p1, box)
	q2 := New(p2, box)
	merged.Merge(q2)
	merged.Solve()

	combined := New(append(append([]geom.Plane{}, p1...), p2...), box)
	combined.Solve()

	if merged.Solution.Sub(combined.Solution).Len() > 1e-9 {
		t.Fatalf("merged solve %v != combined solve %v", merged.Solution, combined.Solution)
	}
}
