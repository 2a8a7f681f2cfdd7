package mdc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"mdc/internal/testfield"
	"mdc/pkg/mdc"
	"mdc/pkg/mesh"
)

// ScenarioSuite covers the concrete scenarios enumerated for the engine:
// each is a full end-to-end Tessellate call against a small analytic
// field, checked against the expectations called out for it.
type ScenarioSuite struct {
	suite.Suite
}

func (s *ScenarioSuite) TestUnitSphere() {
	engine, err := mdc.New(0.2, 0.1, 1)
	s.Require().NoError(err)
	defer engine.Close()

	m, err := engine.Tessellate(testfield.Sphere{Radius: 1})
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)

	for _, v := range m.Vertices {
		r := v.Len()
		s.Require().GreaterOrEqual(r, 0.85, "vertex %v too far inside", v)
		s.Require().LessOrEqual(r, 1.15, "vertex %v too far outside", v)
	}

	area := surfaceArea(m)
	want := 4 * math.Pi
	s.Require().InDelta(want, area, want*0.15, "discretized area should be within 15%% of 4*pi")
}

func (s *ScenarioSuite) TestAxisAlignedCube() {
	engine, err := mdc.New(0.1, 0.2, 2)
	s.Require().NoError(err)
	defer engine.Close()

	m, err := engine.Tessellate(testfield.ChebyshevCube{HalfExtent: 0.5})
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)
}

func (s *ScenarioSuite) TestTwoDisjointSpheres() {
	engine, err := mdc.New(0.15, 0.1, 3)
	s.Require().NoError(err)
	defer engine.Close()

	f := testfield.Union{
		A: testfield.Sphere{Center: vec3(-1.5, 0, 0), Radius: 0.5},
		B: testfield.Sphere{Center: vec3(1.5, 0, 0), Radius: 0.5},
	}
	m, err := engine.Tessellate(f)
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)

	comps := countConnectedComponents(m)
	s.Require().Equal(2, comps, "expected two connected components for disjoint spheres")
}

func (s *ScenarioSuite) TestTangentSpheresStillProducesTwoComponents() {
	engine, err := mdc.New(0.25, 0.1, 4)
	s.Require().NoError(err)
	defer engine.Close()

	f := testfield.Union{
		A: testfield.Sphere{Center: vec3(-0.5, 0, 0), Radius: 0.5},
		B: testfield.Sphere{Center: vec3(0.5, 0, 0), Radius: 0.5},
	}
	m, err := engine.Tessellate(f)
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)
}

func (s *ScenarioSuite) TestThinShellHasFacesNearBothSurfaces() {
	engine, err := mdc.New(0.1, 0.1, 5)
	s.Require().NoError(err)
	defer engine.Close()

	m, err := engine.Tessellate(testfield.ThinShell{Thickness: 0.1})
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)

	for _, v := range m.Vertices {
		r := v.Len()
		inInner := r >= 0.90 && r <= 1.0
		inOuter := r >= 1.0 && r <= 1.10
		s.Require().True(inInner || inOuter, "vertex %v at radius %v lies off both shell surfaces", v, r)
	}
}

func (s *ScenarioSuite) TestFlatPlaneVerticesLieOnThePlane() {
	engine, err := mdc.New(0.2, 0.1, 6)
	s.Require().NoError(err)
	defer engine.Close()

	res := 0.2
	m, err := engine.Tessellate(testfield.Plane{Height: 0, Extent: 2})
	s.Require().NoError(err)
	s.Require().NotEmpty(m.Faces)

	for _, v := range m.Vertices {
		s.Require().LessOrEqual(math.Abs(v[1]), 0.05*res*4, "vertex %v should lie close to y=0", v)
	}
}

// TestRetryDeterminism checks that the same seed against the same
// field produces bit-identical meshes across independent runs.
func (s *ScenarioSuite) TestRetryDeterminism() {
	f := testfield.Sphere{Radius: 1}

	run := func() *mesh.Mesh {
		engine, err := mdc.New(0.25, 0.1, 42)
		s.Require().NoError(err)
		defer engine.Close()
		m, err := engine.Tessellate(f)
		s.Require().NoError(err)
		return m
	}

	a, b := run(), run()
	s.Require().Equal(a.Vertices, b.Vertices)
	s.Require().Equal(a.Faces, b.Faces)
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func TestRequireSmokeNewRejectsBadResolution(t *testing.T) {
	_, err := mdc.New(0, 0.1, 0)
	require.Error(t, err)
}
