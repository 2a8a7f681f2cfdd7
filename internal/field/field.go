// Package field defines the ImplicitFunction contract the engine samples
// against. It is deliberately tiny and dependency-free so every internal
// package can depend on it without pulling in the driver.
package field

import (
	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/geom"
)

// ImplicitFunction is the caller-supplied scalar field F: R3 -> R whose
// zero set is the surface to extract.
//
// Value must be a total function over the dilated bounding box. Normal
// is only ever called at points already known to lie on (or extremely
// close to) the zero isosurface, at an accepted zero crossing; callers
// whose field has Lipschitz constant greater than 1 must normalize it
// first, since the adaptive sampler's pruning bound in internal/voxelgrid
// assumes a Lipschitz constant of at most 1.
type ImplicitFunction interface {
	// BBox returns the region outside which F is guaranteed to keep a
	// consistent sign.
	BBox() geom.Box
	// Value samples the scalar field at p.
	Value(p mgl64.Vec3) float64
	// Normal returns the unit surface gradient at a point on the zero
	// isosurface.
	Normal(p mgl64.Vec3) mgl64.Vec3
}
