package testfield

import (
	"fmt"
	"image"
	"io"

	"golang.org/x/image/bmp"

	"github.com/go-gl/mathgl/mgl64"

	"mdc/internal/geom"
)

// HeightmapField turns a decoded raster into a terrain-like density
// field: F(p) = p.y - height(x, z), where height samples the raster's
// luminance (scaled into [0, VerticalScale]) bilinearly and clamps at
// the raster's edges: a raster decode path that treats the image as a
// scalar displacement rather than GPU color data.
type HeightmapField struct {
	img           *image.Gray
	width, height int

	// Horizontal extent: the raster's width/height in pixels map onto
	// [0, HorizontalScale] world units on X and Z respectively.
	HorizontalScale float64
	VerticalScale   float64
}

// LoadHeightmapBMP decodes a BMP raster from r into a HeightmapField.
func LoadHeightmapBMP(r io.Reader, horizontalScale, verticalScale float64) (*HeightmapField, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("testfield: decode heightmap bmp: %w", err)
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return &HeightmapField{
		img:             gray,
		width:           bounds.Dx(),
		height:          bounds.Dy(),
		HorizontalScale: horizontalScale,
		VerticalScale:   verticalScale,
	}, nil
}

func (h *HeightmapField) BBox() geom.Box {
	return geom.NewBox(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{h.HorizontalScale, h.VerticalScale, h.HorizontalScale},
	)
}

// heightAt bilinearly samples the raster at world coordinates (x, z),
// clamping to the raster bounds outside [0, HorizontalScale].
func (h *HeightmapField) heightAt(x, z float64) float64 {
	u := clamp01(x/h.HorizontalScale) * float64(h.width-1)
	v := clamp01(z/h.HorizontalScale) * float64(h.height-1)

	x0, z0 := int(u), int(v)
	x1, z1 := x0+1, z0+1
	if x1 >= h.width {
		x1 = h.width - 1
	}
	if z1 >= h.height {
		z1 = h.height - 1
	}
	fx, fz := u-float64(x0), v-float64(z0)

	g00 := float64(h.img.GrayAt(x0, z0).Y) / 255.0
	g10 := float64(h.img.GrayAt(x1, z0).Y) / 255.0
	g01 := float64(h.img.GrayAt(x0, z1).Y) / 255.0
	g11 := float64(h.img.GrayAt(x1, z1).Y) / 255.0

	top := g00*(1-fx) + g10*fx
	bottom := g01*(1-fx) + g11*fx
	return (top*(1-fz) + bottom*fz) * h.VerticalScale
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (h *HeightmapField) Value(p mgl64.Vec3) float64 {
	return p[1] - h.heightAt(p[0], p[2])
}

// Normal is estimated by central differences of the height function,
// since the raster gives us no analytic gradient.
func (h *HeightmapField) Normal(p mgl64.Vec3) mgl64.Vec3 {
	const eps = 1e-3
	dx := h.heightAt(p[0]+eps, p[2]) - h.heightAt(p[0]-eps, p[2])
	dz := h.heightAt(p[0], p[2]+eps) - h.heightAt(p[0], p[2]-eps)
	n := mgl64.Vec3{-dx / (2 * eps), 1, -dz / (2 * eps)}
	return n.Normalize()
}
