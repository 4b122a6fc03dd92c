// Package render writes assembled surfaces as PNG images: plain grayscale
// heightmaps or hypsometric tints over the classified terrain.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/talgya/ridgeline/internal/terrain"
)

// Grayscale renders the surface as a heightmap, darkest at the minimum
// height and brightest at the maximum. Columns map to x, rows to y.
func Grayscale(s *terrain.Surface) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Len(), s.Width()))
	min, max := s.Bounds()
	span := max - min
	if span == 0 {
		span = 1
	}
	for col := 0; col < s.Len(); col++ {
		for row := 0; row < s.Width(); row++ {
			v := (s.At(col, row) - min) / span
			img.SetGray(col, row, color.Gray{Y: uint8(v * 255)})
		}
	}
	return img
}

// classColors are the base hypsometric tints per terrain class.
var classColors = map[terrain.Class]color.RGBA{
	terrain.ClassOcean:    {R: 22, G: 60, B: 120, A: 255},
	terrain.ClassCoast:    {R: 224, G: 205, B: 154, A: 255},
	terrain.ClassPlains:   {R: 120, G: 160, B: 82, A: 255},
	terrain.ClassForest:   {R: 52, G: 110, B: 56, A: 255},
	terrain.ClassRiver:    {R: 70, G: 130, B: 180, A: 255},
	terrain.ClassDesert:   {R: 210, G: 180, B: 110, A: 255},
	terrain.ClassSwamp:    {R: 86, G: 108, B: 70, A: 255},
	terrain.ClassTundra:   {R: 190, G: 200, B: 205, A: 255},
	terrain.ClassMountain: {R: 130, G: 120, B: 115, A: 255},
}

// Hypsometric renders the classified surface with per-class tints, shaded
// by elevation so relief stays readable.
func Hypsometric(s *terrain.Surface, classes [][]terrain.Class) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Len(), s.Width()))
	min, max := s.Bounds()
	span := max - min
	if span == 0 {
		span = 1
	}
	for col := 0; col < s.Len(); col++ {
		for row := 0; row < s.Width(); row++ {
			base := classColors[classes[col][row]]
			elev := (s.At(col, row) - min) / span
			// Shade toward dark at low elevation, toward white at peaks.
			shade := 0.6 + 0.4*elev
			img.SetRGBA(col, row, color.RGBA{
				R: uint8(float64(base.R) * shade),
				G: uint8(float64(base.G) * shade),
				B: uint8(float64(base.B) * shade),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes the image to the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
