package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/ridgeline/internal/terrain"
)

func testSurface() *terrain.Surface {
	s := terrain.NewSurface(3)
	s.Append([]float64{0, 5, 10})
	s.Append([]float64{2, 4, 6})
	return s
}

func TestGrayscale_DimensionsAndExtremes(t *testing.T) {
	s := testSurface()
	img := Grayscale(s)

	b := img.Bounds()
	if b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("bounds = %dx%d, want 2x3", b.Dx(), b.Dy())
	}
	if v := img.GrayAt(0, 0).Y; v != 0 {
		t.Errorf("minimum height pixel = %d, want 0", v)
	}
	if v := img.GrayAt(0, 2).Y; v != 255 {
		t.Errorf("maximum height pixel = %d, want 255", v)
	}
}

func TestHypsometric_Dimensions(t *testing.T) {
	s := testSurface()
	classes := terrain.Classify(s, terrain.DefaultClassifyConfig())

	img := Hypsometric(s, classes)
	b := img.Bounds()
	if b.Dx() != 2 || b.Dy() != 3 {
		t.Fatalf("bounds = %dx%d, want 2x3", b.Dx(), b.Dy())
	}
	for col := 0; col < 2; col++ {
		for row := 0; row < 3; row++ {
			if img.RGBAAt(col, row).A != 255 {
				t.Fatalf("pixel (%d,%d) not opaque", col, row)
			}
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, Grayscale(testSurface())); err != nil {
		t.Fatalf("WritePNG error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 2 || cfg.Height != 3 {
		t.Errorf("decoded size = %dx%d, want 2x3", cfg.Width, cfg.Height)
	}
}
