package fold

import (
	"errors"
	"testing"

	"github.com/talgya/ridgeline/internal/entropy"
)

// With zero noise every operator reduces to exact neighbor means, which
// gives fully deterministic golden values.

func TestFillGaps_ExactMeans(t *testing.T) {
	s := &Strip{Level: 2, D: []float64{0, 0, 4, 0, 8}}
	if err := FillGaps(s, 1.0, entropy.Fixed(0)); err != nil {
		t.Fatalf("FillGaps error: %v", err)
	}
	want := []float64{0, 2, 4, 6, 8}
	for i := range want {
		if s.D[i] != want[i] {
			t.Errorf("D[%d] = %g, want %g", i, s.D[i], want[i])
		}
	}
}

func TestFillGaps_Displacement(t *testing.T) {
	s := &Strip{Level: 1, D: []float64{0, 0, 4}}
	if err := FillGaps(s, 2.0, entropy.Fixed(1)); err != nil {
		t.Fatalf("FillGaps error: %v", err)
	}
	// Gap = mean(0, 4) + scale*noise = 2 + 2.
	if s.D[1] != 4 {
		t.Errorf("D[1] = %g, want 4", s.D[1])
	}
}

func TestFillGaps_LevelZero(t *testing.T) {
	s := &Strip{Level: 0, D: []float64{0, 0}}
	if err := FillGaps(s, 1.0, entropy.Fixed(0)); !errors.Is(err, ErrInvariant) {
		t.Errorf("FillGaps(level 0) error = %v, want ErrInvariant", err)
	}
}

func TestDerive_ExactMeans(t *testing.T) {
	left := &Strip{Level: 1, D: []float64{0, 2, 4}}
	right := &Strip{Level: 2, D: []float64{1, 1, 1, 1, 1}}

	out, err := Derive(left, right, 1.0, 1.0, entropy.Fixed(0))
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	if out.Level != 2 {
		t.Errorf("out.Level = %d, want 2", out.Level)
	}
	want := []float64{0.5, 1, 1.5, 2, 2.5}
	for i := range want {
		if out.D[i] != want[i] {
			t.Errorf("D[%d] = %g, want %g", i, out.D[i], want[i])
		}
	}
}

func TestDerive_SizeMismatch(t *testing.T) {
	a := &Strip{Level: 1, D: []float64{0, 0, 0}}
	b := &Strip{Level: 1, D: []float64{0, 0, 0}}

	_, err := Derive(a, b, 1.0, 1.0, entropy.Fixed(0))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Derive error = %v, want ErrSizeMismatch", err)
	}
	// Size mismatch is a kind of invariant violation.
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("Derive error = %v, want ErrInvariant in chain", err)
	}
}

func TestSmooth_ExactMeans(t *testing.T) {
	left := &Strip{Level: 2, D: []float64{1, 1, 1, 1, 1}}
	target := &Strip{Level: 2, D: []float64{0, 2, 4, 6, 8}}
	right := &Strip{Level: 2, D: []float64{3, 3, 3, 3, 3}}

	if err := Smooth(left, target, right, 1.0, entropy.Fixed(0)); err != nil {
		t.Fatalf("Smooth error: %v", err)
	}

	// Boundary samples average 3 neighbors, interior samples 4. The odd
	// samples are untouched.
	want := []float64{
		(1.0 + 2.0 + 3.0) / 3,
		2,
		(1.0 + 2.0 + 6.0 + 3.0) / 4,
		6,
		(1.0 + 6.0 + 3.0) / 3,
	}
	for i := range want {
		if target.D[i] != want[i] {
			t.Errorf("D[%d] = %g, want %g", i, target.D[i], want[i])
		}
	}
}

func TestSmooth_SizeMismatch(t *testing.T) {
	a := &Strip{Level: 1, D: []float64{0, 0, 0}}
	b := &Strip{Level: 2, D: []float64{0, 0, 0, 0, 0}}

	if err := Smooth(a, b, b, 1.0, entropy.Fixed(0)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Smooth error = %v, want ErrSizeMismatch", err)
	}
}
