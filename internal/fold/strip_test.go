package fold

import (
	"errors"
	"testing"
)

func TestNewStrip_Length(t *testing.T) {
	for level := 0; level <= 6; level++ {
		s, err := NewStrip(level)
		if err != nil {
			t.Fatalf("NewStrip(%d) error: %v", level, err)
		}
		want := (1 << level) + 1
		if s.Len() != want {
			t.Errorf("NewStrip(%d).Len() = %d, want %d", level, s.Len(), want)
		}
		if s.Level != level {
			t.Errorf("NewStrip(%d).Level = %d", level, s.Level)
		}
	}
}

func TestNewStrip_OutOfRange(t *testing.T) {
	for _, level := range []int{-1, MaxLevel + 1} {
		_, err := NewStrip(level)
		if !errors.Is(err, ErrAllocation) {
			t.Errorf("NewStrip(%d) error = %v, want ErrAllocation", level, err)
		}
	}
}

func TestConstant_FillsValue(t *testing.T) {
	s, err := Constant(3, 7.5)
	if err != nil {
		t.Fatalf("Constant error: %v", err)
	}
	for i, h := range s.D {
		if h != 7.5 {
			t.Errorf("D[%d] = %g, want 7.5", i, h)
		}
	}
}

func TestDouble_EvensCopyOddsZero(t *testing.T) {
	s := &Strip{Level: 1, D: []float64{1, 2, 3}}
	d, err := Double(s)
	if err != nil {
		t.Fatalf("Double error: %v", err)
	}
	if d.Level != 2 {
		t.Errorf("Double level = %d, want 2", d.Level)
	}
	want := []float64{1, 0, 2, 0, 3}
	if len(d.D) != len(want) {
		t.Fatalf("Double len = %d, want %d", len(d.D), len(want))
	}
	for i := range want {
		if d.D[i] != want[i] {
			t.Errorf("D[%d] = %g, want %g", i, d.D[i], want[i])
		}
	}
}

func TestDouble_LengthRelation(t *testing.T) {
	for level := 0; level <= 5; level++ {
		s, _ := NewStrip(level)
		d, err := Double(s)
		if err != nil {
			t.Fatalf("Double(level %d) error: %v", level, err)
		}
		if want := 2*(s.Len()-1) + 1; d.Len() != want {
			t.Errorf("Double(level %d).Len() = %d, want %d", level, d.Len(), want)
		}
	}
}

func TestDouble_NilStrip(t *testing.T) {
	_, err := Double(nil)
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("Double(nil) error = %v, want ErrInvariant", err)
	}
}
