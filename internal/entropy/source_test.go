package entropy

import (
	"math"
	"testing"
)

func TestRand_Deterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 16; i++ {
		av, bv := a.Normal(), b.Normal()
		if av != bv {
			t.Fatalf("draw %d: %g != %g for equal seeds", i, av, bv)
		}
	}
}

func TestRand_SeedsDiffer(t *testing.T) {
	a := NewRand(1)
	b := NewRand(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Normal() != b.Normal() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestFixed(t *testing.T) {
	src := Fixed(1.5)
	for i := 0; i < 4; i++ {
		if v := src.Normal(); v != 1.5 {
			t.Errorf("draw %d = %g, want 1.5", i, v)
		}
	}
}

func TestScript_PlaybackAndCount(t *testing.T) {
	src := &Script{Samples: []float64{1, -2, 3}}

	want := []float64{1, -2, 3, 0, 0}
	for i, w := range want {
		if v := src.Normal(); v != w {
			t.Errorf("draw %d = %g, want %g", i, v, w)
		}
	}
	if src.Calls() != 5 {
		t.Errorf("Calls() = %d, want 5", src.Calls())
	}
}

func TestClient_NilFallback(t *testing.T) {
	// A nil client must fall back to the crypto/rand path rather than
	// panic, and the Box-Muller output must be a finite number.
	var c *Client
	for i := 0; i < 8; i++ {
		v := c.Normal()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("draw %d = %g, want finite", i, v)
		}
	}
	if c.Enabled() {
		t.Error("nil client reports Enabled")
	}
}

func TestNewClient_EmptyKey(t *testing.T) {
	if NewClient("") != nil {
		t.Error("NewClient(\"\") should return nil")
	}
}
