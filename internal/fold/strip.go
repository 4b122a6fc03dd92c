// Package fold implements a streaming midpoint-displacement terrain
// generator. A chain of per-resolution-level contexts cooperatively
// produces height strips two at a time, each level pulling one strip from
// the coarser level below for every two it emits, so generation runs
// incrementally and indefinitely.
package fold

import "fmt"

// MaxLevel bounds strip allocation. A level-30 strip already holds over a
// billion samples; anything larger is treated as an allocation failure
// rather than handed to make.
const MaxLevel = 30

// Strip is one resolution level's sequence of height samples. A level-L
// strip holds 2^L+1 samples. Once fully computed its content does not
// change except during an explicit smoothing pass.
type Strip struct {
	Level int
	D     []float64
}

// NewStrip allocates an empty strip for the given level.
func NewStrip(level int) (*Strip, error) {
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("strip level %d out of range [0, %d]: %w", level, MaxLevel, ErrAllocation)
	}
	return &Strip{
		Level: level,
		D:     make([]float64, (1<<level)+1),
	}, nil
}

// Constant allocates a strip with every sample set to value. Used to seed
// the initial old/regen buffers at construction.
func Constant(level int, value float64) (*Strip, error) {
	s, err := NewStrip(level)
	if err != nil {
		return nil, err
	}
	for i := range s.D {
		s.D[i] = value
	}
	return s, nil
}

// Double produces a level L+1 strip from a level L strip: original samples
// land on the even indices, the odd "gap" positions stay at the zero
// placeholder until FillGaps runs.
func Double(s *Strip) (*Strip, error) {
	if s == nil {
		return nil, fmt.Errorf("double: nil strip: %w", ErrInvariant)
	}
	p, err := NewStrip(s.Level + 1)
	if err != nil {
		return nil, err
	}
	n := 1 << s.Level
	for i := 0; i < n; i++ {
		p.D[2*i] = s.D[i]
	}
	p.D[2*n] = s.D[n]
	return p, nil
}

// Len returns the number of samples in the strip.
func (s *Strip) Len() int {
	return len(s.D)
}
