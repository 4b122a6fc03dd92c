// Midpoint-displacement operators. Each replaces one of the in-place
// pointer walks of the classic algorithm with index-based iteration; the
// neighbor-averaging formulas and boundary cases are preserved exactly.
package fold

import (
	"fmt"

	"github.com/talgya/ridgeline/internal/entropy"
)

// FillGaps completes a freshly doubled strip by replacing every odd-index
// gap sample with the displaced mean of its two even-index neighbors.
// Mutates s in place; each gap is touched exactly once.
func FillGaps(s *Strip, scale float64, src entropy.Source) error {
	if s == nil || s.Level < 1 {
		return fmt.Errorf("fill gaps: need a doubled strip: %w", ErrInvariant)
	}
	gaps := 1 << (s.Level - 1)
	for i := 0; i < gaps; i++ {
		j := 2 * i
		s.D[j+1] = (s.D[j]+s.D[j+2])/2 + scale*src.Normal()
	}
	return nil
}

// Derive computes a new strip between a coarse strip on one side and a
// same-resolution strip on the other. left must be exactly one level
// coarser than right; the result has right's level. Even indices are edge
// samples (mean of the two flanking columns), odd indices are diagonal
// midpoints (mean of four corners), each displaced by its amplitude.
func Derive(left, right *Strip, scale, midscale float64, src entropy.Source) (*Strip, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("derive: nil strip: %w", ErrInvariant)
	}
	if left.Level != right.Level-1 {
		return nil, fmt.Errorf("derive: levels %d and %d: %w", left.Level, right.Level, ErrSizeMismatch)
	}
	out, err := NewStrip(right.Level)
	if err != nil {
		return nil, err
	}
	n := 1 << left.Level
	for i := 0; i < n; i++ {
		out.D[2*i] = (left.D[i]+right.D[2*i])/2 + scale*src.Normal()
		out.D[2*i+1] = (left.D[i]+left.D[i+1]+right.D[2*i]+right.D[2*i+2])/4 + midscale*src.Normal()
	}
	// Trailing edge sample closes the strip.
	out.D[2*n] = (left.D[n]+right.D[2*n])/2 + scale*src.Normal()
	return out, nil
}

// Smooth recomputes the previously displaced samples of target (the even
// indices, carried forward by doubling) as the displaced mean of their
// surviving neighbors: the adjacent odd samples in target plus the
// corresponding samples in the left and right strips. The two boundary
// samples average three neighbors, interior samples four. All three strips
// must share a level. This is a cosmetic pass that reduces subdivision
// creases.
func Smooth(left, target, right *Strip, scale float64, src entropy.Source) error {
	if left == nil || target == nil || right == nil {
		return fmt.Errorf("smooth: nil strip: %w", ErrInvariant)
	}
	if left.Level != target.Level || target.Level != right.Level {
		return fmt.Errorf("smooth: levels %d, %d, %d: %w", left.Level, target.Level, right.Level, ErrSizeMismatch)
	}
	if target.Level < 1 {
		return fmt.Errorf("smooth: level 0 strip has no displaced samples: %w", ErrInvariant)
	}
	last := len(target.D) - 1
	target.D[0] = (left.D[0]+target.D[1]+right.D[0])/3 + scale*src.Normal()
	for j := 2; j < last; j += 2 {
		target.D[j] = (left.D[j]+target.D[j-1]+target.D[j+1]+right.D[j])/4 + scale*src.Normal()
	}
	target.D[last] = (left.D[last]+target.D[last-1]+right.D[last])/3 + scale*src.Normal()
	return nil
}
