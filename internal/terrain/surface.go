// Package terrain assembles streamed height strips into a surface and
// derives terrain types from elevation and climate layers.
package terrain

import "fmt"

// Surface accumulates fixed-width height columns into a grid. Column i is
// the i-th strip pulled off the generator; adjacent columns are adjacent
// cross-sections of the terrain.
type Surface struct {
	width int
	cols  [][]float64
}

// NewSurface creates an empty surface for strips of the given width.
func NewSurface(width int) *Surface {
	return &Surface{width: width}
}

// Append adds one strip as the next column. The samples are copied.
func (s *Surface) Append(heights []float64) error {
	if len(heights) != s.width {
		return fmt.Errorf("append: strip has %d samples, surface width is %d", len(heights), s.width)
	}
	col := make([]float64, s.width)
	copy(col, heights)
	s.cols = append(s.cols, col)
	return nil
}

// Width returns the number of samples per column.
func (s *Surface) Width() int {
	return s.width
}

// Len returns the number of columns appended so far.
func (s *Surface) Len() int {
	return len(s.cols)
}

// At returns the height at the given column and row.
func (s *Surface) At(col, row int) float64 {
	return s.cols[col][row]
}

// Column returns the backing slice for one column.
func (s *Surface) Column(col int) []float64 {
	return s.cols[col]
}

// Bounds returns the minimum and maximum height on the surface.
// A surface with no columns reports (0, 0).
func (s *Surface) Bounds() (min, max float64) {
	if len(s.cols) == 0 {
		return 0, 0
	}
	min, max = s.cols[0][0], s.cols[0][0]
	for _, col := range s.cols {
		for _, h := range col {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
	}
	return min, max
}

// Mean returns the mean height across the surface.
func (s *Surface) Mean() float64 {
	if len(s.cols) == 0 {
		return 0
	}
	sum := 0.0
	for _, col := range s.cols {
		for _, h := range col {
			sum += h
		}
	}
	return sum / float64(len(s.cols)*s.width)
}

// String returns a summary of the surface.
func (s *Surface) String() string {
	return fmt.Sprintf("Surface(width=%d, columns=%d)", s.width, len(s.cols))
}
