// Generator state machine and level chain.
// Each Fold owns the buffers for one resolution level; the Chain drives
// them top-down, two emitted strips per one strip pulled from below.
package fold

import (
	"fmt"
	"math"
	"time"

	"github.com/talgya/ridgeline/internal/entropy"
)

// foldState drives the two-phase amortized update.
type foldState uint8

const (
	stateStart foldState = iota // ready to pull from the child and derive
	stateStore                  // second half of a pair is pending
	stateBusy                   // transition in flight; seen only on re-entry
)

// Fold is the per-level generator context.
type Fold struct {
	level    int
	state    foldState
	mean     float64
	scale    float64 // displacement amplitude for edge samples
	midscale float64 // displacement amplitude for diagonal midpoints

	// Strip slots. new and working live only between the two halves of an
	// update pair; regen and old persist across calls. All nil at level 0,
	// which synthesizes its samples from scratch.
	new     *Strip
	working *Strip
	regen   *Strip
	old     *Strip
}

// Config holds chain construction parameters.
type Config struct {
	Levels    int     // resolution exponent; strips hold 2^Levels+1 samples
	Smoothing bool    // enable the crease-removal pass
	Length    float64 // physical length of the update square at the top level
	Start     float64 // initial flat surface height
	Mean      float64 // mean height perturbations build on
	Dimension float64 // fractal dimension
	Source    entropy.Source
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Levels:    7,
		Smoothing: true,
		Length:    1.0,
		Start:     0.0,
		Mean:      0.0,
		Dimension: 0.65,
	}
}

// Chain is a level-indexed sequence of Folds. folds[i] generates level-i
// strips; the caller drives the topmost level through Next. A Chain is not
// safe for concurrent use.
type Chain struct {
	folds     []*Fold
	smoothing bool
	src       entropy.Source
}

// New builds the level chain. Every level from Levels down to 1 is seeded
// with constant strips at cfg.Start; level 0 holds no buffers. The physical
// length doubles toward the coarse levels so displacement amplitude tracks
// the scale each level represents.
func New(cfg Config) (*Chain, error) {
	if cfg.Levels < 0 {
		return nil, fmt.Errorf("levels %d: %w", cfg.Levels, ErrConfig)
	}
	if cfg.Levels > MaxLevel {
		return nil, fmt.Errorf("levels %d exceeds %d: %w", cfg.Levels, MaxLevel, ErrAllocation)
	}
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("length %g: %w", cfg.Length, ErrConfig)
	}
	src := cfg.Source
	if src == nil {
		src = entropy.NewRand(time.Now().UnixNano())
	}

	root2 := math.Sqrt(2)
	folds := make([]*Fold, cfg.Levels+1)
	length := cfg.Length
	for level := cfg.Levels; level >= 0; level-- {
		f := &Fold{
			level:    level,
			state:    stateStart,
			mean:     cfg.Mean,
			scale:    math.Pow(length, 2*cfg.Dimension),
			midscale: math.Pow(length*root2, 2*cfg.Dimension),
		}
		if level > 0 {
			var err error
			if f.regen, err = Constant(level, cfg.Start); err != nil {
				return nil, err
			}
			if f.old, err = Constant(level, cfg.Start); err != nil {
				return nil, err
			}
		}
		folds[level] = f
		length *= 2
	}
	return &Chain{folds: folds, smoothing: cfg.Smoothing, src: src}, nil
}

// Levels returns the chain's top resolution level.
func (c *Chain) Levels() int {
	return len(c.folds) - 1
}

// Width returns the sample count of every strip Next returns.
func (c *Chain) Width() int {
	return (1 << c.Levels()) + 1
}

// Next returns the next strip off the side of the surface. It can be
// called unboundedly many times; each call advances the lazy generation by
// one strip at the top level.
func (c *Chain) Next() (*Strip, error) {
	if c.folds == nil {
		return nil, fmt.Errorf("next on released chain: %w", ErrInvariant)
	}
	return c.next(len(c.folds) - 1)
}

func (c *Chain) next(level int) (*Strip, error) {
	f := c.folds[level]
	if f.level == 0 {
		// Base case: synthesize from scratch. This is the only place
		// entropy enters the system; higher levels redistribute it.
		s, err := NewStrip(0)
		if err != nil {
			return nil, err
		}
		s.D[0] = f.mean + f.scale*c.src.Normal()
		s.D[1] = f.mean + f.scale*c.src.Normal()
		return s, nil
	}

	switch f.state {
	case stateStart:
		// First half of a pair: pull a coarse strip, finish the pending
		// regen, derive the next working strip, hand back the completed
		// old one. new and working are nil on entry.
		f.state = stateBusy
		child, err := c.next(level - 1)
		if err != nil {
			f.state = stateStart
			return nil, err
		}
		if err := FillGaps(f.regen, f.scale, c.src); err != nil {
			return nil, err
		}
		working, err := Derive(child, f.regen, f.scale, f.midscale, c.src)
		if err != nil {
			return nil, err
		}
		f.working = working
		if c.smoothing {
			// Re-average the previous pass's displaced samples using the
			// strip just derived on one side and the completed strip on
			// the other. Must run before working is promoted to old.
			if err := Smooth(f.working, f.regen, f.old, f.scale, c.src); err != nil {
				return nil, err
			}
		}
		result := f.old
		f.new = child
		f.state = stateStore
		return result, nil

	case stateStore:
		// Second half: the regen completed last call is this call's
		// result. Promote working, reseed regen by doubling the coarse
		// strip; its gaps wait for the next START.
		f.state = stateBusy
		result := f.regen
		f.old = f.working
		f.working = nil
		regen, err := Double(f.new)
		if err != nil {
			return nil, err
		}
		f.regen = regen
		f.new = nil
		f.state = stateStart
		return result, nil

	default:
		return nil, fmt.Errorf("fold level %d in state %d: %w", f.level, f.state, ErrInvariant)
	}
}

// Release frees every strip buffer and the fold chain itself. The chain
// must not be used afterward; Next reports an invariant violation if it is.
func (c *Chain) Release() {
	for _, f := range c.folds {
		f.new = nil
		f.working = nil
		f.regen = nil
		f.old = nil
		f.state = stateBusy
	}
	c.folds = nil
}
