package fold

import (
	"errors"
	"fmt"
)

// Error taxonomy. Configuration and allocation errors are recoverable by
// the caller; invariant violations indicate a defect in chain construction
// or misuse of the API and leave the chain unusable.
var (
	// ErrConfig reports invalid construction parameters.
	ErrConfig = errors.New("fold: invalid configuration")

	// ErrAllocation reports a strip buffer that cannot be allocated.
	ErrAllocation = errors.New("fold: allocation failed")

	// ErrInvariant reports an internal consistency failure.
	ErrInvariant = errors.New("fold: invariant violation")

	// ErrSizeMismatch reports strips whose levels do not satisfy an
	// operator's level relationship. It is a kind of ErrInvariant.
	ErrSizeMismatch = fmt.Errorf("strip size mismatch: %w", ErrInvariant)
)
