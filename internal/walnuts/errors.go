package walnuts

import "errors"

var (
	// ErrInvalidConfig indicates a step size, tolerance or limit out of range.
	ErrInvalidConfig = errors.New("walnuts: invalid configuration")

	// ErrNilTarget indicates a sampler was created without a target.
	ErrNilTarget = errors.New("walnuts: nil target")

	// ErrDimensionMismatch indicates an initial position whose length differs
	// from the target dimension.
	ErrDimensionMismatch = errors.New("walnuts: dimension mismatch between position and target")

	// ErrInvalidPosition indicates an initial position with NaN or Inf entries.
	ErrInvalidPosition = errors.New("walnuts: invalid initial position (NaN or Inf detected)")
)
