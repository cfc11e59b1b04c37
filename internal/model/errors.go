package model

import "errors"

// Domain errors for model construction and evaluation.
var (
	// ErrEmptyModel indicates a model with no static term and no operators.
	ErrEmptyModel = errors.New("model: at least one static term or operator required")

	// ErrNotHermitian indicates a Hamiltonian term failed the Hermiticity check.
	ErrNotHermitian = errors.New("model: operator is not Hermitian")

	// ErrSignalCount indicates a signal list whose length does not match the
	// operator count.
	ErrSignalCount = errors.New("model: signal count does not match operator count")

	// ErrDimensionMismatch indicates operators of inconsistent dimensions.
	ErrDimensionMismatch = errors.New("model: operator dimensions inconsistent")

	// ErrFrameNotDiagonal indicates a rotating frame operator with
	// off-diagonal entries.
	ErrFrameNotDiagonal = errors.New("model: rotating frame operator must be diagonal")

	// ErrCarrierCount indicates RWA carrier frequencies whose length does not
	// match the operator count.
	ErrCarrierCount = errors.New("model: carrier frequency count does not match operator count")
)
