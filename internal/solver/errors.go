package solver

import "errors"

// Domain errors for solver configuration and batch handling.
var (
	// ErrNoModel indicates a configuration with neither Hamiltonian nor
	// dissipator terms.
	ErrNoModel = errors.New("solver: configuration specifies no model terms")

	// ErrRWAWithoutCarriers indicates a rotating wave approximation
	// requested on signal-driven operators without carrier frequencies.
	ErrRWAWithoutCarriers = errors.New("solver: rwa requires carrier frequencies for hamiltonian operators")

	// ErrRWAWithoutHamiltonian indicates a rotating wave approximation
	// requested on a model with no Hamiltonian part.
	ErrRWAWithoutHamiltonian = errors.New("solver: rwa requires a hamiltonian")

	// ErrBatchLength indicates list-valued batch inputs of mismatched
	// lengths.
	ErrBatchLength = errors.New("solver: batch inputs must have equal length or length one")

	// ErrEmptyBatch indicates a batch with no inputs at all.
	ErrEmptyBatch = errors.New("solver: batch requires at least one input")
)
