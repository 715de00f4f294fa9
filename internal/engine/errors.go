package engine

import "errors"

var (
	// ErrConfiguration reports an invalid day configuration. Detected before
	// any agent state is touched, so a failed day leaves the population as it
	// was.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidTrade reports a swap that would violate slot ownership or
	// conservation. It indicates a broken internal invariant, not a runtime
	// condition, and aborts the run.
	ErrInvalidTrade = errors.New("invalid trade")
)
