package pioemu

import "errors"

// Sentinel configuration errors, returned synchronously by Emulate before
// any cycle is produced, per spec §7.
var (
	ErrMissingStopWhen  = errors.New("pioemu: StopWhen predicate is required")
	ErrInvalidThreshold = errors.New("pioemu: pull/push threshold must be in 1..32")
	ErrInvalidSideSet   = errors.New("pioemu: side_set_count must be in 0..5")
	ErrInvalidWrapRange = errors.New("pioemu: wrap_target must be <= wrap_top and within the program")
)
