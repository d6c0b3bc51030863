package riskcore

import "errors"

var (
	// ErrMissingScaleDescriptor means a factor was referenced without a
	// configured scale. Configuration defect: the calling operation must
	// abort rather than guess a scale.
	ErrMissingScaleDescriptor = errors.New("missing scale descriptor")

	// ErrMissingValue marks a single out-of-range or sentinel answer.
	// Per-record condition: callers exclude the value, nothing aborts.
	ErrMissingValue = errors.New("missing value")

	// ErrInsufficientGroups means a gap was requested but fewer than two
	// groups are present in the filtered data.
	ErrInsufficientGroups = errors.New("insufficient groups for gap")

	// ErrIncompleteProfile means a barometer profile is missing at least one
	// configured question. The scorer refuses to score rather than default
	// the answer.
	ErrIncompleteProfile = errors.New("incomplete profile")

	// ErrInvalidAnswer means a barometer answer falls outside its scale.
	ErrInvalidAnswer = errors.New("answer out of scale range")

	// ErrUnknownGroupKey means a grouping was requested on a key the
	// aggregator does not support.
	ErrUnknownGroupKey = errors.New("unknown group key")
)
