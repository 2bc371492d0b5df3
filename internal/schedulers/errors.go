package schedulers

import "errors"

var (
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidProcess   = errors.New("invalid process descriptor")
)
