package fuzzdex

import "errors"

var (
	// ErrAlreadySealed is returned by mutations after Finish.
	ErrAlreadySealed = errors.New("fuzzdex: index already sealed")
	// ErrNotSealed is returned by Search before Finish.
	ErrNotSealed = errors.New("fuzzdex: index not sealed")
	// ErrDuplicateIndex is returned when a phrase index is already in use.
	ErrDuplicateIndex = errors.New("fuzzdex: duplicate phrase index")
	// ErrInvalidArgument is returned for out-of-range query or phrase
	// parameters.
	ErrInvalidArgument = errors.New("fuzzdex: invalid argument")
)
