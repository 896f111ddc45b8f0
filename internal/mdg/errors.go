package mdg

import "errors"

var (
	errInvalidInstrument = errors.New("mdg: invalid instrument")
	errEmptyTop          = errors.New("mdg: empty top level")
	errCrossedBook       = errors.New("mdg: crossed book")
	errUnsortedLevels    = errors.New("mdg: unsorted levels")
)
