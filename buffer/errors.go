package buffer

import "errors"

var (
	ErrNoFileName = errors.New("no file name")
)
