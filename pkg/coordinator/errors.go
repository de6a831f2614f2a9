package coordinator

import "errors"

var (
	ErrUnsupportedMutation = errors.New("unsupported mutation")
)
