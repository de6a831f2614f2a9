package unraid

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse indicates the server answered with a shape
	// the negotiated query set does not recognize.
	ErrMalformedResponse = errors.New("unraid: malformed response")

	errMutationRefused = errors.New("unraid: server refused mutation")
	errUnknownVersion  = errors.New("unraid: unparseable API version")
)

// IncompatibleVersionError is returned at setup when the server reports
// an API version below the minimum this client supports.
type IncompatibleVersionError struct {
	Version string
	Minimum string
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("unraid: API version %s is not supported (minimum %s)", e.Version, e.Minimum)
}

// IsIncompatibleVersion reports whether err is a version negotiation
// failure.
func IsIncompatibleVersion(err error) bool {
	var incompatible *IncompatibleVersionError
	return errors.As(err, &incompatible) || errors.Is(err, errUnknownVersion)
}
