// Package errors pkg/api/errors.go provides errors for the api package.

package api

import "errors"

var (
	// ErrServerNotFound marks requests naming a server the monitor does
	// not manage. Implementations of MonitorService return it so
	// handlers can map it to a 404.
	ErrServerNotFound = errors.New("server not found")

	errInvalidAction = errors.New("invalid action")
)
