package monitor

import "errors"

var (
	errNoServers           = errors.New("no servers configured")
	errServerIDRequired    = errors.New("server id is required")
	errEndpointRequired    = errors.New("server endpoint is required")
	errAPIKeyRequired      = errors.New("server api key is required")
	errDuplicateServer     = errors.New("duplicate server id")
	errNoSnapshot          = errors.New("no snapshot published yet")
	errUnknownParityAction = errors.New("unknown parity check action")
)
