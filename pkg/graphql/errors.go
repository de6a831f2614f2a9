package graphql

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrUnauthorized indicates the server rejected the API key, either
	// with an HTTP auth status or an UNAUTHENTICATED GraphQL error code.
	ErrUnauthorized = errors.New("graphql: unauthorized")

	errInvalidEndpoint = errors.New("graphql: invalid endpoint")
	errHTTPStatus      = errors.New("graphql: unexpected HTTP status")
	errEmptyResponse   = errors.New("graphql: response contained no data")
	errRedirectLoop    = errors.New("graphql: too many redirects")
	errNotConnected    = errors.New("graphql: websocket not connected")
	errAckTimeout      = errors.New("graphql: timed out waiting for connection_ack")
	errUnexpectedAck   = errors.New("graphql: unexpected message while waiting for connection_ack")
	errAlreadyStarted  = errors.New("graphql: websocket already connected")
)

// unauthenticatedCode is the GraphQL extension code the server attaches
// to auth failures.
const unauthenticatedCode = "UNAUTHENTICATED"

// ResponseError carries the errors array of a GraphQL response envelope.
type ResponseError struct {
	Errors []ErrorEntry
}

// ErrorEntry is one entry of a GraphQL errors array.
type ErrorEntry struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: server reported an error"
	}

	if len(e.Errors) == 1 {
		return fmt.Sprintf("graphql: server reported an error: %s", e.Errors[0].Message)
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		msgs = append(msgs, entry.Message)
	}

	return fmt.Sprintf("graphql: server reported %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// IsUnauthorized reports whether err represents a rejected credential.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTLSUntrusted reports whether err is a certificate verification
// failure, the condition the client retries once with verification
// relaxed.
func IsTLSUntrusted(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}

	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}

	var invalidCert x509.CertificateInvalidError

	return errors.As(err, &invalidCert)
}

// IsUnreachable reports whether err is a connection-level failure:
// DNS resolution, refused connection, or timeout.
func IsUnreachable(err error) bool {
	if err == nil || IsTLSUntrusted(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
