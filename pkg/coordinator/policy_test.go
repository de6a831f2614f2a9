package coordinator

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfreeman451/unradar/pkg/graphql"
	"github.com/mfreeman451/unradar/pkg/unraid"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "dns failure",
			err:  &net.DNSError{Err: "no such host", Name: "tower.local"},
			want: KindTransportUnreachable,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			want: KindTransportUnreachable,
		},
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("metrics: %w", context.DeadlineExceeded),
			want: KindTransportUnreachable,
		},
		{
			name: "unknown errors stay transient",
			err:  errors.New("something odd"),
			want: KindTransportUnreachable,
		},
		{
			name: "untrusted certificate",
			err:  &url.Error{Op: "Post", URL: "https://tower.local/graphql", Err: x509.UnknownAuthorityError{}},
			want: KindTLSUntrusted,
		},
		{
			name: "rejected credential",
			err:  fmt.Errorf("array: %w", graphql.ErrUnauthorized),
			want: KindAuthInvalid,
		},
		{
			name: "version below minimum",
			err:  &unraid.IncompatibleVersionError{Version: "4.1.0", Minimum: "4.20.0"},
			want: KindSchemaIncompatible,
		},
		{
			name: "undecodable response",
			err:  fmt.Errorf("%w: unexpected field type", unraid.ErrMalformedResponse),
			want: KindSchemaIncompatible,
		},
		{
			name: "graphql error payload",
			err:  &graphql.ResponseError{Errors: []graphql.ErrorEntry{{Message: "internal"}}},
			want: KindServerReported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestDecide(t *testing.T) {
	kinds := []ErrorKind{
		KindTransportUnreachable,
		KindTLSUntrusted,
		KindAuthInvalid,
		KindSchemaIncompatible,
		KindServerReported,
	}

	// Every kind is fatal while establishing a connection.
	for _, kind := range kinds {
		assert.Equalf(t, RecoveryFailSetup, Decide(kind, PhaseSetup), "setup phase, kind %s", kind)
	}

	steady := map[ErrorKind]Recovery{
		KindTransportUnreachable: RecoveryRetryNextCycle,
		KindTLSUntrusted:         RecoveryRetryNextCycle,
		KindAuthInvalid:          RecoveryReauth,
		KindSchemaIncompatible:   RecoveryDegradeUnit,
		KindServerReported:       RecoveryDegradeUnit,
	}

	for kind, want := range steady {
		assert.Equalf(t, want, Decide(kind, PhaseSteady), "steady phase, kind %s", kind)
	}
}
