package coordinator

import (
	"errors"

	"github.com/mfreeman451/unradar/pkg/graphql"
	"github.com/mfreeman451/unradar/pkg/unraid"
)

// ErrorKind classifies a unit failure for the recovery policy.
// Degenerate computations (zero-denominator percentages) never reach
// classification; they resolve to an undefined value in pkg/models.
type ErrorKind string

const (
	KindTransportUnreachable ErrorKind = "transport_unreachable"
	KindTLSUntrusted         ErrorKind = "tls_untrusted"
	KindAuthInvalid          ErrorKind = "auth_invalid"
	KindSchemaIncompatible   ErrorKind = "schema_incompatible"
	KindServerReported       ErrorKind = "server_reported"
)

// Phase tells the policy whether a failure happened while establishing
// a server connection or during steady-state polling.
type Phase string

const (
	PhaseSetup  Phase = "setup"
	PhaseSteady Phase = "steady"
)

// Recovery is the action the policy prescribes for a classified failure.
type Recovery string

const (
	// RecoveryFailSetup surfaces the failure to the configuration layer.
	RecoveryFailSetup Recovery = "fail_setup"

	// RecoveryRetryNextCycle keeps the prior snapshot and waits for the
	// next cycle.
	RecoveryRetryNextCycle Recovery = "retry_next_cycle"

	// RecoveryReauth marks the whole coordinator as needing fresh
	// credentials; no unit produces fresh data until they arrive.
	RecoveryReauth Recovery = "reauth"

	// RecoveryDegradeUnit carries the affected unit's prior data forward
	// and records a degraded flag.
	RecoveryDegradeUnit Recovery = "degrade_unit"
)

// Classify maps a unit error onto the taxonomy. TLS failures are
// checked first: a certificate error wrapped by the HTTP client also
// satisfies the generic network error interface and would otherwise
// classify as unreachable.
func Classify(err error) ErrorKind {
	switch {
	case graphql.IsTLSUntrusted(err):
		return KindTLSUntrusted
	case graphql.IsUnauthorized(err):
		return KindAuthInvalid
	case unraid.IsIncompatibleVersion(err), errors.Is(err, unraid.ErrMalformedResponse):
		return KindSchemaIncompatible
	case isServerReported(err):
		return KindServerReported
	case graphql.IsUnreachable(err):
		return KindTransportUnreachable
	default:
		// DNS, dial, timeout and anything unrecognized: transient
		// transport trouble, retried next cycle.
		return KindTransportUnreachable
	}
}

func isServerReported(err error) bool {
	var respErr *graphql.ResponseError
	return errors.As(err, &respErr)
}

// Decide returns the recovery action for a classified failure. Every
// kind is fatal during setup so the configuration layer can show an
// actionable message; steady-state failures recover locally.
func Decide(kind ErrorKind, phase Phase) Recovery {
	if phase == PhaseSetup {
		return RecoveryFailSetup
	}

	switch kind {
	case KindAuthInvalid:
		return RecoveryReauth
	case KindSchemaIncompatible, KindServerReported:
		return RecoveryDegradeUnit
	case KindTransportUnreachable, KindTLSUntrusted:
		return RecoveryRetryNextCycle
	default:
		return RecoveryRetryNextCycle
	}
}
