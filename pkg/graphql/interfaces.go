package graphql

//go:generate mockgen -destination=mock_graphql.go -package=graphql github.com/mfreeman451/unradar/pkg/graphql Executor

import (
	"context"
	"encoding/json"
)

// Executor runs one GraphQL document with variables and returns the raw
// data payload. Implementations classify failures so callers can react:
// auth rejections satisfy IsUnauthorized, certificate failures satisfy
// IsTLSUntrusted, connection failures satisfy IsUnreachable, and
// server-reported errors unwrap to *ResponseError.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
}
