package ports

import (
	"context"
	"encoding/json"
	"net/url"
)

// BackendRequest describes one call to the accounting REST API.
type BackendRequest struct {
	Method string
	// Path is relative to the configured base URL (e.g., "account/company/7").
	Path  string
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Token is the caller's bearer token.
	Token string
	// DataPath is a JMESPath expression selecting the payload from the
	// response envelope. Empty selects the default envelope handling.
	DataPath string
}

// BackendResponse is a normalized backend reply: Data is the selected payload.
type BackendResponse struct {
	Status  int
	Data    json.RawMessage
	Message string
}

// Backend performs requests against the REST API. Implementations normalize
// response envelopes and map failures onto internal/errors codes.
type Backend interface {
	Do(ctx context.Context, req BackendRequest) (BackendResponse, error)
}
