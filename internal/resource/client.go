package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

// Scope is the caller identity every request is issued under.
type Scope struct {
	Token     string
	CompanyID string
}

// ScopeFromSession extracts the request scope from a login session.
func ScopeFromSession(sess domainauth.Session) Scope {
	return Scope{Token: sess.AuthToken, CompanyID: sess.CompanyID}
}

func (s Scope) check() error {
	sess := domainauth.Session{AuthToken: s.Token, CompanyID: s.CompanyID}
	if !sess.HasToken() || !sess.HasCompany() {
		return apperrors.Auth("missing auth token or company id")
	}
	return nil
}

// Client is a typed CRUD client for one entity. Lists are full replaces;
// nothing is cached.
type Client[T any] struct {
	backend  ports.Backend
	endpoint Endpoint
	scope    Scope
}

// NewClient builds a client for endpoint under scope.
func NewClient[T any](b ports.Backend, endpoint Endpoint, scope Scope) *Client[T] {
	if b == nil {
		panic("backend is required")
	}
	return &Client[T]{backend: b, endpoint: endpoint, scope: scope}
}

// Endpoint returns the endpoint the client talks to.
func (c *Client[T]) Endpoint() Endpoint { return c.endpoint }

// List fetches the company's records. filters are passed through as query parameters.
func (c *Client[T]) List(ctx context.Context, filters url.Values) ([]T, error) {
	if err := c.scope.check(); err != nil {
		return nil, err
	}

	path, query := c.endpoint.listPath(c.scope.CompanyID)
	for k, vs := range filters {
		if query == nil {
			query = url.Values{}
		}
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](resp.Data)
}

// Get fetches one record.
func (c *Client[T]) Get(ctx context.Context, id model.ID) (T, error) {
	var zero T
	if err := c.scope.check(); err != nil {
		return zero, err
	}
	if id.IsZero() {
		return zero, apperrors.Validation("record id is required")
	}

	resp, err := c.do(ctx, http.MethodGet, c.endpoint.itemPath(id), nil, nil)
	if err != nil {
		return zero, err
	}
	if isNull(resp.Data) {
		return zero, apperrors.NotFound(apperrors.MsgNotFound)
	}
	return decodeOne[T](resp.Data, zero)
}

// Create posts payload and returns the created record, or payload when the
// backend does not echo it.
func (c *Client[T]) Create(ctx context.Context, payload T) (T, error) {
	if err := c.scope.check(); err != nil {
		return payload, err
	}
	body, err := c.body(payload)
	if err != nil {
		return payload, err
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoint.Resource, nil, body)
	if err != nil {
		return payload, err
	}
	return decodeOne(resp.Data, payload)
}

// Update replaces record id with payload.
func (c *Client[T]) Update(ctx context.Context, id model.ID, payload T) (T, error) {
	if err := c.scope.check(); err != nil {
		return payload, err
	}
	if id.IsZero() {
		return payload, apperrors.Validation("record id is required")
	}
	body, err := c.body(payload)
	if err != nil {
		return payload, err
	}

	resp, err := c.do(ctx, http.MethodPut, c.endpoint.itemPath(id), nil, body)
	if err != nil {
		return payload, err
	}
	return decodeOne(resp.Data, payload)
}

// Delete removes record id.
func (c *Client[T]) Delete(ctx context.Context, id model.ID) error {
	if err := c.scope.check(); err != nil {
		return err
	}
	if id.IsZero() {
		return apperrors.Validation("record id is required")
	}
	_, err := c.do(ctx, http.MethodDelete, c.endpoint.itemPath(id), nil, nil)
	return err
}

func (c *Client[T]) do(ctx context.Context, method, path string, query url.Values, body any) (ports.BackendResponse, error) {
	return c.backend.Do(ctx, ports.BackendRequest{
		Method:   method,
		Path:     path,
		Query:    query,
		Body:     body,
		Token:    c.scope.Token,
		DataPath: c.endpoint.DataPath,
	})
}

// body converts payload into a JSON object, drops an empty id and injects the company field.
func (c *Client[T]) body(payload T) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode payload")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "payload must encode to an object")
	}

	if id, ok := obj["id"]; ok && (id == nil || id == "") {
		delete(obj, "id")
	}
	if c.endpoint.CompanyField != "" {
		obj[c.endpoint.CompanyField] = c.scope.CompanyID
	}
	return obj, nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeList[T any](data json.RawMessage) ([]T, error) {
	if isNull(data) {
		return []T{}, nil
	}
	if trimmed := bytes.TrimSpace(data); trimmed[0] != '[' {
		return nil, apperrors.Transport(errUnexpectedShape, apperrors.MsgUnreachable)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.Transport(err, apperrors.MsgUnreachable)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeOne decodes an object payload, returning fallback when the payload is
// absent or not an object.
func decodeOne[T any](data json.RawMessage, fallback T) (T, error) {
	trimmed := bytes.TrimSpace(data)
	if isNull(trimmed) || trimmed[0] != '{' {
		return fallback, nil
	}
	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return fallback, apperrors.Transport(err, apperrors.MsgUnreachable)
	}
	return out, nil
}
