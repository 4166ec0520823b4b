package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

// normalize maps a raw backend reply onto a BackendResponse or an AppError.
//
// Accepted success shapes:
//
//	{"success": true, "data": <payload>, "message": "..."}
//	{"data": <payload>}
//	<payload>
//
// A dataPath, when set, is evaluated as JMESPath against the whole body.
func normalize(status int, body []byte, dataPath string) (ports.BackendResponse, error) {
	doc, decodeErr := decodeBody(body)
	message := envelopeMessage(doc)

	if status >= http.StatusBadRequest {
		return ports.BackendResponse{}, statusError(status, message)
	}
	if decodeErr != nil {
		return ports.BackendResponse{}, apperrors.Transport(decodeErr, apperrors.MsgUnreachable)
	}

	if env, ok := doc.(map[string]any); ok {
		if success, has := env["success"].(bool); has && !success {
			return ports.BackendResponse{}, apperrors.Rejected(status, message)
		}
	}

	selected, err := selectPayload(doc, dataPath)
	if err != nil {
		return ports.BackendResponse{}, err
	}

	resp := ports.BackendResponse{Status: status, Message: message}
	if selected != nil {
		data, merr := json.Marshal(selected)
		if merr != nil {
			return ports.BackendResponse{}, apperrors.Transport(merr, apperrors.MsgUnreachable)
		}
		resp.Data = data
	}
	return resp, nil
}

func decodeBody(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return doc, nil
}

func selectPayload(doc any, dataPath string) (any, error) {
	if expr := strings.TrimSpace(dataPath); expr != "" {
		v, err := jmespath.Search(expr, doc)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "evaluate data path %q", expr)
		}
		return v, nil
	}
	if env, ok := doc.(map[string]any); ok {
		if data, has := env["data"]; has {
			return data, nil
		}
	}
	return doc, nil
}

// envelopeMessage returns the server-provided text from "message" or "error".
func envelopeMessage(doc any) string {
	env, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, isStr := env[key].(string); isStr && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func statusError(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized:
		e := apperrors.Auth(apperrors.MsgSessionExpired)
		e.Status = status
		return e
	case status == http.StatusForbidden:
		e := apperrors.Permission(message)
		e.Status = status
		return e
	case status == http.StatusNotFound:
		e := apperrors.NotFound(apperrors.MsgNotFound)
		e.Status = status
		return e
	case status >= http.StatusInternalServerError:
		e := apperrors.Transport(fmt.Errorf("backend returned status %d: %s", status, message), apperrors.MsgUnreachable)
		e.Status = status
		return e
	default:
		return apperrors.Rejected(status, message)
	}
}

// ValidateDataPath reports whether expr is a usable JMESPath expression.
// An empty expression is valid and selects the default envelope handling.
func ValidateDataPath(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return fmt.Errorf("invalid data path %q: %w", expr, err)
	}
	return nil
}
