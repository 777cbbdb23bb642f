package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind is the structured classification every view consumes instead of
// switching on raw status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Field-level validation messages, keyed by field name.
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s (%d)", e.Kind, e.Status)
}

// KindOf extracts the classification from any error returned by the client.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Kind
	}
	return KindUnknown
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

// classify maps a non-2xx response to a structured error. The backend
// replies with either {"detail": "..."} / {"error": "..."} or a map of
// field name to message list for validation failures.
func classify(status int, body []byte) *Error {
	e := &Error{Status: status}

	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusForbidden:
		e.Kind = KindForbidden
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusBadRequest:
		e.Kind = KindValidation
	default:
		e.Kind = KindUnknown
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}

	for _, key := range []string{"detail", "error", "message"} {
		var msg string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil {
			e.Message = msg
			delete(payload, key)
			break
		}
	}

	for field, raw := range payload {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			if e.Fields == nil {
				e.Fields = map[string][]string{}
			}
			e.Fields[field] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			if e.Fields == nil {
				e.Fields = map[string][]string{}
			}
			e.Fields[field] = []string{msg}
		}
	}

	// A 400 carrying a "name" field error on categories is a duplicate
	// name; the backend has no dedicated 409 for it.
	if e.Kind == KindValidation {
		if _, ok := e.Fields["name"]; ok {
			e.Kind = KindConflict
		}
	}

	return e
}
