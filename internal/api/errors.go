package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// TransportError means the request never completed: the network was
// down, the connection dropped, or the context was cancelled.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError carries the server's per-field validation messages
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.FirstMessage())
}

// FirstMessage returns the first actionable message, in stable field
// order, rather than a dump of the whole payload
func (e *ValidationError) FirstMessage() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if len(e.Fields[f]) > 0 {
			return fmt.Sprintf("%s %s", f, e.Fields[f][0])
		}
	}
	return "invalid request"
}

// AuthError means the token was rejected or has expired. It is fatal
// to the current session.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

// ServerError is any other non-2xx response
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// errorEnvelope is the structured error body the server sends.
// Validation failures populate Errors; everything else populates Error.
type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Errors map[string][]string `json:"errors"`
}

func decodeError(status int, body []byte) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		msg := ""
		var env errorEnvelope
		if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
			msg = env.Error.Message
		}
		return &AuthError{Status: status, Message: msg}
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Errors) > 0 {
			return &ValidationError{Fields: env.Errors}
		}
		if env.Error != nil {
			return &ServerError{Status: status, Code: env.Error.Code, Message: env.Error.Message}
		}
	}
	return &ServerError{Status: status, Message: string(body)}
}

// IsAuthError reports whether the error is fatal to the session
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// UserMessage reduces any error from the client to the single
// human-readable string shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "Could not reach the server. Please try again."
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.FirstMessage()
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return "Your session has expired. Please sign in again."
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
