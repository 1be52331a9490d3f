// Package apierror classifies request failures into the stable error kinds
// exposed by the JSON API. Handlers map any error to a status code and body
// through this package; the kinds are a public contract, do not rename them.
package apierror

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable error classification string.
type Kind string

const (
	ConfigError        Kind = "config_error"
	MissingICCID       Kind = "missing_or_invalid_iccid"
	NotFound           Kind = "not_found"
	BadCoveragePayload Kind = "bad_coverage_payload"
	BadPlansPayload    Kind = "bad_plans_payload"
	ProxyError         Kind = "proxy_error"
)

// Error carries a kind plus optional cause and disambiguation suggestions.
type Error struct {
	Kind        Kind
	Suggestions []string
	cause       error
}

// E returns a bare typed error.
func E(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Wrap attaches a cause to a typed error.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

// WithSuggestions attaches candidate values for not_found responses.
func (e *Error) WithSuggestions(s []string) *Error {
	e.Suggestions = s
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case ConfigError:
		return http.StatusInternalServerError
	case MissingICCID:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case BadCoveragePayload, BadPlansPayload, ProxyError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body builds the JSON error body.
func (e *Error) Body() map[string]any {
	body := map[string]any{"error": string(e.Kind)}
	if e.Kind == NotFound && len(e.Suggestions) > 0 {
		body["suggestions"] = e.Suggestions
	}
	return body
}

// From converts any error into a typed one. Errors that are not already
// classified become proxy_error (network failures, unexpected conditions).
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(ProxyError, err)
}
