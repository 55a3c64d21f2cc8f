package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// RPC Errors.

	// ErrMethodNotFound is returned for RPC methods the snap does not serve.
	ErrMethodNotFound = errors.New("Method not found.") //nolint:revive,stylecheck // wire-visible message

	// Authentication Errors.

	// ErrNotAuthenticated indicates no credential is stored.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthenticated indicates the label service rejected the credential.
	// Stored state has been cleared by the time a caller sees it.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrRefreshFailed indicates the refresh mutation returned no credential.
	ErrRefreshFailed = errors.New("token refresh failed")

	// Configuration Errors.

	// ErrMissingConfig indicates a required setting has no value and no default.
	ErrMissingConfig = errors.New("missing required config")

	// ErrInvalidConfig indicates a setting could not be converted to its type.
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrorKind classifies how a GraphQL round trip failed.
type ErrorKind int

// Failure kinds surfaced by the request client.
const (
	// ErrorKindTransport is a network, encoding or body-decoding failure.
	ErrorKindTransport ErrorKind = iota + 1
	// ErrorKindHTTPStatus is a non-2xx HTTP response.
	ErrorKindHTTPStatus
	// ErrorKindGraphQL is an application error without the authentication code.
	ErrorKindGraphQL
	// ErrorKindUnauthenticated is an application error carrying UNAUTHENTICATED.
	ErrorKindUnauthenticated
)

// String returns the string representation.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindHTTPStatus:
		return "http_status"
	case ErrorKindGraphQL:
		return "graphql"
	case ErrorKindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// RequestError is the single error shape returned by the request client.
// Error() is the human-readable message; Kind lets callers branch without
// matching on it.
type RequestError struct {
	Kind ErrorKind
	// Code is the extensions.code of the first GraphQL error, if any.
	Code ErrorCode
	// StatusCode is set for ErrorKindHTTPStatus.
	StatusCode int
	Message    string
	// Errors holds the normalized GraphQL error set.
	Errors []GraphQLError
	Err    error
}

// NewTransportError wraps a transport-level failure.
func NewTransportError(err error) *RequestError {
	return &RequestError{Kind: ErrorKindTransport, Message: err.Error(), Err: err}
}

// NewHTTPStatusError builds the error for a non-2xx response. status is
// the status line as received, e.g. "503 Service Unavailable"; the standard
// text for statusCode is used when it carries none.
func NewHTTPStatusError(statusCode int, status string) *RequestError {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if text == "" {
		text = http.StatusText(statusCode)
	}
	return &RequestError{
		Kind:       ErrorKindHTTPStatus,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%d - %s", statusCode, text),
	}
}

// NewGraphQLError classifies a non-empty GraphQL error set.
func NewGraphQLError(errs []GraphQLError) *RequestError {
	e := &RequestError{Kind: ErrorKindGraphQL, Errors: errs, Message: unknownErrorMessage}
	if len(errs) == 0 {
		return e
	}
	e.Message = errs[0].Text()
	e.Code = errs[0].Code()
	if HasAuthError(errs) {
		e.Kind = ErrorKindUnauthenticated
		e.Code = ErrorCodeUnauthenticated
	}
	return e
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return unknownErrorMessage
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports ErrUnauthenticated for the authentication failure kind.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Kind == ErrorKindUnauthenticated
}

// IsUnauthenticated returns true if err is an authentication failure.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// ErrorKindOf returns the kind of a RequestError anywhere in err's chain,
// or zero if there is none.
func ErrorKindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return 0
}
