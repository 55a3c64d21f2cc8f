package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const unknownErrorMessage = "Unknown error"

// ErrorCode is the machine-readable extensions.code of a GraphQL error.
type ErrorCode string

// Error codes returned by the label service.
const (
	ErrorCodeUnauthenticated     ErrorCode = "UNAUTHENTICATED"
	ErrorCodeTooManyRequests     ErrorCode = "TOO_MANY_REQUESTS"
	ErrorCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrorCodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrorCodeBadUserInput        ErrorCode = "BAD_USER_INPUT"
)

// IsKnown returns true if the code is one the label service documents.
func (c ErrorCode) IsKnown() bool {
	switch c {
	case ErrorCodeUnauthenticated, ErrorCodeTooManyRequests, ErrorCodeBadRequest,
		ErrorCodeInternalServerError, ErrorCodeBadUserInput:
		return true
	default:
		return false
	}
}

// Operation is a single GraphQL request body.
type Operation struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// CompactDocument collapses a multi-line GraphQL document into one line
// with single spaces between tokens.
func CompactDocument(doc string) string {
	return strings.Join(strings.Fields(doc), " ")
}

// ErrorExtensions carries the machine-readable part of a GraphQL error.
type ErrorExtensions struct {
	Code ErrorCode `json:"code,omitempty"`
}

// GraphQLError is one entry of a response's error list.
type GraphQLError struct {
	Message    string           `json:"message"`
	Path       []any            `json:"path,omitempty"`
	Extensions *ErrorExtensions `json:"extensions,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON accepts an error object or a bare string.
func (e *GraphQLError) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var msg string
		if err := json.Unmarshal(trimmed, &msg); err != nil {
			return err
		}
		*e = GraphQLError{Message: msg, raw: append(json.RawMessage(nil), trimmed...)}
		return nil
	}

	type plain GraphQLError
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("decode graphql error: %w", err)
	}
	*e = GraphQLError(p)
	e.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// Code returns the extensions code, or an empty code.
func (e GraphQLError) Code() ErrorCode {
	if e.Extensions == nil {
		return ""
	}
	return e.Extensions.Code
}

// Text returns the message, else the error's JSON form, else "Unknown error".
func (e GraphQLError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	switch s := string(e.raw); s {
	case "", "{}", "null", `""`:
		return unknownErrorMessage
	default:
		return s
	}
}

// HasAuthError returns true if any error carries the UNAUTHENTICATED code.
func HasAuthError(errs []GraphQLError) bool {
	for i := range errs {
		if errs[i].Code() == ErrorCodeUnauthenticated {
			return true
		}
	}
	return false
}

// Envelope is the response body of the GraphQL endpoint as sent on the wire.
// Some servers report a single "error" instead of, or next to, "errors".
type Envelope struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
	Error  *GraphQLError   `json:"error,omitempty"`
}

// Outcome is the normalized result of an Envelope: Success or Failure.
type Outcome interface {
	isOutcome()
}

// Success is an envelope without errors.
type Success struct {
	Data json.RawMessage
}

// Failure is an envelope with at least one error, in server order.
type Failure struct {
	Errors []GraphQLError
}

func (Success) isOutcome() {}
func (Failure) isOutcome() {}

// Normalize makes Error and Errors consistent views of the same failure set
// and classifies the envelope. After it returns, Error aliases Errors[0]
// whenever any error exists.
func (e *Envelope) Normalize() Outcome {
	if e.Error != nil && len(e.Errors) == 0 {
		e.Errors = []GraphQLError{*e.Error}
	}
	if len(e.Errors) > 0 && e.Error == nil {
		e.Error = &e.Errors[0]
	}

	if len(e.Errors) > 0 {
		return Failure{Errors: e.Errors}
	}
	return Success{Data: e.Data}
}

// Response is a successful GraphQL result handed to callers.
type Response struct {
	Data json.RawMessage
}

// Decode unmarshals the data payload into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return fmt.Errorf("decode response: %w", ErrNotFound)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
