package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error classes surfaced by the client. Match them with errors.Is.
var (
	ErrNetwork      = errors.New("network failure")
	ErrValidation   = errors.New("validation failure")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrServer       = errors.New("server error")
)

// GraphQLError is one entry of a GraphQL "errors" array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Code returns extensions.code, if present.
func (e GraphQLError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return strings.TrimSpace(code)
}

// Error is a failed GraphQL operation.
type Error struct {
	Op       string
	Status   int
	Code     string
	Messages []string
	kind     error
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap returns the error class.
func (e *Error) Unwrap() error {
	return e.kind
}

func newGraphQLError(op string, status int, errs []GraphQLError) *Error {
	out := &Error{Op: op, Status: status}
	for _, ge := range errs {
		if msg := strings.TrimSpace(ge.Message); msg != "" {
			out.Messages = append(out.Messages, msg)
		}
		if out.Code == "" {
			out.Code = ge.Code()
		}
	}
	if len(out.Messages) == 0 {
		out.Messages = []string{"unknown error"}
	}
	out.kind = classify(out.Code, status, out.Messages)
	return out
}

var codeKinds = map[string]error{
	"NOT_FOUND":                 ErrNotFound,
	"BAD_USER_INPUT":            ErrValidation,
	"GRAPHQL_VALIDATION_FAILED": ErrValidation,
	"GRAPHQL_PARSE_FAILED":      ErrValidation,
	"UNAUTHENTICATED":           ErrUnauthorized,
	"FORBIDDEN":                 ErrUnauthorized,
	"INTERNAL_SERVER_ERROR":     ErrServer,
}

func classify(code string, status int, messages []string) error {
	if kind, ok := codeKinds[strings.ToUpper(code)]; ok {
		return kind
	}
	for _, msg := range messages {
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist") {
			return ErrNotFound
		}
	}
	if status >= 400 {
		return kindForStatus(status)
	}
	return ErrServer
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status >= 500:
		return ErrServer
	}
	return ErrNetwork
}
