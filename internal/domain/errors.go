package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the expected failure modes surfaced to API callers.
// Anything outside this taxonomy propagates as an unclassified error and is
// logged at the boundary instead.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindAlreadyExists ErrorKind = "ALREADY_EXISTS"
	KindAuth          ErrorKind = "AUTH"
	KindValidation    ErrorKind = "VALIDATION"
)

// FieldError reports a validation failure for a single input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a typed domain error. Validation errors additionally carry
// per-field messages.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string { return e.Message }

// Extensions exposes the error classification to the GraphQL layer, which
// serializes it into the response's error extensions.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Kind)}
	if len(e.Fields) > 0 {
		fields := make([]map[string]interface{}, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, map[string]interface{}{"path": f.Path, "message": f.Message})
		}
		ext["fields"] = fields
	}
	return ext
}

// NotFound reports a missing entity. Ownership failures deliberately reuse
// this kind so callers cannot distinguish "not yours" from "doesn't exist".
func NotFound(message string) *Error {
	if message == "" {
		message = "ID not found"
	}
	return &Error{Kind: KindNotFound, Message: message}
}

// AlreadyExists reports a uniqueness violation.
func AlreadyExists(itemName, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("%s already exists", itemName)
	}
	return &Error{Kind: KindAlreadyExists, Message: message}
}

// AuthFailed reports a missing or insufficient caller capability.
func AuthFailed(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Invalid reports one or more field-level input failures.
func Invalid(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Invalid input", Fields: fields}
}

// ErrorKindOf returns the kind of err when it is a typed domain error, or
// an empty kind otherwise.
func ErrorKindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool { return ErrorKindOf(err) == KindNotFound }
