package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"not found", NotFound("Review not found"), KindNotFound},
		{"already exists", AlreadyExists("review", "duplicate"), KindAlreadyExists},
		{"auth", AuthFailed("nope"), KindAuth},
		{"validation", Invalid(FieldError{Path: "input.score", Message: "too big"}), KindValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if ErrorKindOf(tc.err) != tc.kind {
				t.Fatalf("kind = %s, want %s", ErrorKindOf(tc.err), tc.kind)
			}
		})
	}
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("load review: %w", NotFound(""))
	if !IsNotFound(err) {
		t.Fatalf("wrapped NotFound not detected")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatalf("plain error misread as NotFound")
	}
}

func TestExtensions(t *testing.T) {
	ext := Invalid(FieldError{Path: "input.email", Message: "bad"}).Extensions()
	if ext["code"] != string(KindValidation) {
		t.Fatalf("code = %v, want VALIDATION", ext["code"])
	}
	if _, ok := ext["fields"]; !ok {
		t.Fatalf("validation extensions missing fields")
	}

	ext = NotFound("").Extensions()
	if ext["code"] != string(KindNotFound) {
		t.Fatalf("code = %v, want NOT_FOUND", ext["code"])
	}
	if _, ok := ext["fields"]; ok {
		t.Fatalf("non-validation extensions should omit fields")
	}
}
