package gql

import (
	"errors"
	"testing"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/domain"
)

func validSignUp() signUpInput {
	return signUpInput{
		Username:    "moviegoer",
		Email:       "moviegoer@example.com",
		Password:    "longenough",
		Name:        "Movie Goer",
		DateOfBirth: graphql.Time{Time: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		UserType:    "REGULAR",
	}
}

func fieldPaths(t *testing.T, err error) map[string]bool {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a domain error", err)
	}
	if de.Kind != domain.KindValidation {
		t.Fatalf("error kind = %s, want VALIDATION", de.Kind)
	}
	paths := map[string]bool{}
	for _, f := range de.Fields {
		paths[f.Path] = true
	}
	return paths
}

func TestValidateSignUp(t *testing.T) {
	if err := validateSignUp(validSignUp()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	input := validSignUp()
	input.Username = "ab"
	input.Email = "not-an-email"
	input.Password = "short"
	input.DateOfBirth = graphql.Time{Time: time.Now().AddDate(-10, 0, 0)}
	err := validateSignUp(input)
	paths := fieldPaths(t, err)
	for _, want := range []string{"input.username", "input.email", "input.password", "input.dateOfBirth"} {
		if !paths[want] {
			t.Fatalf("missing field error for %s in %v", want, paths)
		}
	}

	input = validSignUp()
	bad := "not a url"
	input.AvatarURL = &bad
	if paths := fieldPaths(t, validateSignUp(input)); !paths["input.avatarUrl"] {
		t.Fatalf("bad avatar URL not flagged: %v", paths)
	}
}

func TestValidateCreateReview(t *testing.T) {
	valid := createReviewInput{Title: "t", Content: "c", Score: 10}
	if err := validateCreateReview(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	input := createReviewInput{Title: "", Content: "", Score: 11}
	paths := fieldPaths(t, validateCreateReview(input))
	for _, want := range []string{"input.title", "input.content", "input.score"} {
		if !paths[want] {
			t.Fatalf("missing field error for %s in %v", want, paths)
		}
	}
}

func TestValidateEditReview(t *testing.T) {
	if err := validateEditReview(editReviewInput{}); err != nil {
		t.Fatalf("empty edit rejected: %v", err)
	}

	empty := ""
	negative := int32(-1)
	input := editReviewInput{Title: &empty, Score: &negative}
	paths := fieldPaths(t, validateEditReview(input))
	if !paths["input.title"] || !paths["input.score"] {
		t.Fatalf("edit validation missed fields: %v", paths)
	}
}
