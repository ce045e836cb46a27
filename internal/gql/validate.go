package gql

import (
	"net/mail"
	"net/url"
	"time"

	"github.com/cinegraph/cinegraph/internal/domain"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	minUserAgeYears   = 14
)

// fieldChecks accumulates per-field validation failures so a single
// Validation error can report all of them at once.
type fieldChecks struct {
	fields []domain.FieldError
}

func (c *fieldChecks) fail(path, message string) {
	c.fields = append(c.fields, domain.FieldError{Path: path, Message: message})
}

func (c *fieldChecks) nonEmpty(path, value string) {
	if value == "" {
		c.fail(path, "must not be empty")
	}
}

func (c *fieldChecks) optionalNonEmpty(path string, value *string) {
	if value != nil && *value == "" {
		c.fail(path, "must not be empty")
	}
}

func (c *fieldChecks) scoreInRange(path string, score int32) {
	if score < domain.MinReviewScore || score > domain.MaxReviewScore {
		c.fail(path, "must be between 0 and 10")
	}
}

func (c *fieldChecks) validURL(path string, value *string) {
	if value == nil {
		return
	}
	parsed, err := url.Parse(*value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		c.fail(path, "must be a valid URL")
	}
}

func (c *fieldChecks) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return domain.Invalid(c.fields...)
}

func validateSignUp(input signUpInput) error {
	var c fieldChecks
	if n := len(input.Username); n < minUsernameLength || n > maxUsernameLength {
		c.fail("input.username", "must be between 3 and 30 characters")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		c.fail("input.email", "must be a valid email address")
	}
	if len(input.Password) < minPasswordLength {
		c.fail("input.password", "must be at least 8 characters")
	}
	c.nonEmpty("input.name", input.Name)
	if !userTypeFromEnum(input.UserType).Valid() {
		c.fail("input.userType", "must be CRITIC or REGULAR")
	}
	if input.DateOfBirth.After(time.Now().AddDate(-minUserAgeYears, 0, 0)) {
		c.fail("input.dateOfBirth", "must be at least 14 years old")
	}
	c.validURL("input.avatarUrl", input.AvatarURL)
	return c.err()
}

func validateCreateReview(input createReviewInput) error {
	var c fieldChecks
	c.nonEmpty("input.title", input.Title)
	c.nonEmpty("input.content", input.Content)
	c.scoreInRange("input.score", input.Score)
	c.validURL("input.externalUrl", input.ExternalURL)
	return c.err()
}

func validateEditReview(input editReviewInput) error {
	var c fieldChecks
	c.optionalNonEmpty("input.title", input.Title)
	c.optionalNonEmpty("input.content", input.Content)
	if input.Score != nil {
		c.scoreInRange("input.score", *input.Score)
	}
	c.validURL("input.externalUrl", input.ExternalURL)
	return c.err()
}

func validateContent(path, content string) error {
	var c fieldChecks
	c.nonEmpty(path, content)
	return c.err()
}
