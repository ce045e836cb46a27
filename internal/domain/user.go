package domain

import "time"

// UserType distinguishes critics from regular members. A review stores a
// snapshot of its author's type at creation time.
type UserType string

const (
	UserTypeCritic  UserType = "Critic"
	UserTypeRegular UserType = "Regular"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserTypeCritic || t == UserTypeRegular
}

// User represents a platform member.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	Name           string
	AvatarURL      *string
	UserType       UserType
	DateOfBirth    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
