package domain

// CrewRole identifies a crew member's job on a movie.
type CrewRole string

const (
	CrewRoleDirector CrewRole = "Director"
	CrewRoleWriter   CrewRole = "Writer"
	CrewRoleDop      CrewRole = "Dop"
	CrewRoleEditor   CrewRole = "Editor"
	CrewRoleComposer CrewRole = "Composer"
)

// CrewMember is a person credited on movies in any non-acting role, or as an
// actor through an ActingCredit.
type CrewMember struct {
	ID        int64
	Name      string
	AvatarURL *string
}

// WorkCredit links a crew member to a movie in a given role.
type WorkCredit struct {
	CrewID  int64
	MovieID int64
	Role    CrewRole
}

// ActingCredit links an actor to a movie with the character they played.
type ActingCredit struct {
	CrewID        int64
	MovieID       int64
	CharacterName string
	Crew          CrewMember
}
