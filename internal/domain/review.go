package domain

import "time"

// Review score bounds, inclusive.
const (
	MinReviewScore = 0
	MaxReviewScore = 10
)

// Review is a user's scored write-up for a movie. A user may have at most
// one review per movie. AuthorType is frozen at creation so later role
// changes do not reshuffle aggregates.
type Review struct {
	ID             int64
	MovieID        int64
	AuthorID       int64
	AuthorType     UserType
	Title          string
	Content        string
	Score          int32
	ExternalURL    *string
	ThankCount     int32
	CommentCount   int32
	PostTime       time.Time
	LastUpdateTime *time.Time
}

// Comment is a reply on a review. Deleting a comment blanks its content and
// flips IsRemoved instead of dropping the row; CommentCount on the parent
// review tracks non-removed comments only.
type Comment struct {
	ID             int64
	ReviewID       int64
	AuthorID       int64
	Content        string
	IsRemoved      bool
	PostTime       time.Time
	LastUpdateTime *time.Time
}
