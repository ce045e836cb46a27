package domain

import "time"

// Collection is a user-curated list of movies.
type Collection struct {
	ID             int64
	AuthorID       int64
	Name           string
	LikeCount      int32
	CreationTime   time.Time
	LastUpdateTime *time.Time
}
