package domain

import "time"

// Movie represents the canonical movie entity. The four score/count fields
// are denormalized aggregates over the movie's reviews, partitioned by the
// review's author type; each score is nil exactly when its count is zero.
type Movie struct {
	ID                 int64
	Title              string
	PosterURL          *string
	ReleaseDate        time.Time
	RunningTime        int32
	CriticScore        *float64
	CriticReviewCount  int32
	RegularScore       *float64
	RegularReviewCount int32
	ViewedUserCount    int32
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Genre is a movie category tag.
type Genre struct {
	ID   int64
	Name string
}

// Company produces or distributes movies.
type Company struct {
	ID   int64
	Name string
}
