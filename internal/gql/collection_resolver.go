package gql

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// CollectionResolver backs the Collection type.
type CollectionResolver struct {
	r          *Resolver
	collection domain.Collection
}

func (c *CollectionResolver) ID() graphql.ID   { return encodeID(typeCollection, c.collection.ID) }
func (c *CollectionResolver) Name() string     { return c.collection.Name }
func (c *CollectionResolver) LikeCount() int32 { return c.collection.LikeCount }

func (c *CollectionResolver) CreationTime() graphql.Time {
	return graphql.Time{Time: c.collection.CreationTime}
}

func (c *CollectionResolver) LastUpdateTime() *graphql.Time {
	return optionalTime(c.collection.LastUpdateTime)
}

func (c *CollectionResolver) Author(ctx context.Context) (*UserResolver, error) {
	user, err := c.r.repo.Users.GetByID(ctx, c.collection.AuthorID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{r: c.r, user: user}, nil
}

// IsLikedByViewer is nil for anonymous callers.
func (c *CollectionResolver) IsLikedByViewer(ctx context.Context) (*bool, error) {
	userID := viewerID(ctx)
	if userID == 0 {
		return nil, nil
	}
	liked, err := c.r.repo.Collections.IsLikedBy(ctx, c.collection.ID, userID)
	if err != nil {
		return nil, err
	}
	return &liked, nil
}

func (c *CollectionResolver) Movies(ctx context.Context, args pageArgs) (*MovieConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := c.r.repo.Movies.ListInCollection(ctx, c.collection.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := c.r.repo.Movies.CountInCollection(ctx, c.collection.ID)
	if err != nil {
		return nil, err
	}
	return &MovieConnectionResolver{r: c.r, page: page, total: total}, nil
}

func (c *CollectionResolver) LikeUsers(ctx context.Context, args pageArgs) (*UserConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := c.r.repo.Collections.LikeUsers(ctx, c.collection.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := c.r.repo.Collections.CountLikeUsers(ctx, c.collection.ID)
	if err != nil {
		return nil, err
	}
	return &UserConnectionResolver{r: c.r, page: page, total: total}, nil
}

func optionalTime(t *time.Time) *graphql.Time {
	if t == nil {
		return nil
	}
	return &graphql.Time{Time: *t}
}
