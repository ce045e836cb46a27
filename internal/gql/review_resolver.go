package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/domain"
)

// ReviewResolver backs the Review type.
type ReviewResolver struct {
	r      *Resolver
	review domain.Review
}

func (rv *ReviewResolver) ID() graphql.ID       { return encodeID(typeReview, rv.review.ID) }
func (rv *ReviewResolver) AuthorType() string   { return userTypeToEnum(rv.review.AuthorType) }
func (rv *ReviewResolver) Title() string        { return rv.review.Title }
func (rv *ReviewResolver) Content() string      { return rv.review.Content }
func (rv *ReviewResolver) Score() int32         { return rv.review.Score }
func (rv *ReviewResolver) ExternalURL() *string { return rv.review.ExternalURL }
func (rv *ReviewResolver) ThankCount() int32    { return rv.review.ThankCount }
func (rv *ReviewResolver) CommentCount() int32  { return rv.review.CommentCount }

func (rv *ReviewResolver) PostTime() graphql.Time {
	return graphql.Time{Time: rv.review.PostTime}
}

func (rv *ReviewResolver) LastUpdateTime() *graphql.Time {
	return optionalTime(rv.review.LastUpdateTime)
}

func (rv *ReviewResolver) Movie(ctx context.Context) (*MovieResolver, error) {
	movie, err := rv.r.repo.Movies.GetByID(ctx, rv.review.MovieID)
	if err != nil {
		return nil, err
	}
	return &MovieResolver{r: rv.r, movie: movie}, nil
}

func (rv *ReviewResolver) Author(ctx context.Context) (*UserResolver, error) {
	user, err := rv.r.repo.Users.GetByID(ctx, rv.review.AuthorID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{r: rv.r, user: user}, nil
}

// IsMine is nil for anonymous callers.
func (rv *ReviewResolver) IsMine(ctx context.Context) *bool {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil
	}
	mine := id.UserID == rv.review.AuthorID
	return &mine
}

// IsThankedByViewer is nil for anonymous callers.
func (rv *ReviewResolver) IsThankedByViewer(ctx context.Context) (*bool, error) {
	userID := viewerID(ctx)
	if userID == 0 {
		return nil, nil
	}
	thanked, err := rv.r.repo.Reviews.IsThankedBy(ctx, rv.review.ID, userID)
	if err != nil {
		return nil, err
	}
	return &thanked, nil
}

func (rv *ReviewResolver) ThankUsers(ctx context.Context, args pageArgs) (*UserConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := rv.r.repo.Reviews.ThankUsers(ctx, rv.review.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := rv.r.repo.Reviews.CountThankUsers(ctx, rv.review.ID)
	if err != nil {
		return nil, err
	}
	return &UserConnectionResolver{r: rv.r, page: page, total: total}, nil
}

func (rv *ReviewResolver) Comments(ctx context.Context, args pageArgs) (*CommentConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := rv.r.repo.Comments.ListForReview(ctx, rv.review.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := rv.r.repo.Comments.CountForReview(ctx, rv.review.ID)
	if err != nil {
		return nil, err
	}
	return &CommentConnectionResolver{r: rv.r, page: page, total: total}, nil
}

// CommentResolver backs the Comment type. Removed comments keep their row
// but expose blank content.
type CommentResolver struct {
	r       *Resolver
	comment domain.Comment
}

func (c *CommentResolver) ID() graphql.ID  { return encodeID(typeComment, c.comment.ID) }
func (c *CommentResolver) Content() string { return c.comment.Content }
func (c *CommentResolver) IsRemoved() bool { return c.comment.IsRemoved }

func (c *CommentResolver) PostTime() graphql.Time {
	return graphql.Time{Time: c.comment.PostTime}
}

func (c *CommentResolver) LastUpdateTime() *graphql.Time {
	return optionalTime(c.comment.LastUpdateTime)
}

func (c *CommentResolver) Review(ctx context.Context) (*ReviewResolver, error) {
	review, err := c.r.repo.Reviews.GetByID(ctx, c.comment.ReviewID)
	if err != nil {
		return nil, err
	}
	return &ReviewResolver{r: c.r, review: review}, nil
}

func (c *CommentResolver) Author(ctx context.Context) (*UserResolver, error) {
	user, err := c.r.repo.Users.GetByID(ctx, c.comment.AuthorID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{r: c.r, user: user}, nil
}
