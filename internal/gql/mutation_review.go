package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/repository"
)

type createReviewInput struct {
	MovieID     graphql.ID
	Title       string
	Content     string
	Score       int32
	ExternalURL *string
}

// CreateReview posts the caller's review for a movie. The insert and the
// movie aggregate recompute run in one transaction.
func (r *Resolver) CreateReview(ctx context.Context, args struct{ Input createReviewInput }) (*ReviewResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCreateReview(args.Input); err != nil {
		return nil, err
	}
	movieID, err := decodeID(typeMovie, args.Input.MovieID)
	if err != nil {
		return nil, err
	}
	review, err := r.repo.Reviews.Create(ctx, repository.ReviewCreateParams{
		MovieID:     movieID,
		AuthorID:    id.UserID,
		AuthorType:  id.UserType,
		Title:       args.Input.Title,
		Content:     args.Input.Content,
		Score:       args.Input.Score,
		ExternalURL: args.Input.ExternalURL,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewResolver{r: r, review: review}, nil
}

type editReviewInput struct {
	Title       *string
	Content     *string
	Score       *int32
	ExternalURL *string
}

// EditReview updates the caller's review. Omitted fields are left as they
// are; a score change recomputes the movie aggregate in the same
// transaction.
func (r *Resolver) EditReview(ctx context.Context, args struct {
	ID    graphql.ID
	Input editReviewInput
}) (*ReviewResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateEditReview(args.Input); err != nil {
		return nil, err
	}
	reviewID, err := decodeID(typeReview, args.ID)
	if err != nil {
		return nil, err
	}
	review, err := r.repo.Reviews.Edit(ctx, reviewID, id.UserID, repository.ReviewEditParams{
		Title:          args.Input.Title,
		Content:        args.Input.Content,
		Score:          args.Input.Score,
		ExternalURL:    args.Input.ExternalURL,
		SetExternalURL: args.Input.ExternalURL != nil,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewResolver{r: r, review: review}, nil
}

// DeleteReview hard-deletes the caller's review and recomputes the movie
// aggregate, nulling the partition score when the last review goes.
func (r *Resolver) DeleteReview(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return false, err
	}
	reviewID, err := decodeID(typeReview, args.ID)
	if err != nil {
		return false, err
	}
	if _, err := r.repo.Reviews.Delete(ctx, reviewID, id.UserID); err != nil {
		return false, err
	}
	return true, nil
}

// ThankReview sets or clears the caller's thank on a review. Repeating the
// same state is a no-op.
func (r *Resolver) ThankReview(ctx context.Context, args struct {
	ReviewID graphql.ID
	Thank    bool
}) (*ReviewResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	reviewID, err := decodeID(typeReview, args.ReviewID)
	if err != nil {
		return nil, err
	}
	review, err := r.repo.Reviews.SetThanked(ctx, reviewID, id.UserID, args.Thank)
	if err != nil {
		return nil, err
	}
	return &ReviewResolver{r: r, review: review}, nil
}

type createCommentInput struct {
	ReviewID graphql.ID
	Content  string
}

func (r *Resolver) CreateComment(ctx context.Context, args struct{ Input createCommentInput }) (*CommentResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent("input.content", args.Input.Content); err != nil {
		return nil, err
	}
	reviewID, err := decodeID(typeReview, args.Input.ReviewID)
	if err != nil {
		return nil, err
	}
	comment, err := r.repo.Comments.Create(ctx, reviewID, id.UserID, args.Input.Content)
	if err != nil {
		return nil, err
	}
	return &CommentResolver{r: r, comment: comment}, nil
}

type editCommentInput struct {
	Content string
}

func (r *Resolver) EditComment(ctx context.Context, args struct {
	ID    graphql.ID
	Input editCommentInput
}) (*CommentResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent("input.content", args.Input.Content); err != nil {
		return nil, err
	}
	commentID, err := decodeID(typeComment, args.ID)
	if err != nil {
		return nil, err
	}
	comment, err := r.repo.Comments.Edit(ctx, commentID, id.UserID, args.Input.Content)
	if err != nil {
		return nil, err
	}
	return &CommentResolver{r: r, comment: comment}, nil
}

// DeleteComment soft-deletes the caller's comment and returns the blanked
// row.
func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID graphql.ID }) (*CommentResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	commentID, err := decodeID(typeComment, args.ID)
	if err != nil {
		return nil, err
	}
	comment, err := r.repo.Comments.Delete(ctx, commentID, id.UserID)
	if err != nil {
		return nil, err
	}
	return &CommentResolver{r: r, comment: comment}, nil
}
