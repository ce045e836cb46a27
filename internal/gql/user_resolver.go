package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// UserResolver backs the User type. The email and password hash are never
// exposed.
type UserResolver struct {
	r    *Resolver
	user domain.User
}

func (u *UserResolver) ID() graphql.ID     { return encodeID(typeUser, u.user.ID) }
func (u *UserResolver) Username() string   { return u.user.Username }
func (u *UserResolver) Name() string       { return u.user.Name }
func (u *UserResolver) AvatarURL() *string { return u.user.AvatarURL }
func (u *UserResolver) UserType() string   { return userTypeToEnum(u.user.UserType) }

type pageArgs struct {
	First *int32
	After *string
}

func (u *UserResolver) Reviews(ctx context.Context, args pageArgs) (*ReviewConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := u.r.repo.Reviews.ListByAuthor(ctx, u.user.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := u.r.repo.Reviews.CountByAuthor(ctx, u.user.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewConnectionResolver{r: u.r, page: page, total: total}, nil
}

func (u *UserResolver) Collections(ctx context.Context, args pageArgs) (*CollectionConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := u.r.repo.Collections.ListByAuthor(ctx, u.user.ID, firstOrDefault(args.First), cursor)
	if err != nil {
		return nil, err
	}
	total, err := u.r.repo.Collections.CountByAuthor(ctx, u.user.ID)
	if err != nil {
		return nil, err
	}
	return &CollectionConnectionResolver{r: u.r, page: page, total: total}, nil
}
