package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) CreateCollection(ctx context.Context, args struct{ Name string }) (*CollectionResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent("name", args.Name); err != nil {
		return nil, err
	}
	collection, err := r.repo.Collections.Create(ctx, id.UserID, args.Name)
	if err != nil {
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

func (r *Resolver) EditCollection(ctx context.Context, args struct {
	ID   graphql.ID
	Name string
}) (*CollectionResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateContent("name", args.Name); err != nil {
		return nil, err
	}
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return nil, err
	}
	collection, err := r.repo.Collections.Rename(ctx, collectionID, id.UserID, args.Name)
	if err != nil {
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

func (r *Resolver) DeleteCollection(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return false, err
	}
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return false, err
	}
	if _, err := r.repo.Collections.Delete(ctx, collectionID, id.UserID); err != nil {
		return false, err
	}
	return true, nil
}

type collectionMoviesArgs struct {
	ID       graphql.ID
	MovieIDs []graphql.ID
}

// AddToCollection links movies into the caller's collection; already-linked
// movies are skipped.
func (r *Resolver) AddToCollection(ctx context.Context, args collectionMoviesArgs) (*CollectionResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return nil, err
	}
	movieIDs, err := decodeIDs(typeMovie, args.MovieIDs)
	if err != nil {
		return nil, err
	}
	collection, err := r.repo.Collections.AddMovies(ctx, collectionID, id.UserID, movieIDs)
	if err != nil {
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

func (r *Resolver) RemoveFromCollection(ctx context.Context, args collectionMoviesArgs) (*CollectionResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return nil, err
	}
	movieIDs, err := decodeIDs(typeMovie, args.MovieIDs)
	if err != nil {
		return nil, err
	}
	collection, err := r.repo.Collections.RemoveMovies(ctx, collectionID, id.UserID, movieIDs)
	if err != nil {
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

// LikeCollection sets or clears the caller's like. Repeating the same state
// is a no-op.
func (r *Resolver) LikeCollection(ctx context.Context, args struct {
	ID   graphql.ID
	Like bool
}) (*CollectionResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return nil, err
	}
	collection, err := r.repo.Collections.SetLiked(ctx, collectionID, id.UserID, args.Like)
	if err != nil {
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

// SetMovieViewed marks or unmarks a movie as viewed by the caller and
// returns the movie with its refreshed viewedUserCount.
func (r *Resolver) SetMovieViewed(ctx context.Context, args struct {
	MovieID graphql.ID
	Viewed  bool
}) (*MovieResolver, error) {
	id, err := r.requireMember(ctx)
	if err != nil {
		return nil, err
	}
	movieID, err := decodeID(typeMovie, args.MovieID)
	if err != nil {
		return nil, err
	}
	movie, err := r.repo.Movies.SetViewed(ctx, movieID, id.UserID, args.Viewed)
	if err != nil {
		return nil, err
	}
	return &MovieResolver{r: r, movie: movie}, nil
}
