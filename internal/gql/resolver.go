package gql

import (
	"context"
	"log"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/auth"
	"github.com/cinegraph/cinegraph/internal/domain"
	"github.com/cinegraph/cinegraph/internal/objectstore"
	"github.com/cinegraph/cinegraph/internal/repository"
)

// Resolver is the root of the GraphQL schema; query and mutation fields are
// both resolved against it.
type Resolver struct {
	repo       *repository.Repository
	tokens     *auth.TokenManager
	uploads    objectstore.Client
	logger     *log.Logger
	bcryptCost int
}

// Options carries the root resolver's collaborators.
type Options struct {
	Repo       *repository.Repository
	Tokens     *auth.TokenManager
	Uploads    objectstore.Client
	Logger     *log.Logger
	BcryptCost int
}

// NewResolver builds the root resolver.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		repo:       opts.Repo,
		tokens:     opts.Tokens,
		uploads:    opts.Uploads,
		logger:     logger,
		bcryptCost: opts.BcryptCost,
	}
}

// NewSchema parses the SDL against a root resolver.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r, graphql.MaxDepth(12))
}

// requireMember returns the verified caller identity, or an auth error for
// anonymous callers. Mutations call this before any ownership check.
func (r *Resolver) requireMember(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return auth.Identity{}, domain.AuthFailed("You must be logged in")
	}
	return id, nil
}

// viewerID returns the caller's user ID, or 0 for anonymous callers. Used
// by nullable viewer-dependent fields.
func viewerID(ctx context.Context) int64 {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return 0
	}
	return id.UserID
}

// Enum mapping between wire values and stored values.

func userTypeFromEnum(v string) domain.UserType {
	switch v {
	case "CRITIC":
		return domain.UserTypeCritic
	case "REGULAR":
		return domain.UserTypeRegular
	}
	return domain.UserType(v)
}

func userTypeToEnum(t domain.UserType) string {
	switch t {
	case domain.UserTypeCritic:
		return "CRITIC"
	default:
		return "REGULAR"
	}
}

func crewRoleFromEnum(v string) domain.CrewRole {
	switch v {
	case "DIRECTOR":
		return domain.CrewRoleDirector
	case "WRITER":
		return domain.CrewRoleWriter
	case "DOP":
		return domain.CrewRoleDop
	case "EDITOR":
		return domain.CrewRoleEditor
	case "COMPOSER":
		return domain.CrewRoleComposer
	}
	return domain.CrewRole(v)
}

// Queries.

// Viewer resolves the current user, or nil when the caller is anonymous or
// their account no longer exists.
func (r *Resolver) Viewer(ctx context.Context) (*UserResolver, error) {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, nil
	}
	user, err := r.repo.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{r: r, user: user}, nil
}

type moviesArgs struct {
	TitleContains *string
	SortBy        *string
	SortDirection *string
	First         *int32
	After         *string
}

func (r *Resolver) Movies(ctx context.Context, args moviesArgs) (*MovieConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := r.repo.Movies.List(ctx, repository.MovieListFilters{
		TitleContains: args.TitleContains,
		SortBy:        args.SortBy,
		SortDirection: args.SortDirection,
		Limit:         firstOrDefault(args.First),
		Cursor:        cursor,
	})
	if err != nil {
		return nil, err
	}
	total, err := r.repo.Movies.Count(ctx, args.TitleContains)
	if err != nil {
		return nil, err
	}
	return &MovieConnectionResolver{r: r, page: page, total: total}, nil
}

func (r *Resolver) Movie(ctx context.Context, args struct{ ID graphql.ID }) (*MovieResolver, error) {
	movieID, err := decodeID(typeMovie, args.ID)
	if err != nil {
		return nil, nil
	}
	movie, err := r.repo.Movies.GetByID(ctx, movieID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &MovieResolver{r: r, movie: movie}, nil
}

func (r *Resolver) Review(ctx context.Context, args struct{ ID graphql.ID }) (*ReviewResolver, error) {
	reviewID, err := decodeID(typeReview, args.ID)
	if err != nil {
		return nil, nil
	}
	review, err := r.repo.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &ReviewResolver{r: r, review: review}, nil
}

func (r *Resolver) Collection(ctx context.Context, args struct{ ID graphql.ID }) (*CollectionResolver, error) {
	collectionID, err := decodeID(typeCollection, args.ID)
	if err != nil {
		return nil, nil
	}
	collection, err := r.repo.Collections.GetByID(ctx, collectionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &CollectionResolver{r: r, collection: collection}, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	userID, err := decodeID(typeUser, args.ID)
	if err != nil {
		return nil, nil
	}
	user, err := r.repo.Users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{r: r, user: user}, nil
}

type collectionsArgs struct {
	NameContains  *string
	SortBy        *string
	SortDirection *string
	First         *int32
	After         *string
}

func (r *Resolver) Collections(ctx context.Context, args collectionsArgs) (*CollectionConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := r.repo.Collections.List(ctx, repository.CollectionListFilters{
		NameContains:  args.NameContains,
		SortBy:        args.SortBy,
		SortDirection: args.SortDirection,
		Limit:         firstOrDefault(args.First),
		Cursor:        cursor,
	})
	if err != nil {
		return nil, err
	}
	total, err := r.repo.Collections.Count(ctx, args.NameContains)
	if err != nil {
		return nil, err
	}
	return &CollectionConnectionResolver{r: r, page: page, total: total}, nil
}

// decodeAfter parses an optional connection cursor. A malformed cursor is a
// validation error, not a silent restart from the beginning.
func decodeAfter(after *string) (*repository.Cursor, error) {
	if after == nil || *after == "" {
		return nil, nil
	}
	cursor, err := repository.DecodeCursor(*after)
	if err != nil {
		return nil, domain.Invalid(domain.FieldError{Path: "after", Message: "malformed cursor"})
	}
	return cursor, nil
}

func firstOrDefault(first *int32) int32 {
	if first == nil {
		return 0
	}
	return *first
}
