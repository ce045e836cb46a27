package gql

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/domain"
	"github.com/cinegraph/cinegraph/internal/repository"
)

// MovieResolver backs the Movie type.
type MovieResolver struct {
	r     *Resolver
	movie domain.Movie
}

func (m *MovieResolver) ID() graphql.ID            { return encodeID(typeMovie, m.movie.ID) }
func (m *MovieResolver) Title() string             { return m.movie.Title }
func (m *MovieResolver) PosterURL() *string        { return m.movie.PosterURL }
func (m *MovieResolver) ReleaseDate() graphql.Time { return graphql.Time{Time: m.movie.ReleaseDate} }
func (m *MovieResolver) RunningTime() int32        { return m.movie.RunningTime }
func (m *MovieResolver) CriticScore() *float64     { return m.movie.CriticScore }
func (m *MovieResolver) CriticReviewCount() int32  { return m.movie.CriticReviewCount }
func (m *MovieResolver) RegularScore() *float64    { return m.movie.RegularScore }
func (m *MovieResolver) RegularReviewCount() int32 { return m.movie.RegularReviewCount }
func (m *MovieResolver) ViewedUserCount() int32    { return m.movie.ViewedUserCount }

// IsViewedByViewer is nil for anonymous callers.
func (m *MovieResolver) IsViewedByViewer(ctx context.Context) (*bool, error) {
	userID := viewerID(ctx)
	if userID == 0 {
		return nil, nil
	}
	viewed, err := m.r.repo.Movies.IsViewedBy(ctx, m.movie.ID, userID)
	if err != nil {
		return nil, err
	}
	return &viewed, nil
}

func (m *MovieResolver) Genres(ctx context.Context) ([]*GenreResolver, error) {
	genres, err := m.r.repo.Movies.Genres(ctx, m.movie.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*GenreResolver, len(genres))
	for i, g := range genres {
		out[i] = &GenreResolver{genre: g}
	}
	return out, nil
}

func (m *MovieResolver) ProductionCompanies(ctx context.Context) ([]*CompanyResolver, error) {
	companies, err := m.r.repo.Movies.ProductionCompanies(ctx, m.movie.ID)
	if err != nil {
		return nil, err
	}
	return companyResolvers(companies), nil
}

func (m *MovieResolver) DistributionCompanies(ctx context.Context) ([]*CompanyResolver, error) {
	companies, err := m.r.repo.Movies.DistributionCompanies(ctx, m.movie.ID)
	if err != nil {
		return nil, err
	}
	return companyResolvers(companies), nil
}

func (m *MovieResolver) Crew(ctx context.Context, args struct{ Role string }) ([]*CrewMemberResolver, error) {
	crew, err := m.r.repo.Movies.CrewByRole(ctx, m.movie.ID, crewRoleFromEnum(args.Role))
	if err != nil {
		return nil, err
	}
	out := make([]*CrewMemberResolver, len(crew))
	for i, c := range crew {
		out[i] = &CrewMemberResolver{crew: c}
	}
	return out, nil
}

func (m *MovieResolver) Cast(ctx context.Context) ([]*ActingCreditResolver, error) {
	credits, err := m.r.repo.Movies.ActingCredits(ctx, m.movie.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*ActingCreditResolver, len(credits))
	for i, credit := range credits {
		out[i] = &ActingCreditResolver{credit: credit}
	}
	return out, nil
}

type movieReviewsArgs struct {
	SortBy        *string
	SortDirection *string
	First         *int32
	After         *string
}

func (m *MovieResolver) Reviews(ctx context.Context, args movieReviewsArgs) (*ReviewConnectionResolver, error) {
	cursor, err := decodeAfter(args.After)
	if err != nil {
		return nil, err
	}
	page, err := m.r.repo.Reviews.ListForMovie(ctx, m.movie.ID, repository.ReviewListFilters{
		SortBy:        args.SortBy,
		SortDirection: args.SortDirection,
		Limit:         firstOrDefault(args.First),
		Cursor:        cursor,
	})
	if err != nil {
		return nil, err
	}
	total, err := m.r.repo.Reviews.CountForMovie(ctx, m.movie.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewConnectionResolver{r: m.r, page: page, total: total}, nil
}

// GenreResolver backs the Genre type.
type GenreResolver struct {
	genre domain.Genre
}

func (g *GenreResolver) ID() graphql.ID { return encodeID(typeGenre, g.genre.ID) }
func (g *GenreResolver) Name() string   { return g.genre.Name }

// CompanyResolver backs the Company type.
type CompanyResolver struct {
	company domain.Company
}

func (c *CompanyResolver) ID() graphql.ID { return encodeID(typeCompany, c.company.ID) }
func (c *CompanyResolver) Name() string   { return c.company.Name }

func companyResolvers(companies []domain.Company) []*CompanyResolver {
	out := make([]*CompanyResolver, len(companies))
	for i, c := range companies {
		out[i] = &CompanyResolver{company: c}
	}
	return out
}

// CrewMemberResolver backs the CrewMember type.
type CrewMemberResolver struct {
	crew domain.CrewMember
}

func (c *CrewMemberResolver) ID() graphql.ID     { return encodeID(typeCrewMember, c.crew.ID) }
func (c *CrewMemberResolver) Name() string       { return c.crew.Name }
func (c *CrewMemberResolver) AvatarURL() *string { return c.crew.AvatarURL }

// ActingCreditResolver backs the ActingCredit type.
type ActingCreditResolver struct {
	credit domain.ActingCredit
}

func (a *ActingCreditResolver) Crew() *CrewMemberResolver {
	return &CrewMemberResolver{crew: a.credit.Crew}
}

func (a *ActingCreditResolver) CharacterName() string { return a.credit.CharacterName }
