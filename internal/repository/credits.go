package repository

import (
	"context"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// Relation readers for a movie's credits, genres, and companies. These back
// plain list fields on the Movie GraphQL type; the lists are small and are
// not paginated.

// Genres returns a movie's genres by name.
func (r *MoviesRepository) Genres(ctx context.Context, movieID int64) ([]domain.Genre, error) {
	rows, err := r.db.Query(ctx, `
        SELECT g.id, g.name FROM genres g
        JOIN movie_genres mg ON mg.genre_id = g.id
        WHERE mg.movie_id = $1
        ORDER BY g.name`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// ProductionCompanies returns the companies that produced a movie.
func (r *MoviesRepository) ProductionCompanies(ctx context.Context, movieID int64) ([]domain.Company, error) {
	return r.companies(ctx, movieID, "movie_production_companies")
}

// DistributionCompanies returns the companies that distributed a movie.
func (r *MoviesRepository) DistributionCompanies(ctx context.Context, movieID int64) ([]domain.Company, error) {
	return r.companies(ctx, movieID, "movie_distribution_companies")
}

func (r *MoviesRepository) companies(ctx context.Context, movieID int64, joinTable string) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, `
        SELECT c.id, c.name FROM companies c
        JOIN `+joinTable+` mc ON mc.company_id = c.id
        WHERE mc.movie_id = $1
        ORDER BY c.name`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// CrewByRole returns the crew members credited on a movie in a given role.
func (r *MoviesRepository) CrewByRole(ctx context.Context, movieID int64, role domain.CrewRole) ([]domain.CrewMember, error) {
	rows, err := r.db.Query(ctx, `
        SELECT cm.id, cm.name, cm.avatar_url FROM crew_members cm
        JOIN work_credits wc ON wc.crew_id = cm.id
        WHERE wc.movie_id = $1 AND wc.role = $2
        ORDER BY cm.name`, movieID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crew []domain.CrewMember
	for rows.Next() {
		var c domain.CrewMember
		if err := rows.Scan(&c.ID, &c.Name, &c.AvatarURL); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

// ActingCredits returns a movie's cast with character names.
func (r *MoviesRepository) ActingCredits(ctx context.Context, movieID int64) ([]domain.ActingCredit, error) {
	rows, err := r.db.Query(ctx, `
        SELECT ac.crew_id, ac.movie_id, ac.character_name, cm.id, cm.name, cm.avatar_url
        FROM acting_credits ac
        JOIN crew_members cm ON cm.id = ac.crew_id
        WHERE ac.movie_id = $1
        ORDER BY cm.name`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []domain.ActingCredit
	for rows.Next() {
		var a domain.ActingCredit
		if err := rows.Scan(&a.CrewID, &a.MovieID, &a.CharacterName, &a.Crew.ID, &a.Crew.Name, &a.Crew.AvatarURL); err != nil {
			return nil, err
		}
		credits = append(credits, a)
	}
	return credits, rows.Err()
}

// Seed-side writers, used by cmd/seed and tests.

// AddGenre upserts a genre by name and links it to a movie.
func (r *MoviesRepository) AddGenre(ctx context.Context, movieID int64, name string) error {
	var genreID int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO genres (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id`, name).Scan(&genreID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1,$2)
        ON CONFLICT DO NOTHING`, movieID, genreID)
	return err
}

// AddCompany upserts a company by name and links it to a movie as producer
// or distributor.
func (r *MoviesRepository) AddCompany(ctx context.Context, movieID int64, name string, distributor bool) error {
	var companyID int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO companies (name) VALUES ($1)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
        RETURNING id`, name).Scan(&companyID)
	if err != nil {
		return err
	}
	joinTable := "movie_production_companies"
	if distributor {
		joinTable = "movie_distribution_companies"
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO `+joinTable+` (movie_id, company_id) VALUES ($1,$2)
        ON CONFLICT DO NOTHING`, movieID, companyID)
	return err
}

// AddCrewMember inserts a crew member row.
func (r *MoviesRepository) AddCrewMember(ctx context.Context, name string, avatarURL *string) (domain.CrewMember, error) {
	var c domain.CrewMember
	err := r.db.QueryRow(ctx, `
        INSERT INTO crew_members (name, avatar_url) VALUES ($1,$2)
        RETURNING id, name, avatar_url`, name, avatarURL).Scan(&c.ID, &c.Name, &c.AvatarURL)
	if err != nil {
		return domain.CrewMember{}, err
	}
	return c, nil
}

// AddWorkCredit links a crew member to a movie in a role.
func (r *MoviesRepository) AddWorkCredit(ctx context.Context, crewID, movieID int64, role domain.CrewRole) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO work_credits (crew_id, movie_id, role) VALUES ($1,$2,$3)
        ON CONFLICT DO NOTHING`, crewID, movieID, role)
	return err
}

// AddActingCredit links an actor to a movie with a character name.
func (r *MoviesRepository) AddActingCredit(ctx context.Context, crewID, movieID int64, characterName string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO acting_credits (crew_id, movie_id, character_name) VALUES ($1,$2,$3)
        ON CONFLICT (crew_id, movie_id) DO UPDATE SET character_name = EXCLUDED.character_name`,
		crewID, movieID, characterName)
	return err
}
