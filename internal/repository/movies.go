package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities. The
// aggregate score fields on a movie row are written only by the review
// mutations in ReviewsRepository; reads here never recompute them.
type MoviesRepository struct {
	db   Querier
	root *Repository
}

const movieColumns = `
    id,
    title,
    poster_url,
    release_date,
    running_time,
    critic_score,
    critic_review_count,
    regular_score,
    regular_review_count,
    viewed_user_count,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	PosterURL   *string
	ReleaseDate time.Time
	RunningTime int32
}

// MovieListFilters encapsulates search, sort, and pagination options.
type MovieListFilters struct {
	TitleContains *string
	SortBy        *string
	SortDirection *string
	Limit         int32
	Cursor        *Cursor
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO movies (title, poster_url, release_date, running_time)
        VALUES ($1,$2,$3,$4)
        RETURNING`+movieColumns,
		params.Title, params.PosterURL, params.ReleaseDate, params.RunningTime)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	row := r.db.QueryRow(ctx, `SELECT`+movieColumns+`FROM movies WHERE id = $1`, id)
	movie, err := scanMovie(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, domain.NotFound("Movie not found")
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns one page of movies matching the provided filters, ordered by
// the requested sort key with the movie id as tiebreaker.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) (ListPage[domain.Movie], error) {
	col, err := movieSortColumn(filters.SortBy)
	if err != nil {
		return ListPage[domain.Movie]{}, err
	}
	dir, err := resolveDirection(filters.SortDirection)
	if err != nil {
		return ListPage[domain.Movie]{}, err
	}
	limit := clampLimit(filters.Limit)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filters.TitleContains != nil && strings.TrimSpace(*filters.TitleContains) != "" {
		args = append(args, "%"+strings.TrimSpace(*filters.TitleContains)+"%")
		where = append(where, "title ILIKE $1")
	}
	if filters.Cursor != nil {
		where = append(where, keysetPredicate(col, dir, filters.Cursor, &args))
	}

	var query strings.Builder
	query.WriteString("SELECT")
	query.WriteString(movieColumns)
	query.WriteString(", (")
	query.WriteString(col.expr)
	query.WriteString(")::text FROM movies")
	if len(where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(where, " AND "))
	}
	query.WriteString(orderByClause(col, dir))
	args = append(args, limit+1)
	query.WriteString(" LIMIT $" + itoa(len(args)))

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return ListPage[domain.Movie]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Movie]
	for rows.Next() {
		movie, sortVal, err := scanMovieWithSortValue(rows)
		if err != nil {
			return ListPage[domain.Movie]{}, err
		}
		page.Items = append(page.Items, movie)
		page.Cursors = append(page.Cursors, EncodeCursor(Cursor{Value: sortVal, ID: movie.ID}))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Movie]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// Count returns the number of movies matching the title filter.
func (r *MoviesRepository) Count(ctx context.Context, titleContains *string) (int32, error) {
	query := `SELECT COUNT(*) FROM movies`
	args := make([]any, 0, 1)
	if titleContains != nil && strings.TrimSpace(*titleContains) != "" {
		query += ` WHERE title ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(*titleContains)+"%")
	}
	var count int32
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetViewed marks or unmarks a movie as viewed by the user and refreshes the
// movie's viewed-user count from the membership table in one transaction.
func (r *MoviesRepository) SetViewed(ctx context.Context, movieID, userID int64, viewed bool) (domain.Movie, error) {
	var movie domain.Movie
	err := r.root.InTx(ctx, func(tx *Repository) error {
		if viewed {
			_, err := tx.db.Exec(ctx, `
                INSERT INTO movie_views (movie_id, user_id) VALUES ($1,$2)
                ON CONFLICT DO NOTHING`, movieID, userID)
			if err != nil {
				if isForeignKeyViolation(err) {
					return domain.NotFound("Movie not found")
				}
				return err
			}
		} else {
			if _, err := tx.db.Exec(ctx,
				`DELETE FROM movie_views WHERE movie_id = $1 AND user_id = $2`, movieID, userID); err != nil {
				return err
			}
		}

		row := tx.db.QueryRow(ctx, `
            UPDATE movies
            SET viewed_user_count = (SELECT COUNT(*) FROM movie_views WHERE movie_id = $1),
                updated_at = now()
            WHERE id = $1
            RETURNING`+movieColumns, movieID)
		var err error
		movie, err = scanMovie(row)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.NotFound("Movie not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// IsViewedBy reports whether the user has marked the movie as viewed.
func (r *MoviesRepository) IsViewedBy(ctx context.Context, movieID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movie_views WHERE movie_id = $1 AND user_id = $2)`,
		movieID, userID).Scan(&exists)
	return exists, err
}

// ListInCollection pages through the movies of a collection, ordered by
// movie id ascending.
func (r *MoviesRepository) ListInCollection(ctx context.Context, collectionID int64, limit int32, cursor *Cursor) (ListPage[domain.Movie], error) {
	limit = clampLimit(limit)
	args := []any{collectionID}
	query := `
        SELECT` + prefixColumns(movieColumns, "m") + `
        FROM movies m
        JOIN collection_movies cm ON cm.movie_id = m.id
        WHERE cm.collection_id = $1`
	if cursor != nil {
		args = append(args, cursor.ID)
		query += ` AND m.id > $` + itoa(len(args))
	}
	args = append(args, limit+1)
	query += ` ORDER BY m.id ASC LIMIT $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return ListPage[domain.Movie]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Movie]
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return ListPage[domain.Movie]{}, err
		}
		page.Items = append(page.Items, movie)
		page.Cursors = append(page.Cursors, idCursor(movie.ID))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Movie]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// CountInCollection returns the number of movies in a collection.
func (r *MoviesRepository) CountInCollection(ctx context.Context, collectionID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM collection_movies WHERE collection_id = $1`, collectionID).Scan(&count)
	return count, err
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.PosterURL,
		&m.ReleaseDate,
		&m.RunningTime,
		&m.CriticScore,
		&m.CriticReviewCount,
		&m.RegularScore,
		&m.RegularReviewCount,
		&m.ViewedUserCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

func scanMovieWithSortValue(row pgx.Row) (domain.Movie, string, error) {
	var m domain.Movie
	var sortVal string
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.PosterURL,
		&m.ReleaseDate,
		&m.RunningTime,
		&m.CriticScore,
		&m.CriticReviewCount,
		&m.RegularScore,
		&m.RegularReviewCount,
		&m.ViewedUserCount,
		&m.CreatedAt,
		&m.UpdatedAt,
		&sortVal,
	)
	if err != nil {
		return domain.Movie{}, "", err
	}
	return m, sortVal, nil
}
