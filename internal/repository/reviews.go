package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// ReviewsRepository provides persistence for reviews and owns the movie
// score aggregates. Every mutation here pairs the review write with a full
// recompute of the affected (movie, authorType) partition inside one
// transaction, so readers never observe a count and mean from different
// review sets.
type ReviewsRepository struct {
	db   Querier
	root *Repository
}

const reviewColumns = `
    id,
    movie_id,
    author_id,
    author_type,
    title,
    content,
    score,
    external_url,
    thank_count,
    comment_count,
    post_time,
    last_update_time
`

// ReviewCreateParams bundles the fields required to create a review.
type ReviewCreateParams struct {
	MovieID     int64
	AuthorID    int64
	AuthorType  domain.UserType
	Title       string
	Content     string
	Score       int32
	ExternalURL *string
}

// ReviewEditParams carries the editable review fields; nil means unchanged.
type ReviewEditParams struct {
	Title          *string
	Content        *string
	Score          *int32
	ExternalURL    *string
	SetExternalURL bool
}

// ReviewListFilters encapsulates sort and pagination options for a movie's
// review listing.
type ReviewListFilters struct {
	SortBy        *string
	SortDirection *string
	Limit         int32
	Cursor        *Cursor
}

// Create inserts a review and recomputes the movie's aggregate for the
// author's partition, all in one transaction. A second review by the same
// author for the same movie fails with AlreadyExists before any aggregate
// is touched.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	var review domain.Review
	err := r.root.InTx(ctx, func(tx *Repository) error {
		row := tx.db.QueryRow(ctx, `
            INSERT INTO reviews (movie_id, author_id, author_type, title, content, score, external_url)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            RETURNING`+reviewColumns,
			params.MovieID, params.AuthorID, params.AuthorType,
			params.Title, params.Content, params.Score, params.ExternalURL)
		var err error
		review, err = scanReview(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.AlreadyExists("Review",
					"You've already made a review for this movie. Please edit it instead of making a new one")
			}
			if isForeignKeyViolation(err) {
				if strings.Contains(constraintName(err), "movie") {
					return domain.NotFound("Movie not found")
				}
				return domain.NotFound("User not found")
			}
			return err
		}
		return tx.Reviews.recomputeMovieScore(ctx, review.MovieID, review.AuthorType)
	})
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// Edit updates a review owned by authorID. Ownership failures report
// NotFound, indistinguishable from a missing review. A score change
// recomputes the movie aggregate in the same transaction.
func (r *ReviewsRepository) Edit(ctx context.Context, reviewID, authorID int64, params ReviewEditParams) (domain.Review, error) {
	var review domain.Review
	err := r.root.InTx(ctx, func(tx *Repository) error {
		current, err := tx.Reviews.lockByOwner(ctx, reviewID, authorID)
		if err != nil {
			return err
		}

		row := tx.db.QueryRow(ctx, `
            UPDATE reviews
            SET title = COALESCE($2, title),
                content = COALESCE($3, content),
                score = COALESCE($4, score),
                external_url = CASE WHEN $5 THEN $6 ELSE external_url END,
                last_update_time = now()
            WHERE id = $1
            RETURNING`+reviewColumns,
			reviewID, params.Title, params.Content, params.Score,
			params.SetExternalURL, params.ExternalURL)
		review, err = scanReview(row)
		if err != nil {
			return err
		}

		if params.Score != nil && *params.Score != current.Score {
			return tx.Reviews.recomputeMovieScore(ctx, review.MovieID, review.AuthorType)
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// Delete removes a review owned by authorID and recomputes the movie
// aggregate over the remaining reviews. Deleting the partition's last review
// nulls the score and zeroes the count.
func (r *ReviewsRepository) Delete(ctx context.Context, reviewID, authorID int64) (domain.Review, error) {
	var review domain.Review
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var err error
		review, err = tx.Reviews.lockByOwner(ctx, reviewID, authorID)
		if err != nil {
			return err
		}
		if _, err := tx.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
			return err
		}
		return tx.Reviews.recomputeMovieScore(ctx, review.MovieID, review.AuthorType)
	})
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// SetThanked adds or removes the user's thank on a review and refreshes the
// denormalized thank count from the membership table.
func (r *ReviewsRepository) SetThanked(ctx context.Context, reviewID, userID int64, thank bool) (domain.Review, error) {
	var review domain.Review
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var id int64
		if err := tx.db.QueryRow(ctx,
			`SELECT id FROM reviews WHERE id = $1 FOR UPDATE`, reviewID).Scan(&id); err != nil {
			if err == pgx.ErrNoRows {
				return domain.NotFound("Review not found")
			}
			return err
		}

		if thank {
			if _, err := tx.db.Exec(ctx, `
                INSERT INTO review_thanks (review_id, user_id) VALUES ($1,$2)
                ON CONFLICT DO NOTHING`, reviewID, userID); err != nil {
				return err
			}
		} else {
			if _, err := tx.db.Exec(ctx,
				`DELETE FROM review_thanks WHERE review_id = $1 AND user_id = $2`, reviewID, userID); err != nil {
				return err
			}
		}

		row := tx.db.QueryRow(ctx, `
            UPDATE reviews
            SET thank_count = (SELECT COUNT(*) FROM review_thanks WHERE review_id = $1)
            WHERE id = $1
            RETURNING`+reviewColumns, reviewID)
		var err error
		review, err = scanReview(row)
		return err
	})
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// GetByID fetches a review by id.
func (r *ReviewsRepository) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT`+reviewColumns+`FROM reviews WHERE id = $1`, id)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, domain.NotFound("Review not found")
		}
		return domain.Review{}, err
	}
	return review, nil
}

// ListForMovie returns one page of a movie's reviews in the requested order.
func (r *ReviewsRepository) ListForMovie(ctx context.Context, movieID int64, filters ReviewListFilters) (ListPage[domain.Review], error) {
	col, err := reviewSortColumn(filters.SortBy)
	if err != nil {
		return ListPage[domain.Review]{}, err
	}
	dir, err := resolveDirection(filters.SortDirection)
	if err != nil {
		return ListPage[domain.Review]{}, err
	}
	return r.listPage(ctx, col, dir, filters.Limit, filters.Cursor, "movie_id = $1", movieID)
}

// ListByAuthor returns one page of a user's reviews, newest first.
func (r *ReviewsRepository) ListByAuthor(ctx context.Context, authorID int64, limit int32, cursor *Cursor) (ListPage[domain.Review], error) {
	col, _ := reviewSortColumn(nil)
	return r.listPage(ctx, col, SortDesc, limit, cursor, "author_id = $1", authorID)
}

func (r *ReviewsRepository) listPage(ctx context.Context, col sortColumn, dir SortDirection, limit int32, cursor *Cursor, filter string, filterArg any) (ListPage[domain.Review], error) {
	limit = clampLimit(limit)
	args := []any{filterArg}

	var query strings.Builder
	query.WriteString("SELECT")
	query.WriteString(reviewColumns)
	query.WriteString(", (")
	query.WriteString(col.expr)
	query.WriteString(")::text FROM reviews WHERE ")
	query.WriteString(filter)
	if cursor != nil {
		query.WriteString(" AND ")
		query.WriteString(keysetPredicate(col, dir, cursor, &args))
	}
	query.WriteString(orderByClause(col, dir))
	args = append(args, limit+1)
	query.WriteString(" LIMIT $" + itoa(len(args)))

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return ListPage[domain.Review]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Review]
	for rows.Next() {
		var rev domain.Review
		var sortVal string
		if err := rows.Scan(
			&rev.ID, &rev.MovieID, &rev.AuthorID, &rev.AuthorType,
			&rev.Title, &rev.Content, &rev.Score, &rev.ExternalURL,
			&rev.ThankCount, &rev.CommentCount, &rev.PostTime, &rev.LastUpdateTime,
			&sortVal,
		); err != nil {
			return ListPage[domain.Review]{}, err
		}
		page.Items = append(page.Items, rev)
		page.Cursors = append(page.Cursors, EncodeCursor(Cursor{Value: sortVal, ID: rev.ID}))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Review]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// CountForMovie returns the number of reviews for a movie.
func (r *ReviewsRepository) CountForMovie(ctx context.Context, movieID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE movie_id = $1`, movieID).Scan(&count)
	return count, err
}

// CountByAuthor returns the number of reviews written by a user.
func (r *ReviewsRepository) CountByAuthor(ctx context.Context, authorID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}

// IsThankedBy reports whether the user has thanked the review.
func (r *ReviewsRepository) IsThankedBy(ctx context.Context, reviewID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM review_thanks WHERE review_id = $1 AND user_id = $2)`,
		reviewID, userID).Scan(&exists)
	return exists, err
}

// ThankUsers pages through the users who thanked a review, by user id.
func (r *ReviewsRepository) ThankUsers(ctx context.Context, reviewID int64, limit int32, cursor *Cursor) (ListPage[domain.User], error) {
	limit = clampLimit(limit)
	args := []any{reviewID}
	query := `
        SELECT` + prefixColumns(userColumns, "u") + `
        FROM users u
        JOIN review_thanks rt ON rt.user_id = u.id
        WHERE rt.review_id = $1`
	if cursor != nil {
		args = append(args, cursor.ID)
		query += ` AND u.id > $` + itoa(len(args))
	}
	args = append(args, limit+1)
	query += ` ORDER BY u.id ASC LIMIT $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return ListPage[domain.User]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.User]
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return ListPage[domain.User]{}, err
		}
		page.Items = append(page.Items, user)
		page.Cursors = append(page.Cursors, idCursor(user.ID))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.User]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// CountThankUsers returns the number of users who thanked a review.
func (r *ReviewsRepository) CountThankUsers(ctx context.Context, reviewID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM review_thanks WHERE review_id = $1`, reviewID).Scan(&count)
	return count, err
}

// lockByOwner loads a review row FOR UPDATE and verifies ownership. Both a
// missing review and someone else's review report NotFound, so callers
// cannot probe for the existence of other users' reviews.
func (r *ReviewsRepository) lockByOwner(ctx context.Context, reviewID, authorID int64) (domain.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT`+reviewColumns+`FROM reviews WHERE id = $1 FOR UPDATE`, reviewID)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, domain.NotFound("Review not found")
		}
		return domain.Review{}, err
	}
	if review.AuthorID != authorID {
		return domain.Review{}, domain.NotFound("Review not found")
	}
	return review, nil
}

// recomputeMovieScore refreshes one (movie, authorType) aggregate partition
// by re-querying count and mean over the current review set. Re-reading the
// partition instead of applying deltas keeps the aggregate self-healing
// under concurrent edits.
func (r *ReviewsRepository) recomputeMovieScore(ctx context.Context, movieID int64, authorType domain.UserType) error {
	var count int32
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), AVG(score)::float8 FROM reviews WHERE movie_id = $1 AND author_type = $2`,
		movieID, authorType).Scan(&count, &avg)
	if err != nil {
		return err
	}

	var query string
	if authorType == domain.UserTypeCritic {
		query = `UPDATE movies SET critic_score = $2, critic_review_count = $3, updated_at = now() WHERE id = $1`
	} else {
		query = `UPDATE movies SET regular_score = $2, regular_review_count = $3, updated_at = now() WHERE id = $1`
	}
	tag, err := r.db.Exec(ctx, query, movieID, avg, count)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Movie not found")
	}
	return nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var rev domain.Review
	err := row.Scan(
		&rev.ID,
		&rev.MovieID,
		&rev.AuthorID,
		&rev.AuthorType,
		&rev.Title,
		&rev.Content,
		&rev.Score,
		&rev.ExternalURL,
		&rev.ThankCount,
		&rev.CommentCount,
		&rev.PostTime,
		&rev.LastUpdateTime,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}
