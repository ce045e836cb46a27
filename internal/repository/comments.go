package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// CommentsRepository provides persistence for review comments. Comments are
// soft-deleted: the row stays with blanked content and is_removed set, and
// the parent review's comment_count tracks non-removed rows only.
type CommentsRepository struct {
	db   Querier
	root *Repository
}

const commentColumns = `
    id,
    review_id,
    author_id,
    content,
    is_removed,
    post_time,
    last_update_time
`

// Create inserts a comment and bumps the parent review's comment count in
// the same transaction.
func (r *CommentsRepository) Create(ctx context.Context, reviewID, authorID int64, content string) (domain.Comment, error) {
	var comment domain.Comment
	err := r.root.InTx(ctx, func(tx *Repository) error {
		row := tx.db.QueryRow(ctx, `
            INSERT INTO comments (review_id, author_id, content)
            VALUES ($1,$2,$3)
            RETURNING`+commentColumns, reviewID, authorID, content)
		var err error
		comment, err = scanComment(row)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NotFound("Review not found")
			}
			return err
		}
		_, err = tx.db.Exec(ctx,
			`UPDATE reviews SET comment_count = comment_count + 1 WHERE id = $1`, reviewID)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

// Edit updates a comment owned by authorID. Removed comments and comments
// owned by someone else both report NotFound.
func (r *CommentsRepository) Edit(ctx context.Context, commentID, authorID int64, content string) (domain.Comment, error) {
	var comment domain.Comment
	err := r.root.InTx(ctx, func(tx *Repository) error {
		if _, err := tx.Comments.lockByOwner(ctx, commentID, authorID); err != nil {
			return err
		}
		row := tx.db.QueryRow(ctx, `
            UPDATE comments SET content = $2, last_update_time = now()
            WHERE id = $1
            RETURNING`+commentColumns, commentID, content)
		var err error
		comment, err = scanComment(row)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

// Delete soft-deletes a comment owned by authorID and decrements the parent
// review's comment count. The decrement is tied to the removal transition,
// so deleting twice cannot drift the counter.
func (r *CommentsRepository) Delete(ctx context.Context, commentID, authorID int64) (domain.Comment, error) {
	var comment domain.Comment
	err := r.root.InTx(ctx, func(tx *Repository) error {
		if _, err := tx.Comments.lockByOwner(ctx, commentID, authorID); err != nil {
			return err
		}
		row := tx.db.QueryRow(ctx, `
            UPDATE comments SET content = '', is_removed = TRUE, last_update_time = now()
            WHERE id = $1
            RETURNING`+commentColumns, commentID)
		var err error
		comment, err = scanComment(row)
		if err != nil {
			return err
		}
		_, err = tx.db.Exec(ctx, `
            UPDATE reviews SET comment_count = GREATEST(comment_count - 1, 0)
            WHERE id = $1`, comment.ReviewID)
		return err
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

// GetByID fetches a comment by id.
func (r *CommentsRepository) GetByID(ctx context.Context, id int64) (domain.Comment, error) {
	row := r.db.QueryRow(ctx, `SELECT`+commentColumns+`FROM comments WHERE id = $1`, id)
	comment, err := scanComment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Comment{}, domain.NotFound("Comment not found")
		}
		return domain.Comment{}, err
	}
	return comment, nil
}

// ListForReview pages through a review's comments, newest first. Removed
// comments keep their place in the thread with blanked content.
func (r *CommentsRepository) ListForReview(ctx context.Context, reviewID int64, limit int32, cursor *Cursor) (ListPage[domain.Comment], error) {
	limit = clampLimit(limit)
	col := sortColumn{expr: "post_time", cast: "timestamptz"}
	args := []any{reviewID}

	query := `SELECT` + commentColumns + `, (post_time)::text
        FROM comments WHERE review_id = $1`
	if cursor != nil {
		query += ` AND ` + keysetPredicate(col, SortDesc, cursor, &args)
	}
	query += orderByClause(col, SortDesc)
	args = append(args, limit+1)
	query += ` LIMIT $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return ListPage[domain.Comment]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Comment]
	for rows.Next() {
		var c domain.Comment
		var sortVal string
		if err := rows.Scan(
			&c.ID, &c.ReviewID, &c.AuthorID, &c.Content, &c.IsRemoved,
			&c.PostTime, &c.LastUpdateTime, &sortVal,
		); err != nil {
			return ListPage[domain.Comment]{}, err
		}
		page.Items = append(page.Items, c)
		page.Cursors = append(page.Cursors, EncodeCursor(Cursor{Value: sortVal, ID: c.ID}))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Comment]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// CountForReview counts all of a review's comments, removed included, to
// match what the listing pages through. The denormalized comment_count on
// the review tracks non-removed comments only.
func (r *CommentsRepository) CountForReview(ctx context.Context, reviewID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&count)
	return count, err
}

// lockByOwner loads a live comment FOR UPDATE and verifies ownership.
// Missing, removed, and foreign comments all report NotFound.
func (r *CommentsRepository) lockByOwner(ctx context.Context, commentID, authorID int64) (domain.Comment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+commentColumns+`FROM comments WHERE id = $1 AND is_removed = FALSE FOR UPDATE`, commentID)
	comment, err := scanComment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Comment{}, domain.NotFound("Comment not found")
		}
		return domain.Comment{}, err
	}
	if comment.AuthorID != authorID {
		return domain.Comment{}, domain.NotFound("Comment not found")
	}
	return comment, nil
}

func scanComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID,
		&c.ReviewID,
		&c.AuthorID,
		&c.Content,
		&c.IsRemoved,
		&c.PostTime,
		&c.LastUpdateTime,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}
