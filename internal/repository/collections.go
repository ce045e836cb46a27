package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// CollectionsRepository provides persistence for user-curated movie lists.
type CollectionsRepository struct {
	db   Querier
	root *Repository
}

const collectionColumns = `
    id,
    author_id,
    name,
    like_count,
    creation_time,
    last_update_time
`

// CollectionListFilters encapsulates search, sort, and pagination options.
type CollectionListFilters struct {
	NameContains  *string
	SortBy        *string
	SortDirection *string
	Limit         int32
	Cursor        *Cursor
}

// Create inserts a new collection owned by authorID.
func (r *CollectionsRepository) Create(ctx context.Context, authorID int64, name string) (domain.Collection, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO collections (author_id, name) VALUES ($1,$2)
        RETURNING`+collectionColumns, authorID, name)
	collection, err := scanCollection(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Collection{}, domain.NotFound("User not found")
		}
		return domain.Collection{}, err
	}
	return collection, nil
}

// Rename updates the name of a collection owned by authorID.
func (r *CollectionsRepository) Rename(ctx context.Context, collectionID, authorID int64, name string) (domain.Collection, error) {
	var collection domain.Collection
	err := r.root.InTx(ctx, func(tx *Repository) error {
		if _, err := tx.Collections.lockByOwner(ctx, collectionID, authorID); err != nil {
			return err
		}
		row := tx.db.QueryRow(ctx, `
            UPDATE collections SET name = $2, last_update_time = now()
            WHERE id = $1
            RETURNING`+collectionColumns, collectionID, name)
		var err error
		collection, err = scanCollection(row)
		return err
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// Delete removes a collection owned by authorID.
func (r *CollectionsRepository) Delete(ctx context.Context, collectionID, authorID int64) (domain.Collection, error) {
	var collection domain.Collection
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var err error
		collection, err = tx.Collections.lockByOwner(ctx, collectionID, authorID)
		if err != nil {
			return err
		}
		_, err = tx.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, collectionID)
		return err
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// AddMovies connects movies to a collection owned by authorID. Movies
// already in the collection are skipped; an unknown movie id fails the
// whole mutation with NotFound.
func (r *CollectionsRepository) AddMovies(ctx context.Context, collectionID, authorID int64, movieIDs []int64) (domain.Collection, error) {
	var collection domain.Collection
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var err error
		collection, err = tx.Collections.lockByOwner(ctx, collectionID, authorID)
		if err != nil {
			return err
		}
		for _, movieID := range movieIDs {
			if _, err := tx.db.Exec(ctx, `
                INSERT INTO collection_movies (collection_id, movie_id) VALUES ($1,$2)
                ON CONFLICT DO NOTHING`, collectionID, movieID); err != nil {
				if isForeignKeyViolation(err) {
					return domain.NotFound("Movie not found")
				}
				return err
			}
		}
		return tx.Collections.touch(ctx, collectionID, &collection)
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// RemoveMovies disconnects movies from a collection owned by authorID.
func (r *CollectionsRepository) RemoveMovies(ctx context.Context, collectionID, authorID int64, movieIDs []int64) (domain.Collection, error) {
	var collection domain.Collection
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var err error
		collection, err = tx.Collections.lockByOwner(ctx, collectionID, authorID)
		if err != nil {
			return err
		}
		if _, err := tx.db.Exec(ctx,
			`DELETE FROM collection_movies WHERE collection_id = $1 AND movie_id = ANY($2)`,
			collectionID, movieIDs); err != nil {
			return err
		}
		return tx.Collections.touch(ctx, collectionID, &collection)
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// SetLiked adds or removes the user's like on a collection and refreshes the
// denormalized like count from the membership table.
func (r *CollectionsRepository) SetLiked(ctx context.Context, collectionID, userID int64, like bool) (domain.Collection, error) {
	var collection domain.Collection
	err := r.root.InTx(ctx, func(tx *Repository) error {
		var id int64
		if err := tx.db.QueryRow(ctx,
			`SELECT id FROM collections WHERE id = $1 FOR UPDATE`, collectionID).Scan(&id); err != nil {
			if err == pgx.ErrNoRows {
				return domain.NotFound("Collection not found")
			}
			return err
		}

		if like {
			if _, err := tx.db.Exec(ctx, `
                INSERT INTO collection_likes (collection_id, user_id) VALUES ($1,$2)
                ON CONFLICT DO NOTHING`, collectionID, userID); err != nil {
				return err
			}
		} else {
			if _, err := tx.db.Exec(ctx,
				`DELETE FROM collection_likes WHERE collection_id = $1 AND user_id = $2`, collectionID, userID); err != nil {
				return err
			}
		}

		row := tx.db.QueryRow(ctx, `
            UPDATE collections
            SET like_count = (SELECT COUNT(*) FROM collection_likes WHERE collection_id = $1)
            WHERE id = $1
            RETURNING`+collectionColumns, collectionID)
		var err error
		collection, err = scanCollection(row)
		return err
	})
	if err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// GetByID fetches a collection by id.
func (r *CollectionsRepository) GetByID(ctx context.Context, id int64) (domain.Collection, error) {
	row := r.db.QueryRow(ctx, `SELECT`+collectionColumns+`FROM collections WHERE id = $1`, id)
	collection, err := scanCollection(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Collection{}, domain.NotFound("Collection not found")
		}
		return domain.Collection{}, err
	}
	return collection, nil
}

// List returns one page of collections matching the provided filters.
func (r *CollectionsRepository) List(ctx context.Context, filters CollectionListFilters) (ListPage[domain.Collection], error) {
	col, err := collectionSortColumn(filters.SortBy)
	if err != nil {
		return ListPage[domain.Collection]{}, err
	}
	dir, err := resolveDirection(filters.SortDirection)
	if err != nil {
		return ListPage[domain.Collection]{}, err
	}
	limit := clampLimit(filters.Limit)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filters.NameContains != nil && strings.TrimSpace(*filters.NameContains) != "" {
		args = append(args, "%"+strings.TrimSpace(*filters.NameContains)+"%")
		where = append(where, "name ILIKE $1")
	}
	if filters.Cursor != nil {
		where = append(where, keysetPredicate(col, dir, filters.Cursor, &args))
	}

	var query strings.Builder
	query.WriteString("SELECT")
	query.WriteString(collectionColumns)
	query.WriteString(", (")
	query.WriteString(col.expr)
	query.WriteString(")::text FROM collections")
	if len(where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(where, " AND "))
	}
	query.WriteString(orderByClause(col, dir))
	args = append(args, limit+1)
	query.WriteString(" LIMIT $" + itoa(len(args)))

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return ListPage[domain.Collection]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Collection]
	for rows.Next() {
		var c domain.Collection
		var sortVal string
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &c.Name, &c.LikeCount,
			&c.CreationTime, &c.LastUpdateTime, &sortVal,
		); err != nil {
			return ListPage[domain.Collection]{}, err
		}
		page.Items = append(page.Items, c)
		page.Cursors = append(page.Cursors, EncodeCursor(Cursor{Value: sortVal, ID: c.ID}))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Collection]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// Count returns the number of collections matching the name filter.
func (r *CollectionsRepository) Count(ctx context.Context, nameContains *string) (int32, error) {
	query := `SELECT COUNT(*) FROM collections`
	args := make([]any, 0, 1)
	if nameContains != nil && strings.TrimSpace(*nameContains) != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(*nameContains)+"%")
	}
	var count int32
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListByAuthor pages through a user's collections, newest first.
func (r *CollectionsRepository) ListByAuthor(ctx context.Context, authorID int64, limit int32, cursor *Cursor) (ListPage[domain.Collection], error) {
	limit = clampLimit(limit)
	col := sortColumn{expr: "creation_time", cast: "timestamptz"}
	args := []any{authorID}

	query := `SELECT` + collectionColumns + `, (creation_time)::text
        FROM collections WHERE author_id = $1`
	if cursor != nil {
		query += ` AND ` + keysetPredicate(col, SortDesc, cursor, &args)
	}
	query += orderByClause(col, SortDesc)
	args = append(args, limit+1)
	query += ` LIMIT $` + itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return ListPage[domain.Collection]{}, err
	}
	defer rows.Close()

	var page ListPage[domain.Collection]
	for rows.Next() {
		var c domain.Collection
		var sortVal string
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &c.Name, &c.LikeCount,
			&c.CreationTime, &c.LastUpdateTime, &sortVal,
		); err != nil {
			return ListPage[domain.Collection]{}, err
		}
		page.Items = append(page.Items, c)
		page.Cursors = append(page.Cursors, EncodeCursor(Cursor{Value: sortVal, ID: c.ID}))
	}
	if err := rows.Err(); err != nil {
		return ListPage[domain.Collection]{}, err
	}
	if int32(len(page.Items)) > limit {
		page.Items = page.Items[:limit]
		page.Cursors = page.Cursors[:limit]
		page.HasNext = true
	}
	return page, nil
}

// CountByAuthor returns the number of collections owned by a user.
func (r *CollectionsRepository) CountByAuthor(ctx context.Context, authorID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM collections WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}

// IsLikedBy reports whether the user has liked the collection.
func (r *CollectionsRepository) IsLikedBy(ctx context.Context, collectionID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM collection_likes WHERE collection_id = $1 AND user_id = $2)`,
		collectionID, userID).Scan(&exists)
	return exists, err
}

// LikeUsers pages through the users who liked a collection, by user id.
func (r *CollectionsRepository) LikeUsers(ctx context.Context, collectionID int64, limit int32, cursor *Cursor) (ListPage[domain.User], error) {
	limit = clampLimit(limit)
	args := []any{collectionID}
	query := `
        SELECT` + prefixColumns(userColumns, "u") + `
        FROM users u
        JOIN collection_likes cl ON cl.user_id = u.id
        WHERE cl.collection_id = $1`
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

// CountLikeUsers returns the number of users who liked a collection.
func (r *CollectionsRepository) CountLikeUsers(ctx context.Context, collectionID int64) (int32, error) {
	var count int32
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM collection_likes WHERE collection_id = $1`, collectionID).Scan(&count)
	return count, err
}

// lockByOwner loads a collection FOR UPDATE and verifies ownership. Missing
// and foreign collections both report NotFound.
func (r *CollectionsRepository) lockByOwner(ctx context.Context, collectionID, authorID int64) (domain.Collection, error) {
	row := r.db.QueryRow(ctx, `SELECT`+collectionColumns+`FROM collections WHERE id = $1 FOR UPDATE`, collectionID)
	collection, err := scanCollection(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Collection{}, domain.NotFound("Collection not found")
		}
		return domain.Collection{}, err
	}
	if collection.AuthorID != authorID {
		return domain.Collection{}, domain.NotFound("Collection not found")
	}
	return collection, nil
}

// touch refreshes last_update_time and reloads the collection into dst.
func (r *CollectionsRepository) touch(ctx context.Context, collectionID int64, dst *domain.Collection) error {
	row := r.db.QueryRow(ctx, `
        UPDATE collections SET last_update_time = now()
        WHERE id = $1
        RETURNING`+collectionColumns, collectionID)
	collection, err := scanCollection(row)
	if err != nil {
		return err
	}
	*dst = collection
	return nil
}

func scanCollection(row pgx.Row) (domain.Collection, error) {
	var c domain.Collection
	err := row.Scan(
		&c.ID,
		&c.AuthorID,
		&c.Name,
		&c.LikeCount,
		&c.CreationTime,
		&c.LastUpdateTime,
	)
	if err != nil {
		return domain.Collection{}, err
	}
	return c, nil
}
