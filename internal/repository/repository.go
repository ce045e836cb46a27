package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinegraph/cinegraph/internal/store"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// letting repository methods run against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	db   Querier
	pool *pgxpool.Pool // nil when bound to a transaction

	Users       *UsersRepository
	Movies      *MoviesRepository
	Reviews     *ReviewsRepository
	Comments    *CommentsRepository
	Collections *CollectionsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return newRepository(pool, pool)
}

func newRepository(db Querier, pool *pgxpool.Pool) *Repository {
	r := &Repository{db: db, pool: pool}
	r.Users = &UsersRepository{db: db, root: r}
	r.Movies = &MoviesRepository{db: db, root: r}
	r.Reviews = &ReviewsRepository{db: db, root: r}
	r.Comments = &CommentsRepository{db: db, root: r}
	r.Collections = &CollectionsRepository{db: db, root: r}
	return r
}

// InTx runs fn against a repository bound to a single transaction, committing
// when fn returns nil. Calls on a repository that is already transactional
// reuse the surrounding transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newRepository(tx, nil)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
