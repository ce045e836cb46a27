package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	db   Querier
	root *Repository
}

const userColumns = `
    id,
    username,
    email,
    hashed_password,
    name,
    avatar_url,
    user_type,
    date_of_birth,
    created_at,
    updated_at
`

// UserCreateParams bundles the fields required to create a user.
type UserCreateParams struct {
	Username       string
	Email          string
	HashedPassword string
	Name           string
	AvatarURL      *string
	UserType       domain.UserType
	DateOfBirth    time.Time
}

// Create inserts a new user row. Duplicate usernames and emails surface as
// AlreadyExists errors naming the offending field.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO users (username, email, hashed_password, name, avatar_url, user_type, date_of_birth)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING`+userColumns,
		strings.TrimSpace(params.Username),
		strings.ToLower(strings.TrimSpace(params.Email)),
		params.HashedPassword,
		params.Name,
		params.AvatarURL,
		params.UserType,
		params.DateOfBirth,
	)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "email") {
				return domain.User{}, domain.AlreadyExists("User", "A user with this email already exists")
			}
			return domain.User{}, domain.AlreadyExists("User", "A user with this username already exists")
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by id.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT`+userColumns+`FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByLogin fetches a user by username or email, for credential checks.
func (r *UsersRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	login = strings.TrimSpace(login)
	row := r.db.QueryRow(ctx,
		`SELECT`+userColumns+`FROM users WHERE username = $1 OR lower(email) = lower($1) LIMIT 1`, login)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return user, nil
}

// SetAvatarURL updates the user's avatar reference.
func (r *UsersRepository) SetAvatarURL(ctx context.Context, id int64, avatarURL *string) (domain.User, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE users SET avatar_url = $2, updated_at = now()
        WHERE id = $1
        RETURNING`+userColumns, id, avatarURL)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.NotFound("User not found")
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.Name,
		&u.AvatarURL,
		&u.UserType,
		&u.DateOfBirth,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
