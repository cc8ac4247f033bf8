package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/go-contacts-api/internal/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique-constraint
// violations. The users_email_key index is the source of truth for duplicate
// emails; there is no check-then-insert read.
const pgUniqueViolation = "23505"

const userColumns = "id, email, hashed_password, is_verified, avatar_url, created_at, updated_at"

// UserRepo provides typed PostgreSQL operations for the users table.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new unverified user in a single atomic statement.
// A duplicate email surfaces as domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	query := `INSERT INTO users (email, hashed_password)
	          VALUES ($1, $2)
	          RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// MarkVerified sets is_verified=true for the given email and returns the
// updated record. Re-verifying an already verified user is a no-op update.
func (r *UserRepo) MarkVerified(ctx context.Context, email string) (*domain.User, error) {
	query := `UPDATE users SET is_verified = TRUE, updated_at = now()
	          WHERE email = $1
	          RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	return u, nil
}

func (r *UserRepo) SetAvatar(ctx context.Context, userID int64, url string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, url)
	if err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
