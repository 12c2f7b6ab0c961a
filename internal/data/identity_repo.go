package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zentra-pos/zentra/internal/data/pgxutil"
)

// IdentityRecord is a stored credential-backed identity. The password hash
// never leaves the data and adapter layers.
type IdentityRecord struct {
	ID            string    `db:"id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	Name          string    `db:"name"`
	RequestedRole string    `db:"requested_role"`
	CreatedAt     time.Time `db:"created_at"`
}

// CreateIdentityParams carries inputs for IdentityRepo.Create.
type CreateIdentityParams struct {
	Email         string
	PasswordHash  string
	Name          string
	RequestedRole string
}

// IdentityRepo provides database operations for auth identities.
type IdentityRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewIdentityRepo creates a new IdentityRepo with real time provider.
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewIdentityRepoWithTimeProvider creates a new IdentityRepo with a custom time provider (useful for tests).
func NewIdentityRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *IdentityRepo {
	return &IdentityRepo{DB: db, timeProvider: tp}
}

const identityColumnsSQL = `id, email, password_hash, name, requested_role, created_at`

// Create inserts a new identity. Duplicate emails surface as ErrEmailExists.
func (r *IdentityRepo) Create(ctx context.Context, params CreateIdentityParams) (*IdentityRecord, error) {
	email := strings.TrimSpace(params.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if params.PasswordHash == "" {
		return nil, errors.New("password_hash is required")
	}

	var out IdentityRecord
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO identities (email, password_hash, name, requested_role, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+identityColumnsSQL,
			email,
			params.PasswordHash,
			strings.TrimSpace(params.Name),
			params.RequestedRole,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[IdentityRecord])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &out, nil
}

// GetByEmail retrieves an identity by email (case-insensitive).
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	var rec IdentityRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+identityColumnsSQL+`
			FROM identities
			WHERE lower(email) = lower($1)`, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		rec, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[IdentityRecord])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity by email: %w", err)
	}
	return &rec, nil
}
