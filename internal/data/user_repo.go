package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zentra-pos/zentra/internal/data/pgxutil"
	"github.com/zentra-pos/zentra/internal/domain/model"
)

// UserRepo provides database operations for user profiles.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	userColumnsSQL = `id, email, name, role, organization_id, created_at, updated_at`

	userGetByIDQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE id = $1`

	userGetByEmailQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE lower(email) = lower($1)`
)

// Create inserts a new user profile. The id is the auth identity id, so a
// duplicate insert for the same identity surfaces as ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.UserProfile, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.UserProfile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, email, name, role, organization_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+userColumnsSQL,
			strings.TrimSpace(req.ID),
			strings.TrimSpace(req.Email),
			strings.TrimSpace(req.Name),
			req.Role,
			req.OrganizationID,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserProfile])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a user profile by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// GetByEmail retrieves a user profile by email (case-insensitive).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, "failed to get user by email", email)
}

// ListWithOptions retrieves the members of an organization, newest first.
// ExcludeID removes the requesting owner from the employee listing.
func (r *UserRepo) ListWithOptions(ctx context.Context, opts model.UsersListOptions) ([]*model.UserProfile, error) {
	if strings.TrimSpace(opts.OrganizationID) == "" {
		return nil, errors.New("organization_id is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE organization_id = $1`
	args := []any{opts.OrganizationID}
	if strings.TrimSpace(opts.ExcludeID) != "" {
		query += ` AND id <> $2`
		args = append(args, opts.ExcludeID)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.UserProfile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UserProfile])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.UserProfile, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a user profile.
func (r *UserRepo) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.UserProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE users SET " + setClause +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + userColumnsSQL

	var out model.UserProfile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserProfile])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// SetOrganization points a user profile at an organization. Used when the
// owner's organization is provisioned after the profile insert.
func (r *UserRepo) SetOrganization(ctx context.Context, userID, organizationID string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE users SET organization_id = $1, updated_at = $2 WHERE id = $3`,
			organizationID, r.timeProvider.Now().UTC(), userID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to set user organization: %w", err)
	}
	return nil
}

// Delete deletes a user profile by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return rows > 0, nil
}

// CountByOrganization counts organization members, excluding excludeID when set.
func (r *UserRepo) CountByOrganization(ctx context.Context, organizationID, excludeID string) (int, error) {
	query := `SELECT count(*) FROM users WHERE organization_id = $1`
	args := []any{organizationID}
	if strings.TrimSpace(excludeID) != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}

	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// --- helpers ---

// buildUpdateClause builds the SQL SET clause and args for updating a user based on the request.
func (r *UserRepo) buildUpdateClause(req model.UpdateUserRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, *req.Role)
	}
	if req.OrganizationID != nil {
		if strings.TrimSpace(*req.OrganizationID) == "" {
			setParts = append(setParts, "organization_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("organization_id = $%d", nextIdx()))
			args = append(args, *req.OrganizationID)
		}
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

func (r *UserRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.UserProfile, error) {
	var user model.UserProfile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserProfile])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUserExists
	}
	return err
}
