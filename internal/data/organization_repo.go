package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zentra-pos/zentra/internal/data/pgxutil"
	"github.com/zentra-pos/zentra/internal/domain/model"
)

// OrganizationRepo provides database operations for organizations. The
// backing table keeps its historical name, shops.
type OrganizationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrganizationRepo creates a new OrganizationRepo with real time provider.
func NewOrganizationRepo(db *sql.DB) *OrganizationRepo {
	return &OrganizationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOrganizationRepoWithTimeProvider creates a new OrganizationRepo with a custom time provider (useful for tests).
func NewOrganizationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrganizationRepo {
	return &OrganizationRepo{DB: db, timeProvider: tp}
}

const (
	organizationColumnsSQL = `id, name, manager_id, org_code, passkey, created_at, updated_at`

	organizationGetByIDQuery = `
		SELECT ` + organizationColumnsSQL + `
		FROM shops
		WHERE id = $1`

	organizationGetByManagerIDQuery = `
		SELECT ` + organizationColumnsSQL + `
		FROM shops
		WHERE manager_id = $1`
)

// Create inserts a new organization. The unique manager_id constraint makes
// provisioning idempotent: a second insert for the same owner surfaces as
// ErrOrganizationExists.
func (r *OrganizationRepo) Create(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error) {
	if req == nil {
		return nil, errors.New("create organization request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Organization
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO shops (name, manager_id, org_code, passkey, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+organizationColumnsSQL,
			req.Name,
			req.ManagerID,
			req.OrgCode,
			req.Passkey,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrOrganizationExists
		}
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves an organization by ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	return r.getByQuery(ctx, organizationGetByIDQuery, "failed to get organization by ID", id)
}

// GetByManagerID retrieves the organization owned by the given admin.
func (r *OrganizationRepo) GetByManagerID(ctx context.Context, managerID string) (*model.Organization, error) {
	return r.getByQuery(ctx, organizationGetByManagerIDQuery, "failed to get organization by manager", managerID)
}

// SetCredentials stores generated org_code and passkey credentials.
func (r *OrganizationRepo) SetCredentials(ctx context.Context, id, orgCode, passkey string) (*model.Organization, error) {
	var out model.Organization
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE shops SET org_code = $1, passkey = $2, updated_at = $3
			WHERE id = $4
			RETURNING `+organizationColumnsSQL,
			orgCode, passkey, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to set organization credentials: %w", err)
	}
	return &out, nil
}

func (r *OrganizationRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Organization, error) {
	var org model.Organization
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		org, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Organization])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &org, nil
}
