package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zentra-pos/zentra/internal/data/pgxutil"
	"github.com/zentra-pos/zentra/internal/domain/model"
)

// BranchRepo provides database operations for branch locations.
type BranchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBranchRepo creates a new BranchRepo with real time provider.
func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBranchRepoWithTimeProvider creates a new BranchRepo with a custom time provider (useful for tests).
func NewBranchRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: tp}
}

const (
	branchColumnsSQL = `id, name, organization_id, address, created_at, updated_at`

	branchGetByIDQuery = `
		SELECT ` + branchColumnsSQL + `
		FROM branches
		WHERE id = $1`

	branchListQuery = `
		SELECT ` + branchColumnsSQL + `
		FROM branches
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
)

// Create inserts a new branch into an organization.
func (r *BranchRepo) Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error) {
	if req == nil {
		return nil, errors.New("create branch request is required")
	}
	if strings.TrimSpace(organizationID) == "" {
		return nil, errors.New("organization_id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO branches (name, organization_id, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+branchColumnsSQL,
			strings.TrimSpace(req.Name),
			organizationID,
			req.Address,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID retrieves a branch by ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, branchGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		branch, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch by ID: %w", err)
	}
	return &branch, nil
}

// ListWithOptions retrieves an organization's branches, newest first.
func (r *BranchRepo) ListWithOptions(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error) {
	if strings.TrimSpace(opts.OrganizationID) == "" {
		return nil, errors.New("organization_id is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var rowsOut []model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, branchListQuery, opts.OrganizationID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	res := make([]*model.Branch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a branch.
func (r *BranchRepo) Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 3)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			setParts = append(setParts, "address = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
			args = append(args, *req.Address)
		}
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE branches SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + branchColumnsSQL

	var out model.Branch
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete deletes a branch by ID.
func (r *BranchRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete branch: %w", err)
	}
	return rows > 0, nil
}

// CountByOrganization counts an organization's branches.
func (r *BranchRepo) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT count(*) FROM branches WHERE organization_id = $1`, organizationID).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count branches: %w", err)
	}
	return count, nil
}
