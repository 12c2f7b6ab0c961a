package service

import (
	"context"
	"errors"

	"github.com/zentra-pos/zentra/internal/domain/model"

	"github.com/zentra-pos/zentra/internal/core"
	"github.com/zentra-pos/zentra/internal/data"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
)

// BranchServiceOptions groups dependencies for BranchService.
type BranchServiceOptions struct {
	Branches core.BranchRepository
}

// BranchService manages an organization's branch locations. Every operation is
// scoped to the calling owner's organization ID.
type BranchService struct {
	branches core.BranchRepository
}

// NewBranchService constructs a new BranchService.
func NewBranchService(opts BranchServiceOptions) *BranchService {
	return &BranchService{branches: opts.Branches}
}

// Create adds a branch to the organization.
func (s *BranchService) Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error) {
	if organizationID == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	return s.branches.Create(ctx, organizationID, req)
}

// List returns the organization's branches.
func (s *BranchService) List(ctx context.Context, organizationID string) ([]*model.Branch, error) {
	if organizationID == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	return s.branches.ListWithOptions(ctx, model.BranchesListOptions{
		OrganizationID: organizationID,
	})
}

// GetByID returns a branch, verifying it belongs to the organization.
// Branches of other organizations are reported as not found.
func (s *BranchService) GetByID(ctx context.Context, organizationID, id string) (*model.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch.OrganizationID != organizationID {
		return nil, data.ErrBranchNotFound
	}
	return branch, nil
}

// Update changes a branch's name or address within the organization.
func (s *BranchService) Update(ctx context.Context, organizationID, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	if _, err := s.GetByID(ctx, organizationID, id); err != nil {
		return nil, err
	}
	return s.branches.Update(ctx, id, req)
}

// Delete removes a branch from the organization.
func (s *BranchService) Delete(ctx context.Context, organizationID, id string) (bool, error) {
	if _, err := s.GetByID(ctx, organizationID, id); err != nil {
		if errors.Is(err, data.ErrBranchNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.branches.Delete(ctx, id)
}

// Count returns the number of branches in the organization.
func (s *BranchService) Count(ctx context.Context, organizationID string) (int, error) {
	if organizationID == "" {
		return 0, apperrors.Validation("organization ID is required")
	}
	return s.branches.CountByOrganization(ctx, organizationID)
}
