package service

import (
	"context"

	"github.com/zentra-pos/zentra/internal/domain/model"

	"github.com/zentra-pos/zentra/internal/core"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
)

// OrganizationServiceOptions groups dependencies for OrganizationService.
type OrganizationServiceOptions struct {
	Organizations core.OrganizationRepository
}

// OrganizationService exposes the owner's organization for the settings screen.
type OrganizationService struct {
	orgs core.OrganizationRepository
}

// NewOrganizationService constructs a new OrganizationService.
func NewOrganizationService(opts OrganizationServiceOptions) *OrganizationService {
	return &OrganizationService{orgs: opts.Organizations}
}

// GetByID retrieves an organization by ID.
func (s *OrganizationService) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	if id == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	return s.orgs.GetByID(ctx, id)
}

// GetForOwner retrieves the organization owned by the given user.
func (s *OrganizationService) GetForOwner(ctx context.Context, ownerID string) (*model.Organization, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner ID is required")
	}
	return s.orgs.GetByManagerID(ctx, ownerID)
}

// RotateCredentials replaces the organization's join code and passkey with
// freshly generated values and returns the updated record.
func (s *OrganizationService) RotateCredentials(ctx context.Context, id string) (*model.Organization, error) {
	if id == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	return s.orgs.SetCredentials(ctx, id, generateOrgCode(), generatePasskey())
}
