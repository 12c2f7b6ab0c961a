package core

import (
	"context"

	"github.com/zentra-pos/zentra/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user profile data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.UserProfile, error)
	GetByID(ctx context.Context, id string) (*model.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	ListWithOptions(ctx context.Context, opts model.UsersListOptions) ([]*model.UserProfile, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.UserProfile, error)
	SetOrganization(ctx context.Context, userID, organizationID string) error
	Delete(ctx context.Context, id string) (bool, error)
	CountByOrganization(ctx context.Context, organizationID, excludeID string) (int, error)
}

// OrganizationRepository defines the interface for organization data operations.
type OrganizationRepository interface {
	Create(ctx context.Context, req *model.CreateOrganizationRequest) (*model.Organization, error)
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	GetByManagerID(ctx context.Context, managerID string) (*model.Organization, error)
	SetCredentials(ctx context.Context, id, orgCode, passkey string) (*model.Organization, error)
}

// BranchRepository defines the interface for branch data operations.
type BranchRepository interface {
	Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error)
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	ListWithOptions(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error)
	Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
}
