package service

import (
	"context"
	"errors"
	"strings"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"

	"github.com/zentra-pos/zentra/internal/core"
	"github.com/zentra-pos/zentra/internal/data"
	apperrors "github.com/zentra-pos/zentra/internal/errors"

	"github.com/google/uuid"
)

// EmployeeServiceOptions groups dependencies for EmployeeService.
type EmployeeServiceOptions struct {
	Users core.UserRepository
}

// EmployeeService manages the employee roster of a single organization. Every
// operation is scoped to the calling owner's organization ID.
type EmployeeService struct {
	users core.UserRepository
}

// NewEmployeeService constructs a new EmployeeService.
func NewEmployeeService(opts EmployeeServiceOptions) *EmployeeService {
	return &EmployeeService{users: opts.Users}
}

// AddEmployeeInput groups parameters for adding an employee to an organization.
type AddEmployeeInput struct {
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  domainauth.Role `json:"role"`
}

// Add creates an employee profile inside the organization. Only manager and
// staff roles can be granted here; owners come only from signup.
func (s *EmployeeService) Add(ctx context.Context, organizationID string, input AddEmployeeInput) (*model.UserProfile, error) {
	if organizationID == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	role := input.Role
	if role != domainauth.RoleManager && role != domainauth.RoleStaff {
		return nil, apperrors.ValidationField("role", "role must be manager or staff")
	}

	req := &model.CreateUserRequest{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Name:           strings.TrimSpace(input.Name),
		Role:           role,
		OrganizationID: &organizationID,
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	profile, err := s.users.Create(ctx, req)
	if err != nil {
		if errors.Is(err, data.ErrUserExists) {
			return nil, apperrors.Conflict("an employee with this email already exists")
		}
		return nil, err
	}
	return profile, nil
}

// List returns the organization's employees, excluding the owner.
func (s *EmployeeService) List(ctx context.Context, organizationID, ownerID string) ([]*model.UserProfile, error) {
	if organizationID == "" {
		return nil, apperrors.Validation("organization ID is required")
	}
	return s.users.ListWithOptions(ctx, model.UsersListOptions{
		OrganizationID: organizationID,
		ExcludeID:      ownerID,
	})
}

// GetByID returns an employee, verifying it belongs to the organization.
// Profiles outside the organization are reported as not found.
func (s *EmployeeService) GetByID(ctx context.Context, organizationID, id string) (*model.UserProfile, error) {
	profile, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.OrganizationID == nil || *profile.OrganizationID != organizationID {
		return nil, data.ErrUserNotFound
	}
	return profile, nil
}

// Update changes an employee's name or role within the organization. Role
// changes are restricted to manager and staff.
func (s *EmployeeService) Update(ctx context.Context, organizationID, id string, req model.UpdateUserRequest) (*model.UserProfile, error) {
	if _, err := s.GetByID(ctx, organizationID, id); err != nil {
		return nil, err
	}
	if req.Role != nil && *req.Role == domainauth.RoleAdmin {
		return nil, apperrors.ValidationField("role", "role must be manager or staff")
	}
	// Organization membership is managed through Add/Remove, not Update.
	req.OrganizationID = nil
	return s.users.Update(ctx, id, req)
}

// Remove deletes an employee from the organization. The owner's own profile
// cannot be removed.
func (s *EmployeeService) Remove(ctx context.Context, organizationID, id string) (bool, error) {
	profile, err := s.GetByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	if profile.Role == domainauth.RoleAdmin {
		return false, apperrors.Forbidden("the organization owner cannot be removed")
	}
	return s.users.Delete(ctx, id)
}

// Count returns the number of employees in the organization, excluding the owner.
func (s *EmployeeService) Count(ctx context.Context, organizationID, ownerID string) (int, error) {
	if organizationID == "" {
		return 0, apperrors.Validation("organization ID is required")
	}
	return s.users.CountByOrganization(ctx, organizationID, ownerID)
}
