// Package devseed populates a development database with a demo owner
// account, its organization, and a handful of branches and employees.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
	"github.com/zentra-pos/zentra/internal/service"
)

// DemoOwnerEmail and DemoOwnerPassword are the credentials seeded for local
// development logins.
const (
	DemoOwnerEmail    = "owner@zentra.test"
	DemoOwnerPassword = "demo-password"
	demoOwnerName     = "Demo Owner"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB         *sql.DB
	identities *data.IdentityRepo
	profiles   *service.ProfileService
	employees  *service.EmployeeService
	branches   *service.BranchService
	orgs       *data.OrganizationRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	userRepo := data.NewUserRepo(db)
	orgRepo := data.NewOrganizationRepo(db)
	branchRepo := data.NewBranchRepo(db)

	profiles := service.NewProfileService(service.ProfileServiceOptions{
		Users:         userRepo,
		Organizations: orgRepo,
	})
	employees := service.NewEmployeeService(service.EmployeeServiceOptions{
		Users: userRepo,
	})
	branches := service.NewBranchService(service.BranchServiceOptions{
		Branches: branchRepo,
	})

	return Services{
		DB:         db,
		identities: data.NewIdentityRepo(db),
		profiles:   profiles,
		employees:  employees,
		branches:   branches,
		orgs:       orgRepo,
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	owner, err := seedOwner(ctx, svcs, logger)
	if err != nil {
		return err
	}
	if owner.OrganizationID == nil {
		return errors.New("seeded owner has no organization")
	}
	orgID := *owner.OrganizationID

	failures := 0
	failures += seedEmployees(ctx, svcs.employees, orgID, logger)
	failures += seedBranches(ctx, svcs.branches, orgID, logger)
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	if logger != nil {
		logger.InfoContext(ctx, "development seeding complete",
			"owner_email", DemoOwnerEmail, "organization_id", orgID)
	}
	return nil
}

// seedOwner creates the demo owner identity and resolves its profile, which
// provisions the organization on first run. Reruns reuse the existing rows.
func seedOwner(ctx context.Context, svcs Services, logger *slog.Logger) (*model.UserProfile, error) {
	identity, err := svcs.identities.GetByEmail(ctx, DemoOwnerEmail)
	if errors.Is(err, data.ErrIdentityNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(DemoOwnerPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("hash demo password: %w", hashErr)
		}
		identity, err = svcs.identities.Create(ctx, data.CreateIdentityParams{
			Email:         DemoOwnerEmail,
			PasswordHash:  string(hash),
			Name:          demoOwnerName,
			RequestedRole: string(domainauth.RoleAdmin),
		})
		if err != nil && !errors.Is(err, data.ErrEmailExists) {
			return nil, fmt.Errorf("create demo identity: %w", err)
		}
		if identity == nil {
			identity, err = svcs.identities.GetByEmail(ctx, DemoOwnerEmail)
		}
		if logger != nil {
			logger.InfoContext(ctx, "created demo identity", "email", DemoOwnerEmail)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load demo identity: %w", err)
	}

	profile, err := svcs.profiles.Resolve(ctx, domainauth.Identity{
		UserID:        identity.ID,
		Email:         identity.Email,
		Name:          identity.Name,
		RequestedRole: domainauth.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve demo profile: %w", err)
	}
	if profile.OrganizationID == nil {
		// Resolve provisions the organization only on the creating call;
		// a previous partial run may have left the profile unlinked.
		org, orgErr := svcs.orgs.GetByManagerID(ctx, profile.ID)
		if orgErr != nil {
			return nil, fmt.Errorf("load demo organization: %w", orgErr)
		}
		profile.OrganizationID = &org.ID
	}
	return profile, nil
}

func seedEmployees(ctx context.Context, svc *service.EmployeeService, orgID string, logger *slog.Logger) int {
	failures := 0
	seeds := []service.AddEmployeeInput{
		{Email: "maria.flores@zentra.test", Name: "Maria Flores", Role: domainauth.RoleManager},
		{Email: "james.okafor@zentra.test", Name: "James Okafor", Role: domainauth.RoleStaff},
		{Email: "li.wen@zentra.test", Name: "Li Wen", Role: domainauth.RoleStaff},
	}

	for _, input := range seeds {
		created, err := createEmployee(ctx, svc, orgID, input)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create employee", "email", input.Email, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "employee already exists"
			if created {
				msg = "created employee"
			}
			logger.InfoContext(ctx, msg, "email", input.Email)
		}
	}

	return failures
}

func createEmployee(
	ctx context.Context,
	svc *service.EmployeeService,
	orgID string,
	input service.AddEmployeeInput,
) (bool, error) {
	if _, err := svc.Add(ctx, orgID, input); err != nil {
		if apperrors.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func seedBranches(ctx context.Context, svc *service.BranchService, orgID string, logger *slog.Logger) int {
	failures := 0
	seeds := []*model.CreateBranchRequest{
		{Name: "Downtown", Address: stringPtr("12 Market Street")},
		{Name: "Riverside", Address: stringPtr("88 Quay Road")},
	}

	existing, err := svc.List(ctx, orgID)
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list branches", "error", err)
		}
		return 1
	}
	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[b.Name] = true
	}

	for _, req := range seeds {
		if have[req.Name] {
			if logger != nil {
				logger.InfoContext(ctx, "branch already exists", "name", req.Name)
			}
			continue
		}
		if _, createErr := svc.Create(ctx, orgID, req); createErr != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create branch", "name", req.Name, "error", createErr)
			}
			failures++
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "created branch", "name", req.Name)
		}
	}

	return failures
}

func stringPtr(s string) *string { return &s }
