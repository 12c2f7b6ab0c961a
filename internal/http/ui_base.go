package httpx

import (
	"context"
	"log/slog"

	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/service"
)

// Minimal per-service interfaces so UI handlers depend only on what they call.
type uiEmployeeService interface {
	Add(ctx context.Context, organizationID string, input service.AddEmployeeInput) (*model.UserProfile, error)
	List(ctx context.Context, organizationID, ownerID string) ([]*model.UserProfile, error)
	Remove(ctx context.Context, organizationID, id string) (bool, error)
	Count(ctx context.Context, organizationID, ownerID string) (int, error)
}

type uiBranchService interface {
	Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error)
	List(ctx context.Context, organizationID string) ([]*model.Branch, error)
	Delete(ctx context.Context, organizationID, id string) (bool, error)
	Count(ctx context.Context, organizationID string) (int, error)
}

type uiOrganizationService interface {
	GetForOwner(ctx context.Context, ownerID string) (*model.Organization, error)
	RotateCredentials(ctx context.Context, id string) (*model.Organization, error)
}

// Compile-time interface conformance checks.
var (
	_ uiEmployeeService     = (*service.EmployeeService)(nil)
	_ uiBranchService       = (*service.BranchService)(nil)
	_ uiOrganizationService = (*service.OrganizationService)(nil)
)

// UIHandlers renders the HTML pages of the site and the owner console.
type UIHandlers struct {
	renderer      *TemplateRenderer
	employees     uiEmployeeService
	branches      uiBranchService
	organizations uiOrganizationService
	log           *slog.Logger
	ssoEnabled    bool
}

// UIHandlersOptions groups dependencies for UIHandlers.
type UIHandlersOptions struct {
	Renderer      *TemplateRenderer
	Employees     uiEmployeeService
	Branches      uiBranchService
	Organizations uiOrganizationService
	Logger        *slog.Logger
	SSOEnabled    bool
}

// NewUIHandlers constructs UIHandlers.
func NewUIHandlers(opts UIHandlersOptions) *UIHandlers {
	return &UIHandlers{
		renderer:      opts.Renderer,
		employees:     opts.Employees,
		branches:      opts.Branches,
		organizations: opts.Organizations,
		log:           opts.Logger,
		ssoEnabled:    opts.SSOEnabled,
	}
}

func (h *UIHandlers) logger() *slog.Logger {
	if h.log != nil {
		return h.log
	}
	return slog.Default()
}
