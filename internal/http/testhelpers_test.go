package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/service"
)

// testTemplates is a minimal template set covering every page the tests render.
var testTemplates = fstest.MapFS{
	"layout.tmpl": &fstest.MapFile{Data: []byte(
		`{{define "layout"}}<html><head><title>{{.Meta.Title}}</title></head>` +
			`<body>{{renderContent .CurrentPage .}}</body></html>{{end}}`)},
	"pages/pages.tmpl": &fstest.MapFile{Data: []byte(
		`{{define "home-content"}}home{{end}}` +
			`{{define "demo-content"}}demo{{end}}` +
			`{{define "login-content"}}login {{.FormError}}{{range $f, $m := .FormErrors}}{{$f}}:{{$m}} {{end}}{{end}}` +
			`{{define "signup-content"}}signup {{.FormError}}{{range $f, $m := .FormErrors}}{{$f}}:{{$m}} {{end}}{{end}}` +
			`{{define "unauthorized-content"}}unauthorized{{end}}` +
			`{{define "not-found-content"}}not found{{end}}` +
			`{{define "feature-multi-branch-content"}}multi-branch{{end}}` +
			`{{define "feature-ai-insights-content"}}ai-insights{{end}}` +
			`{{define "feature-pos-billing-content"}}pos-billing{{end}}` +
			`{{define "feature-security-content"}}security{{end}}` +
			`{{define "dashboard-content"}}dashboard employees={{.Data.EmployeeCount}} branches={{.Data.BranchCount}}{{end}}` +
			`{{define "employees-content"}}employees {{.FormError}}{{range $f, $m := .FormErrors}}{{$f}}:{{$m}} {{end}}{{end}}` +
			`{{define "branches-content"}}branches{{end}}` +
			`{{define "settings-content"}}settings{{end}}`)},
	"partials/nav.tmpl": &fstest.MapFile{Data: []byte(`{{define "nav"}}{{end}}`)},
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(testTemplates, testLogger())
	require.NoError(t, err)
	return r
}

// stubSessionService implements SessionServiceInterface for handler tests.
type stubSessionService struct {
	sessions map[string]*domainauth.Session

	loginFunc    func(ctx context.Context, email, password string) (*service.LoginResult, error)
	signupFunc   func(ctx context.Context, input service.SignupInput) (*service.LoginResult, error)
	beginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.LoginResult, error)
	logoutErr    error
	logoutCalls  []string
}

func newStubSessionService() *stubSessionService {
	return &stubSessionService{sessions: map[string]*domainauth.Session{}}
}

// addSession registers a session and returns its ID.
func (s *stubSessionService) addSession(role domainauth.Role, orgID string) string {
	id := "sess-" + string(role)
	s.sessions[id] = &domainauth.Session{
		ID:             id,
		UserID:         "user-" + string(role),
		Email:          string(role) + "@example.com",
		Name:           "Test " + string(role),
		Role:           role,
		OrganizationID: orgID,
		ExpiresAt:      time.Now().Add(time.Hour),
	}
	return id
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidLogin
}

func (s *stubSessionService) Signup(ctx context.Context, input service.SignupInput) (*service.LoginResult, error) {
	if s.signupFunc != nil {
		return s.signupFunc(ctx, input)
	}
	return nil, errors.New("signup not configured")
}

func (s *stubSessionService) BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error) {
	if s.beginFunc != nil {
		return s.beginFunc(ctx, redirectURL)
	}
	return nil, errors.New("sso not configured")
}

func (s *stubSessionService) CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.LoginResult, error) {
	if s.completeFunc != nil {
		return s.completeFunc(ctx, input)
	}
	return nil, errors.New("sso not configured")
}

func (s *stubSessionService) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}
	return nil, errors.New("session not found")
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string) error {
	s.logoutCalls = append(s.logoutCalls, sessionID)
	return s.logoutErr
}

// loginResultFor builds a LoginResult with a ready session for stub flows.
func loginResultFor(email string) *service.LoginResult {
	return &service.LoginResult{
		Session: domainauth.Session{
			ID:             "new-session",
			UserID:         "user-1",
			Email:          email,
			Name:           "Test User",
			Role:           domainauth.RoleAdmin,
			OrganizationID: "org-1",
			ExpiresAt:      time.Now().Add(time.Hour),
		},
		Profile: &model.UserProfile{ID: "user-1", Email: email, Role: domainauth.RoleAdmin},
	}
}

// stubEmployees implements EmployeeDirectory with overridable behavior.
type stubEmployees struct {
	addFunc    func(ctx context.Context, organizationID string, input service.AddEmployeeInput) (*model.UserProfile, error)
	listFunc   func(ctx context.Context, organizationID, ownerID string) ([]*model.UserProfile, error)
	getFunc    func(ctx context.Context, organizationID, id string) (*model.UserProfile, error)
	updateFunc func(ctx context.Context, organizationID, id string, req model.UpdateUserRequest) (*model.UserProfile, error)
	removeFunc func(ctx context.Context, organizationID, id string) (bool, error)
	countFunc  func(ctx context.Context, organizationID, ownerID string) (int, error)
}

func (s *stubEmployees) Add(ctx context.Context, organizationID string, input service.AddEmployeeInput) (*model.UserProfile, error) {
	if s.addFunc != nil {
		return s.addFunc(ctx, organizationID, input)
	}
	orgID := organizationID
	return &model.UserProfile{ID: "emp-1", Email: input.Email, Name: input.Name, Role: input.Role, OrganizationID: &orgID}, nil
}

func (s *stubEmployees) List(ctx context.Context, organizationID, ownerID string) ([]*model.UserProfile, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, organizationID, ownerID)
	}
	return []*model.UserProfile{}, nil
}

func (s *stubEmployees) GetByID(ctx context.Context, organizationID, id string) (*model.UserProfile, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, organizationID, id)
	}
	return nil, data.ErrUserNotFound
}

func (s *stubEmployees) Update(ctx context.Context, organizationID, id string, req model.UpdateUserRequest) (*model.UserProfile, error) {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, organizationID, id, req)
	}
	return nil, data.ErrUserNotFound
}

func (s *stubEmployees) Remove(ctx context.Context, organizationID, id string) (bool, error) {
	if s.removeFunc != nil {
		return s.removeFunc(ctx, organizationID, id)
	}
	return false, nil
}

func (s *stubEmployees) Count(ctx context.Context, organizationID, ownerID string) (int, error) {
	if s.countFunc != nil {
		return s.countFunc(ctx, organizationID, ownerID)
	}
	return 0, nil
}

// stubBranches implements BranchDirectory with overridable behavior.
type stubBranches struct {
	createFunc func(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error)
	listFunc   func(ctx context.Context, organizationID string) ([]*model.Branch, error)
	getFunc    func(ctx context.Context, organizationID, id string) (*model.Branch, error)
	updateFunc func(ctx context.Context, organizationID, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	deleteFunc func(ctx context.Context, organizationID, id string) (bool, error)
	countFunc  func(ctx context.Context, organizationID string) (int, error)
}

func (s *stubBranches) Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, organizationID, req)
	}
	return &model.Branch{ID: "br-1", Name: req.Name, OrganizationID: organizationID}, nil
}

func (s *stubBranches) List(ctx context.Context, organizationID string) ([]*model.Branch, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, organizationID)
	}
	return []*model.Branch{}, nil
}

func (s *stubBranches) GetByID(ctx context.Context, organizationID, id string) (*model.Branch, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, organizationID, id)
	}
	return nil, data.ErrBranchNotFound
}

func (s *stubBranches) Update(ctx context.Context, organizationID, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	if s.updateFunc != nil {
		return s.updateFunc(ctx, organizationID, id, req)
	}
	return nil, data.ErrBranchNotFound
}

func (s *stubBranches) Delete(ctx context.Context, organizationID, id string) (bool, error) {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, organizationID, id)
	}
	return false, nil
}

func (s *stubBranches) Count(ctx context.Context, organizationID string) (int, error) {
	if s.countFunc != nil {
		return s.countFunc(ctx, organizationID)
	}
	return 0, nil
}

// stubOrganizations implements OrganizationServiceInterface.
type stubOrganizations struct {
	getForOwnerFunc func(ctx context.Context, ownerID string) (*model.Organization, error)
	rotateFunc      func(ctx context.Context, id string) (*model.Organization, error)
}

func (s *stubOrganizations) GetForOwner(ctx context.Context, ownerID string) (*model.Organization, error) {
	if s.getForOwnerFunc != nil {
		return s.getForOwnerFunc(ctx, ownerID)
	}
	return nil, data.ErrOrganizationNotFound
}

func (s *stubOrganizations) RotateCredentials(ctx context.Context, id string) (*model.Organization, error) {
	if s.rotateFunc != nil {
		return s.rotateFunc(ctx, id)
	}
	return nil, data.ErrOrganizationNotFound
}
