package httpx

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
)

// EmployeeDirectory combines the API and page-rendering employee operations.
type EmployeeDirectory interface {
	EmployeeServiceInterface
	Count(ctx context.Context, organizationID, ownerID string) (int, error)
}

// BranchDirectory combines the API and page-rendering branch operations.
type BranchDirectory interface {
	BranchServiceInterface
	Count(ctx context.Context, organizationID string) (int, error)
}

// OrganizationServiceInterface defines the organization operations used by the router.
type OrganizationServiceInterface = uiOrganizationService

// RouterServices groups the services the router wires into handlers.
type RouterServices struct {
	Sessions      SessionServiceInterface
	Employees     EmployeeDirectory
	Branches      BranchDirectory
	Organizations OrganizationServiceInterface
}

// RouterOptions groups dependencies for NewRouter.
type RouterOptions struct {
	Services     RouterServices
	Renderer     *TemplateRenderer
	StaticFS     fs.FS
	Logger       *slog.Logger
	CookieDomain string
	IsDev        bool
	SSOEnabled   bool
}

// NewRouter builds the HTTP handler tree: public pages, the owner console,
// the JSON API, auth endpoints, and static assets.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := NewAuthHandlers(AuthHandlersOptions{
		Sessions:     opts.Services.Sessions,
		Renderer:     opts.Renderer,
		Logger:       logger,
		CookieDomain: opts.CookieDomain,
		IsDev:        opts.IsDev,
		SSOEnabled:   opts.SSOEnabled,
	})
	employeeHandlers := NewEmployeeHandlers(opts.Services.Employees, logger)
	branchHandlers := NewBranchHandlers(opts.Services.Branches, logger)
	uiHandlers := NewUIHandlers(UIHandlersOptions{
		Renderer:      opts.Renderer,
		Employees:     opts.Services.Employees,
		Branches:      opts.Services.Branches,
		Organizations: opts.Services.Organizations,
		Logger:        logger,
		SSOEnabled:    opts.SSOEnabled,
	})

	sessions := opts.Services.Sessions
	csrf := CSRF(opts.IsDev)
	publicWrap := func(h http.Handler) http.Handler {
		return csrf(OptionalAuth(sessions)(h))
	}
	authWrap := func(h http.Handler) http.Handler {
		return RequireAuthBrowser(sessions)(csrf(h))
	}
	adminWrap := func(h http.Handler) http.Handler {
		return RequireRoleBrowser(sessions, domainauth.RoleAdmin)(csrf(h))
	}
	apiWrap := RequireRole(sessions, domainauth.RoleAdmin)

	mux := http.NewServeMux()

	// Health and static assets.
	mux.HandleFunc("GET /healthz", HandleHealth)
	mux.HandleFunc("HEAD /healthz", HandleHealth)
	if opts.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(opts.StaticFS)))
	}

	// Public pages.
	for pattern, handler := range map[string]http.HandlerFunc{
		"GET /{$}":          uiHandlers.HandleHome,
		"GET /demo":         uiHandlers.HandleDemo,
		"GET /login":        uiHandlers.HandleLoginPage,
		"GET /signup":       uiHandlers.HandleSignupPage,
		"GET /unauthorized": uiHandlers.HandleUnauthorized,
		"GET /features/multi-branch": uiHandlers.featurePage(PageFeatureMultiBranch,
			"Multi-branch management — Zentra", "Run every location from one dashboard."),
		"GET /features/ai-insights": uiHandlers.featurePage(PageFeatureAIInsights,
			"AI insights — Zentra", "Sales forecasts and anomaly alerts for your stores."),
		"GET /features/pos-billing": uiHandlers.featurePage(PageFeaturePOSBilling,
			"POS billing — Zentra", "Fast, reliable checkout for every counter."),
		"GET /features/security": uiHandlers.featurePage(PageFeatureSecurity,
			"Security — Zentra", "Role-based access and audited sessions."),
	} {
		mux.Handle(pattern, publicWrap(handler))
	}

	// Auth endpoints.
	mux.Handle("POST /login", publicWrap(http.HandlerFunc(authHandlers.HandleLoginSubmit)))
	mux.Handle("POST /signup", publicWrap(http.HandlerFunc(authHandlers.HandleSignupSubmit)))
	mux.Handle("POST /logout", csrf(http.HandlerFunc(authHandlers.HandleLogout)))
	mux.HandleFunc("GET /auth/status", authHandlers.HandleAuthStatus)
	mux.HandleFunc("GET /auth/sso", authHandlers.HandleSSOStart)
	mux.HandleFunc("GET /auth/callback", authHandlers.HandleSSOCallback)

	// Signed-in pages.
	mux.Handle("GET /dashboard", authWrap(http.HandlerFunc(uiHandlers.HandleDashboard)))

	// Owner console.
	for pattern, handler := range map[string]http.HandlerFunc{
		"GET /admin/employees":              uiHandlers.HandleEmployeesPage,
		"POST /admin/employees":             uiHandlers.HandleEmployeeCreate,
		"POST /admin/employees/{id}/delete": uiHandlers.HandleEmployeeDelete,
		"GET /admin/branches":               uiHandlers.HandleBranchesPage,
		"POST /admin/branches":              uiHandlers.HandleBranchCreate,
		"POST /admin/branches/{id}/delete":  uiHandlers.HandleBranchDelete,
		"GET /admin/settings":               uiHandlers.HandleSettingsPage,
		"POST /admin/settings/rotate":       uiHandlers.HandleRotateCredentials,
	} {
		mux.Handle(pattern, adminWrap(handler))
	}

	// JSON API, owner-gated.
	registerCRUD(mux, apiWrap, crudRoutes{
		base:   "/api/employees",
		list:   employeeHandlers.HandleList,
		create: employeeHandlers.HandleCreate,
		get:    employeeHandlers.HandleGet,
		update: employeeHandlers.HandleUpdate,
		remove: employeeHandlers.HandleDelete,
	})
	registerCRUD(mux, apiWrap, crudRoutes{
		base:   "/api/branches",
		list:   branchHandlers.HandleList,
		create: branchHandlers.HandleCreate,
		get:    branchHandlers.HandleGet,
		update: branchHandlers.HandleUpdate,
		remove: branchHandlers.HandleDelete,
	})

	handler := notFoundHandler(mux, uiHandlers)
	handler = BrowserDetection()(handler)
	handler = Compression()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// crudRoutes groups the handlers for one REST resource.
type crudRoutes struct {
	base   string
	list   http.HandlerFunc
	create http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	remove http.HandlerFunc
}

// registerCRUD registers the standard method routes for a resource, wrapping
// each with the given middleware.
func registerCRUD(mux *http.ServeMux, wrap func(http.Handler) http.Handler, routes crudRoutes) {
	mux.Handle("GET "+routes.base, wrap(routes.list))
	mux.Handle("POST "+routes.base, wrap(routes.create))
	mux.Handle("GET "+routes.base+"/{id}", wrap(routes.get))
	mux.Handle("PUT "+routes.base+"/{id}", wrap(routes.update))
	mux.Handle("DELETE "+routes.base+"/{id}", wrap(routes.remove))
}

// notFoundHandler intercepts the mux's default 404 and serves the site's own
// not-found page instead. Handler-written 404s (JSON bodies) pass through.
func notFoundHandler(mux *http.ServeMux, ui *UIHandlers) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw := &captureWriter{ResponseWriter: w}
		mux.ServeHTTP(cw, r)
		if cw.suppressed {
			ui.HandleNotFound(w, r)
		}
	})
}

// captureWriter suppresses the plain-text 404 the mux writes for unmatched
// routes so a custom page can be rendered in its place.
type captureWriter struct {
	http.ResponseWriter
	wroteHeader bool
	suppressed  bool
}

func (w *captureWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	contentType := w.Header().Get("Content-Type")
	if status == http.StatusNotFound && strings.HasPrefix(contentType, "text/plain") {
		w.suppressed = true
		w.Header().Del("Content-Type")
		w.Header().Del("X-Content-Type-Options")
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.suppressed {
		return len(b), nil
	}
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
