package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Public marketing pages.
	PageHome         = "home"
	PageDemo         = "demo"
	PageLogin        = "login"
	PageSignup       = "signup"
	PageUnauthorized = "unauthorized"
	PageNotFound     = "not-found"

	// Feature detail pages.
	PageFeatureMultiBranch = "feature-multi-branch"
	PageFeatureAIInsights  = "feature-ai-insights"
	PageFeaturePOSBilling  = "feature-pos-billing"
	PageFeatureSecurity    = "feature-security"

	// Owner console pages.
	PageDashboard = "dashboard"
	PageEmployees = "employees"
	PageBranches  = "branches"
	PageSettings  = "settings"
)

const (
	// SessionCookieName carries the server-side session identifier.
	SessionCookieName = "session_id"

	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath = "/login"
	// UnauthorizedPath is where under-privileged browser requests are redirected.
	UnauthorizedPath = "/unauthorized"
	// DashboardPath is the post-login landing page.
	DashboardPath = "/dashboard"

	// MaxListLimit caps page sizes on list endpoints.
	MaxListLimit = 200
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:               "home-content",
	PageDemo:               "demo-content",
	PageLogin:              "login-content",
	PageSignup:             "signup-content",
	PageUnauthorized:       "unauthorized-content",
	PageNotFound:           "not-found-content",
	PageFeatureMultiBranch: "feature-multi-branch-content",
	PageFeatureAIInsights:  "feature-ai-insights-content",
	PageFeaturePOSBilling:  "feature-pos-billing-content",
	PageFeatureSecurity:    "feature-security-content",
	PageDashboard:          "dashboard-content",
	PageEmployees:          "employees-content",
	PageBranches:           "branches-content",
	PageSettings:           "settings-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "home-content"
}
