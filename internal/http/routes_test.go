package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
)

func newTestRouter(t *testing.T, sessions *stubSessionService) http.Handler {
	t.Helper()
	return NewRouter(RouterOptions{
		Services: RouterServices{
			Sessions:  sessions,
			Employees: &stubEmployees{},
			Branches:  &stubBranches{},
			Organizations: &stubOrganizations{
				getForOwnerFunc: func(_ context.Context, ownerID string) (*model.Organization, error) {
					return &model.Organization{ID: "org-1", Name: "Acme", ManagerID: ownerID}, nil
				},
			},
		},
		Renderer: newTestRenderer(t),
		Logger:   testLogger(),
		IsDev:    true,
	})
}

func browserGet(path string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Accept", "text/html")
	return r
}

func TestRouter_PublicPages(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	for path, want := range map[string]string{
		"/":                      "home",
		"/demo":                  "demo",
		"/login":                 "login",
		"/signup":                "signup",
		"/unauthorized":          "unauthorized",
		"/features/multi-branch": "multi-branch",
		"/features/ai-insights":  "ai-insights",
		"/features/pos-billing":  "pos-billing",
		"/features/security":     "security",
	} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, browserGet(path))
			if path == "/unauthorized" {
				assert.Equal(t, http.StatusForbidden, w.Code)
			} else {
				assert.Equal(t, http.StatusOK, w.Code)
			}
			assert.Contains(t, w.Body.String(), want)
		})
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	t.Run("browser gets html page", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, browserGet("/no-such-page"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not found")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	})

	t.Run("api gets json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/no-such-endpoint/extra", nil)
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestRouter_DashboardRequiresAuth(t *testing.T) {
	router := newTestRouter(t, newStubSessionService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, browserGet("/dashboard"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard", w.Header().Get("Location"))
}

func TestRouter_DashboardRendersForOwner(t *testing.T) {
	sessions := newStubSessionService()
	id := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSessionCookie(browserGet("/dashboard"), id))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard")
}

func TestRouter_AdminPagesGateOnRole(t *testing.T) {
	sessions := newStubSessionService()
	staffID := sessions.addSession(domainauth.RoleStaff, "org-1")
	managerID := sessions.addSession(domainauth.RoleManager, "org-1")
	adminID := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	adminPages := []string{"/admin/employees", "/admin/branches", "/admin/settings"}

	t.Run("staff and manager redirect to unauthorized", func(t *testing.T) {
		for _, sessionID := range []string{staffID, managerID} {
			for _, path := range adminPages {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, withSessionCookie(browserGet(path), sessionID))
				assert.Equal(t, http.StatusSeeOther, w.Code, path)
				assert.Equal(t, UnauthorizedPath, w.Header().Get("Location"), path)
			}
		}
	})

	t.Run("anonymous redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, browserGet("/admin/employees"))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), LoginPath))
	})

	t.Run("owner gets pages", func(t *testing.T) {
		for _, path := range adminPages {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, withSessionCookie(browserGet(path), adminID))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

func TestRouter_APIGatesOnRole(t *testing.T) {
	sessions := newStubSessionService()
	staffID := sessions.addSession(domainauth.RoleStaff, "org-1")
	adminID := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("staff gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/employees", nil), staffID)
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner gets data", func(t *testing.T) {
		for _, path := range []string{"/api/employees", "/api/branches"} {
			w := httptest.NewRecorder()
			r := withSessionCookie(httptest.NewRequest(http.MethodGet, path, nil), adminID)
			router.ServeHTTP(w, r)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

func TestRouter_AdminFormRequiresCSRF(t *testing.T) {
	sessions := newStubSessionService()
	adminID := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	r := postForm("/admin/branches", url.Values{"name": {"Downtown"}})
	r.Header.Set("Accept", "text/html")
	withSessionCookie(r, adminID)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token-abc"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AdminFormWithCSRF(t *testing.T) {
	sessions := newStubSessionService()
	adminID := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	form := url.Values{"name": {"Downtown"}, CSRFFieldName: {"token-abc"}}
	r := postForm("/admin/branches", form)
	r.Header.Set("Accept", "text/html")
	withSessionCookie(r, adminID)
	r.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token-abc"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/branches", w.Header().Get("Location"))
}

func TestRouter_LoginPageRedirectsSignedIn(t *testing.T) {
	sessions := newStubSessionService()
	id := sessions.addSession(domainauth.RoleAdmin, "org-1")
	router := newTestRouter(t, sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSessionCookie(browserGet("/login"), id))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, DashboardPath, w.Header().Get("Location"))
}

func TestRouter_AuthStatus(t *testing.T) {
	sessions := newStubSessionService()
	router := newTestRouter(t, sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestRouter_ExpiredSessionTreatedAsAnonymous(t *testing.T) {
	// The session service reports expired sessions as errors, so a stale
	// cookie behaves exactly like an unknown one.
	sessions := newStubSessionService()
	router := newTestRouter(t, sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSessionCookie(browserGet("/dashboard"), "stale"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), LoginPath))
}
