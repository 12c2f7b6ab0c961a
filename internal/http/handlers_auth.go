package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/http/validation"
	"github.com/zentra-pos/zentra/internal/service"
)

// SessionServiceInterface defines the session operations used by AuthHandlers.
type SessionServiceInterface interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Signup(ctx context.Context, input service.SignupInput) (*service.LoginResult, error)
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

const (
	oauthStateCookie = "oauth_state"
	oauthNonceCookie = "oauth_nonce"
	oauthCookieTTL   = 10 * time.Minute

	minPasswordLen = 8
)

// AuthHandlers serves the login, signup, logout, and SSO endpoints.
type AuthHandlers struct {
	sessions     SessionServiceInterface
	renderer     *TemplateRenderer
	logger       *slog.Logger
	cookieDomain string
	isDev        bool
	ssoEnabled   bool
}

// AuthHandlersOptions groups dependencies for AuthHandlers.
type AuthHandlersOptions struct {
	Sessions     SessionServiceInterface
	Renderer     *TemplateRenderer
	Logger       *slog.Logger
	CookieDomain string
	IsDev        bool
	SSOEnabled   bool
}

// NewAuthHandlers constructs AuthHandlers.
func NewAuthHandlers(opts AuthHandlersOptions) *AuthHandlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{
		sessions:     opts.Sessions,
		renderer:     opts.Renderer,
		logger:       logger,
		cookieDomain: opts.CookieDomain,
		isDev:        opts.IsDev,
		ssoEnabled:   opts.SSOEnabled,
	}
}

// setSessionCookie writes the session cookie with a lifetime matching the
// session expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, session domainauth.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !h.isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

var loginRules = map[string][]validation.Validator{
	"email":    {validation.Email("email")},
	"password": {validation.Required("password")},
}

var signupRules = map[string][]validation.Validator{
	"name":     {validation.RequiredRange("name", 1, 100)},
	"email":    {validation.Email("email")},
	"password": {validation.Password("password", minPasswordLen)},
}

// HandleLoginSubmit handles POST /login form submissions.
func (h *AuthHandlers) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"email":    r.PostFormValue("email"),
		"password": r.PostFormValue("password"),
	}
	if errs := validation.Apply(values, loginRules); len(errs) > 0 {
		h.renderLoginPage(w, r, values, errs, "")
		return
	}

	result, err := h.sessions.Login(r.Context(), values["email"], values["password"])
	if err != nil {
		if !errors.Is(err, service.ErrInvalidLogin) {
			h.logger.Error("login failed", slog.Any("error", err))
		}
		// Same message for every failure so accounts cannot be probed.
		h.renderLoginPage(w, r, values, nil, service.InvalidLoginMessage)
		return
	}

	h.setSessionCookie(w, result.Session)
	http.Redirect(w, r, safeRedirectPath(r.PostFormValue("redirect_uri")), http.StatusSeeOther)
}

// HandleSignupSubmit handles POST /signup form submissions. New signups are
// registered as owners and get an organization provisioned on first login.
func (h *AuthHandlers) HandleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"name":     r.PostFormValue("name"),
		"email":    r.PostFormValue("email"),
		"password": r.PostFormValue("password"),
	}
	if errs := validation.Apply(values, signupRules); len(errs) > 0 {
		h.renderSignupPage(w, r, values, errs, "")
		return
	}

	result, err := h.sessions.Signup(r.Context(), service.SignupInput{
		Email:    values["email"],
		Password: values["password"],
		Name:     values["name"],
		Role:     domainauth.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, data.ErrEmailExists) {
			h.renderSignupPage(w, r, values, map[string]string{
				"email": "an account with this email already exists",
			}, "")
			return
		}
		h.logger.Error("signup failed", slog.Any("error", err))
		h.renderSignupPage(w, r, values, nil, "Something went wrong. Please try again.")
		return
	}

	h.setSessionCookie(w, result.Session)
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

// HandleLogout handles POST /logout. It always clears the cookie; a session
// store failure never strands the user logged in.
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.sessions.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger.Warn("logout failed", slog.Any("error", logoutErr))
		}
	}

	h.clearCookie(w, SessionCookieName)

	if IsBrowserRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authStatusResponse is the JSON body for GET /auth/status.
type authStatusResponse struct {
	Authenticated bool                `json:"authenticated"`
	Session       *domainauth.Session `json:"session,omitempty"`
}

// HandleAuthStatus handles GET /auth/status, reporting the current session.
func (h *AuthHandlers) HandleAuthStatus(w http.ResponseWriter, r *http.Request) {
	resp := authStatusResponse{}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if session, getErr := h.sessions.GetSession(r.Context(), cookie.Value); getErr == nil {
			resp.Authenticated = true
			resp.Session = session
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// HandleSSOStart handles GET /auth/sso, redirecting to the identity provider.
func (h *AuthHandlers) HandleSSOStart(w http.ResponseWriter, r *http.Request) {
	if !h.ssoEnabled {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	callbackURL := requestScheme(r) + "://" + r.Host + "/auth/callback"
	result, err := h.sessions.BeginLogin(r.Context(), callbackURL)
	if err != nil {
		h.logger.Error("sso begin failed", slog.Any("error", err))
		http.Redirect(w, r, LoginPath+"?error=sso", http.StatusSeeOther)
		return
	}

	h.setOAuthCookie(w, oauthStateCookie, result.State)
	h.setOAuthCookie(w, oauthNonceCookie, result.Nonce)
	http.Redirect(w, r, result.AuthURL, http.StatusSeeOther)
}

// HandleSSOCallback handles GET /auth/callback, finishing the SSO flow.
func (h *AuthHandlers) HandleSSOCallback(w http.ResponseWriter, r *http.Request) {
	defer func() {
		h.clearCookie(w, oauthStateCookie)
		h.clearCookie(w, oauthNonceCookie)
	}()

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.Warn("sso callback state mismatch")
		http.Redirect(w, r, LoginPath+"?error=sso", http.StatusSeeOther)
		return
	}

	nonce := ""
	if nonceCookie, nonceErr := r.Cookie(oauthNonceCookie); nonceErr == nil {
		nonce = nonceCookie.Value
	}

	result, err := h.sessions.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  r.URL.Query().Get("code"),
		State: stateCookie.Value,
		Nonce: nonce,
	})
	if err != nil {
		h.logger.Error("sso callback failed", slog.Any("error", err))
		http.Redirect(w, r, LoginPath+"?error=sso", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, result.Session)
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

func (h *AuthHandlers) setOAuthCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   int(oauthCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   !h.isDev,
		SameSite: http.SameSiteLaxMode,
	})
}

// renderLoginPage re-renders the login form with errors and prior values.
func (h *AuthHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, values, fieldErrs map[string]string, formErr string) {
	data := NewTemplateData(r, PageLogin, PageMeta{Title: "Log in"})
	data.FormValues = map[string]string{"email": values["email"]}
	if fieldErrs != nil {
		data.FormErrors = fieldErrs
	}
	data.FormError = formErr
	h.renderer.Render(w, http.StatusOK, data)
}

// renderSignupPage re-renders the signup form with errors and prior values.
func (h *AuthHandlers) renderSignupPage(w http.ResponseWriter, r *http.Request, values, fieldErrs map[string]string, formErr string) {
	data := NewTemplateData(r, PageSignup, PageMeta{Title: "Sign up"})
	data.FormValues = map[string]string{"name": values["name"], "email": values["email"]}
	if fieldErrs != nil {
		data.FormErrors = fieldErrs
	}
	data.FormError = formErr
	h.renderer.Render(w, http.StatusOK, data)
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
