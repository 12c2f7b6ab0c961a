package httpx

import (
	"errors"
	"net/http"
)

var errNotFoundRoute = errors.New("resource not found")

// HandleHome renders the marketing landing page.
func (h *UIHandlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageHome, PageMeta{
		Title:       "Zentra — Retail management for growing businesses",
		Description: "Point of sale, inventory, and team management in one place.",
	})
	h.renderer.Render(w, http.StatusOK, data)
}

// HandleDemo renders the product demo page.
func (h *UIHandlers) HandleDemo(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageDemo, PageMeta{
		Title:       "Demo — Zentra",
		Description: "See Zentra in action.",
	})
	h.renderer.Render(w, http.StatusOK, data)
}

// featurePage builds a handler for one of the feature detail pages.
func (h *UIHandlers) featurePage(page, title, description string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := NewTemplateData(r, page, PageMeta{Title: title, Description: description})
		h.renderer.Render(w, http.StatusOK, data)
	}
}

// HandleLoginPage renders the login form. Signed-in users are sent to the
// dashboard instead.
func (h *UIHandlers) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if GetSessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}

	data := NewTemplateData(r, PageLogin, PageMeta{Title: "Log in — Zentra"})
	data.FormValues["redirect_uri"] = safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if r.URL.Query().Get("error") == "sso" {
		data.FormError = "Single sign-on failed. Please try again or use your password."
	}
	data.Data = map[string]bool{"SSOEnabled": h.ssoEnabled}
	h.renderer.Render(w, http.StatusOK, data)
}

// HandleSignupPage renders the signup form.
func (h *UIHandlers) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	if GetSessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}

	data := NewTemplateData(r, PageSignup, PageMeta{Title: "Sign up — Zentra"})
	h.renderer.Render(w, http.StatusOK, data)
}

// HandleUnauthorized renders the access-denied page shown when a signed-in
// user lacks the role for a page.
func (h *UIHandlers) HandleUnauthorized(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageUnauthorized, PageMeta{Title: "Access denied — Zentra"})
	h.renderer.Render(w, http.StatusForbidden, data)
}

// HandleNotFound renders the HTML 404 page for browser requests and a JSON
// error otherwise.
func (h *UIHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errNotFoundRoute,
		})
		return
	}

	data := NewTemplateData(r, PageNotFound, PageMeta{Title: "Page not found — Zentra"})
	h.renderer.Render(w, http.StatusNotFound, data)
}
