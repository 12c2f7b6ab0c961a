package httpx

import (
	"net/http"

	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
)

// PageMeta carries per-page metadata rendered into the document head.
type PageMeta struct {
	Title       string
	Description string
}

// TemplateData is the payload passed to every page template.
type TemplateData struct {
	Meta        PageMeta
	CurrentPage string
	Session     *domainauth.Session
	CSRFToken   string

	// Form state for pages that re-render after a failed submission.
	FormValues map[string]string
	FormErrors map[string]string
	FormError  string
	Flash      string

	// Page-specific content.
	Data any
}

// LoggedIn reports whether the viewer has an active session.
func (d *TemplateData) LoggedIn() bool {
	return d.Session != nil
}

// IsOwner reports whether the viewer owns an organization.
func (d *TemplateData) IsOwner() bool {
	return d.Session != nil && d.Session.IsOwner()
}

// NewTemplateData builds the base template data for a request: session from
// context, CSRF token for forms, and page identity for navigation state.
func NewTemplateData(r *http.Request, page string, meta PageMeta) *TemplateData {
	return &TemplateData{
		Meta:        meta,
		CurrentPage: page,
		Session:     GetSessionFromContext(r.Context()),
		CSRFToken:   GetCSRFToken(r.Context()),
		FormValues:  map[string]string{},
		FormErrors:  map[string]string{},
	}
}
