package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
)

// CSRFCookieName is the name of the cookie carrying the CSRF token.
const CSRFCookieName = "csrf_token"

// CSRFHeaderName is the request header checked for the CSRF token.
const CSRFHeaderName = "X-Csrf-Token"

// CSRFFieldName is the form field checked for the CSRF token.
const CSRFFieldName = "csrf_token"

const csrfTokenBytes = 32

// csrfTokenKey is an unexported context key type for the CSRF token.
type csrfTokenKey struct{}

// GetCSRFToken returns the CSRF token for the current request, set by the
// CSRF middleware. Templates embed it in forms.
func GetCSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// CSRF returns a double-submit-cookie CSRF middleware. Safe methods (GET,
// HEAD, OPTIONS) only ensure a token cookie exists; mutating methods must
// echo the cookie value in the X-Csrf-Token header or csrf_token form field.
func CSRF(isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ensureCSRFCookie(w, r, isDev)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "internal_error",
					Err:     errors.New("failed to issue CSRF token"),
				})
				return
			}

			ctx := context.WithValue(r.Context(), csrfTokenKey{}, token)
			r = r.WithContext(ctx)

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if !csrfTokenMatches(r, token) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "csrf_token_invalid",
					Err:     errors.New("missing or invalid CSRF token"),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ensureCSRFCookie returns the existing token cookie value or mints a new one.
func ensureCSRFCookie(w http.ResponseWriter, r *http.Request, isDev bool) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	token, err := generateCSRFToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false, // double-submit: client JS must be able to read it
		Secure:   !isDev,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}

// csrfTokenMatches compares the submitted token against the cookie token in
// constant time. The form field is only consulted for form posts so the body
// is not consumed for JSON requests.
func csrfTokenMatches(r *http.Request, cookieToken string) bool {
	submitted := r.Header.Get(CSRFHeaderName)
	if submitted == "" {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" || hasFormContentType(contentType) {
			submitted = r.PostFormValue(CSRFFieldName)
		}
	}
	if submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(cookieToken)) == 1
}

func hasFormContentType(contentType string) bool {
	const urlencoded = "application/x-www-form-urlencoded"
	const multipart = "multipart/form-data"
	return len(contentType) >= len(urlencoded) && contentType[:len(urlencoded)] == urlencoded ||
		len(contentType) >= len(multipart) && contentType[:len(multipart)] == multipart
}

func generateCSRFToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
