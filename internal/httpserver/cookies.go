package httpserver

import "net/http"

const (
	authCookieName = "realty_auth_token"
	csrfCookieName = "realty_csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

// setAuthCookie stores the bearer token in an HttpOnly cookie so browser
// clients do not have to keep it in script-reachable storage.
func setAuthCookie(w http.ResponseWriter, token string, maxAgeSec int) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSec,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// setCSRFCookie stores the CSRF token in a cookie the client script can read
// and echo back in the X-CSRF-Token header.
func setCSRFCookie(w http.ResponseWriter, token string, maxAgeSec int) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSec,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
