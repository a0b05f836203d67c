package main

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// authService guards the destructive scenario endpoints with a shared admin
// token. An empty token disables the check.
type authService struct {
	token []byte
}

func newAuthService(token string) *authService {
	return &authService{token: []byte(token)}
}

func (a *authService) validToken(provided string) bool {
	if len(a.token) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(a.token, []byte(provided)) == 1
}

// tokenFromRequest reads a bearer token, falling back to the "token" form
// field used by the HTML page.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	}
	return r.FormValue("token")
}

func (a *authService) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.validToken(tokenFromRequest(r)) {
			http.Error(w, "invalid admin token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
