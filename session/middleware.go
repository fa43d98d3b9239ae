package session

import (
	"net/http"
)

// LoginPath is where anonymous requests to protected pages are sent
const LoginPath = "/login"

// RequireAuth only lets requests with an authenticated session through.
// Anything else is redirected to the login page before next runs.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// protected pages must not be served from the browser cache after logout
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")

		id, ok := m.Identity(r.Context())
		if !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
