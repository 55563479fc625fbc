package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iota-console/pkg/composables"
	"github.com/iota-uz/iota-console/pkg/httpapi"
)

// BearerGuard rejects requests whose Authorization header does not carry
// token. An empty token disables the guard. Preflight requests pass so CORS
// keeps working.
func BearerGuard(token string) mux.MiddlewareFunc {
	token = strings.TrimSpace(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if subtle.ConstantTimeCompare([]byte(tokenFromRequest(r)), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid bearer token", nil)
				return
			}
			if params, ok := composables.UseParams(r.Context()); ok {
				params.Authenticated = true
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}
