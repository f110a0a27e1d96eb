package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/snaptranslate/pkg/slogx"
)

// VerifyFunc resolves a raw bearer token to a principal.
type VerifyFunc func(token string) (Principal, error)

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// BearerAuth rejects requests without a valid bearer token with 401 and a
// FastAPI style {"detail": ...} body.
func BearerAuth(verify VerifyFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				writeUnauthorized(w, "Not authenticated")
				return
			}

			p, err := verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("bearer verify failed", "err", err)
				writeUnauthorized(w, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole must run after BearerAuth.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok || p.Role != role {
				WriteJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": detail})
}
