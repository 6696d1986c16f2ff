package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/openclave/realmadmin/pkg/jwtx"
	"github.com/openclave/realmadmin/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token on every request and injects the
// verified claims into the request context. Verification is stateless and
// repeated per request; there is no session affinity.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.PreferredUsername)
	ctx = context.WithValue(ctx, CtxKeyRoles, c.RealmRoles())
	return context.WithValue(ctx, CtxKeyClaims, c)
}

// RFC 6750-compliant error response for bearer auth, with a JSON body the
// SPA can surface.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": desc})
}
