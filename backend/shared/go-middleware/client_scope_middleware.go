package middleware

import (
	"net/http"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// ClientScopeMiddleware resolves the caller's identifier and IP once per
// request. Forwarding headers count only when the peer is in trusted.
func ClientScopeMiddleware(trusted utils.TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trusted)
			id := utils.GetClientIdentifier(r, trusted)
			next.ServeHTTP(w, r.WithContext(utils.WithClient(r.Context(), id, ip)))
		})
	}
}
