// go-utils/context_keys.go

package utils

import "context"

// ctxKey is unexported to prevent collisions.
type ctxKey string

// CtxKeyClient stores the ClientIdentifier resolved for the request.
const CtxKeyClient ctxKey = "client"

// CtxKeyClientIP stores the peer IP used for rate limiting.
const CtxKeyClientIP ctxKey = "clientIP"

// CtxKeyAdminSubject stores the "sub" claim of a verified admin token.
const CtxKeyAdminSubject ctxKey = "adminSubject"

// WithClient returns a copy of ctx carrying the caller's identifier and IP.
func WithClient(ctx context.Context, id ClientIdentifier, ip string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyClient, id)
	return context.WithValue(ctx, CtxKeyClientIP, ip)
}

// ClientScope returns the scope of the stored identifier, or "".
func ClientScope(ctx context.Context) string {
	id, ok := ctx.Value(CtxKeyClient).(ClientIdentifier)
	if !ok {
		return ""
	}
	return id.Scope()
}

// ClientIPFrom returns the IP stored by WithClient, or "".
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(CtxKeyClientIP).(string)
	return ip
}
