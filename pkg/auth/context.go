package auth

import "context"

type contextKey string

const (
	claimsKey   contextKey = "auth.claims"
	clientIPKey contextKey = "auth.client_ip"
)

// ContextWithClaims stores the verified access token claims on the context.
func ContextWithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims set by the auth middleware, or nil.
func ClaimsFromContext(ctx context.Context) *AccessTokenClaims {
	claims, _ := ctx.Value(claimsKey).(*AccessTokenClaims)
	return claims
}

// ContextWithClientIP stores the resolved client address on the context.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromContext returns the client address, or "" when unset.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
