package httpx

import (
	"context"

	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyIdentity ctxKey = "identity"
	CtxKeyClaims   ctxKey = "claims"
)

// WithIdentity stores a verified identity and its raw claims on ctx.
func WithIdentity(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyIdentity, c.Identity())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// IdentityFromContext returns the caller identity or nil when the request was
// not authenticated.
func IdentityFromContext(ctx context.Context) *access.Identity {
	if id, ok := ctx.Value(CtxKeyIdentity).(*access.Identity); ok {
		return id
	}
	return nil
}
