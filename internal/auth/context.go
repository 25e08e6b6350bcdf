package auth

import (
	"context"

	"github.com/recipebox/recipebox/internal/model"
)

type ctxKey struct{}

// ContextWithAuth returns a context carrying the authenticated identity.
func ContextWithAuth(ctx context.Context, identity *model.AuthContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// AuthFromContext returns the authenticated identity, or nil when the
// request did not pass the auth middleware.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	identity, _ := ctx.Value(ctxKey{}).(*model.AuthContext)
	return identity
}

// MustAuthFromContext returns the authenticated identity and panics when
// absent. Handlers behind the auth middleware may rely on it.
func MustAuthFromContext(ctx context.Context) *model.AuthContext {
	identity := AuthFromContext(ctx)
	if identity == nil {
		panic("auth middleware not applied")
	}
	return identity
}
