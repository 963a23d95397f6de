package httpx

import (
	"context"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

type principalKey struct{}

// ContextWithPrincipal attaches a verified principal for downstream handlers.
func ContextWithPrincipal(ctx context.Context, p tokenx.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal the gate attached, if any.
func PrincipalFromContext(ctx context.Context) (tokenx.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(tokenx.Principal)
	return p, ok
}
