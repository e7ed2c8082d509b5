// Package tenantctx threads a tenant identifier through context.Context,
// giving every internal collaborator a concrete enforcement point for
// per-tenant isolation without depending on the (excluded) HTTP edge,
// adapted from the teacher's internal/api/org_context.go request-scoped
// organization lookup.
package tenantctx

import (
	"context"
	"errors"
)

type tenantKey struct{}

// ErrNoTenant is returned by RequireTenant when the context carries no
// tenant id — a programming error, since every pipeline entry point is
// expected to set one before calling into service code.
var ErrNoTenant = errors.New("tenantctx: no tenant id in context")

// With returns a copy of ctx carrying tenantID.
func With(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// From returns the tenant id carried by ctx, if any.
func From(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tenantKey{}).(string)
	return id, ok && id != ""
}

// Require returns the tenant id carried by ctx or ErrNoTenant.
func Require(ctx context.Context) (string, error) {
	id, ok := From(ctx)
	if !ok {
		return "", ErrNoTenant
	}
	return id, nil
}

// Matches reports whether ctx's tenant id equals want. No package in this
// module calls it.
func Matches(ctx context.Context, want string) bool {
	id, ok := From(ctx)
	return ok && id == want
}
