package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims accepted by the archive API.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type claimsCtxKey struct{}

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsCtxKey{}).(*Claims)
	return c
}
