package rest

import (
	"context"

	"github.com/google/uuid"
)

type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

type authKey struct{}

func withAuth(ctx context.Context, a AuthContext) context.Context {
	return context.WithValue(ctx, authKey{}, a)
}

func GetAuth(ctx context.Context) (AuthContext, bool) {
	a, ok := ctx.Value(authKey{}).(AuthContext)
	return a, ok
}
