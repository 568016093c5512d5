package auth

import (
	"context"

	"github.com/zenithfinancial/portal/svc/identity"
	"github.com/zenithfinancial/portal/svc/users"
)

// UserStore is the part of the credential store the auth flows use.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	GetUserByID(ctx context.Context, id int64) (users.User, error)
	CreateUser(ctx context.Context, u users.NewUser) (users.User, bool, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// IdentityProvider is the hosted sign-in service.
type IdentityProvider interface {
	AuthorizationURL(provider identity.Provider, state string) (string, error)
	Exchange(ctx context.Context, code string) (identity.Result, error)
	Refresh(ctx context.Context, refreshToken string) (identity.Tokens, error)
	GetUser(ctx context.Context, id string) (identity.User, error)
}

var (
	_ UserStore        = (users.Store)(nil)
	_ IdentityProvider = (*identity.Client)(nil)
)
