package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zenithfinancial/portal/svc/identity"
	"github.com/zenithfinancial/portal/svc/users"
)

// MockUserStore is a mock implementation of auth.UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (users.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(users.User), args.Error(1)
}

func (m *MockUserStore) CreateUser(ctx context.Context, u users.NewUser) (users.User, bool, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(users.User), args.Bool(1), args.Error(2)
}

func (m *MockUserStore) TouchLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of auth.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthorizationURL(provider identity.Provider, state string) (string, error) {
	args := m.Called(provider, state)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, code string) (identity.Result, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(identity.Result), args.Error(1)
}

func (m *MockIdentityProvider) Refresh(ctx context.Context, refreshToken string) (identity.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(identity.Tokens), args.Error(1)
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, id string) (identity.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.User), args.Error(1)
}
