package users

import (
	"time"

	"github.com/zenithfinancial/portal/pkg/rbac"
)

// ExternallyManagedPassword is stored in password_hash for accounts whose
// credentials live at the identity provider. It is not a valid hash of anything.
const ExternallyManagedPassword = "workos_managed"

// User is a portal account. Password and MFA columns are never loaded.
type User struct {
	ID            int64
	Email         string
	FullName      string
	Role          rbac.Role
	EmailVerified bool
	Active        bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser describes an account to create on first external login.
// Role defaults to client when empty.
type NewUser struct {
	Email         string
	FullName      string
	Role          rbac.Role
	EmailVerified bool
}
