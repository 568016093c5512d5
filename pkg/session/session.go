package session

import (
	"strings"

	"github.com/zenithfinancial/portal/pkg/rbac"
)

// Session is the authenticated state carried in the encrypted session cookie.
// Role and FullName are a snapshot taken at login and are not re-read from the
// database on each request.
type Session struct {
	IdentityProviderUserID string    `json:"identityProviderUserId"`
	Email                  string    `json:"email"`
	FullName               string    `json:"fullName"`
	Role                   rbac.Role `json:"role"`
	LocalUserID            int64     `json:"localUserId"`
	AccessToken            string    `json:"accessToken"`
	RefreshToken           string    `json:"refreshToken,omitempty"`
	IsLoggedIn             bool      `json:"isLoggedIn"`
}

// Profile is the part of a session that may leave the server.
type Profile struct {
	IdentityProviderUserID string    `json:"identityProviderUserId"`
	Email                  string    `json:"email"`
	FullName               string    `json:"fullName"`
	Role                   rbac.Role `json:"role"`
	LocalUserID            int64     `json:"localUserId"`
	IsLoggedIn             bool      `json:"isLoggedIn"`
}

// Profile strips the provider tokens.
func (s Session) Profile() Profile {
	return Profile{
		IdentityProviderUserID: s.IdentityProviderUserID,
		Email:                  s.Email,
		FullName:               s.FullName,
		Role:                   s.Role,
		LocalUserID:            s.LocalUserID,
		IsLoggedIn:             s.IsLoggedIn,
	}
}

// validateFields checks everything a logged-in session needs except the
// IsLoggedIn flag itself. FullName and RefreshToken are optional.
func (s Session) validateFields() error {
	switch {
	case strings.TrimSpace(s.IdentityProviderUserID) == "":
		return missing("identityProviderUserId")
	case strings.TrimSpace(s.Email) == "":
		return missing("email")
	case !s.Role.Valid():
		return missing("role")
	case s.LocalUserID <= 0:
		return missing("localUserId")
	case s.AccessToken == "":
		return missing("accessToken")
	}
	return nil
}

// Validate reports whether s is a complete, logged-in session.
func (s Session) Validate() error {
	if err := s.validateFields(); err != nil {
		return err
	}
	if !s.IsLoggedIn {
		return missing("isLoggedIn")
	}
	return nil
}
