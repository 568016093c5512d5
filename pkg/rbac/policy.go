package rbac

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Policy maps request paths to the roles allowed to see them.
//
// Paths listed in PublicPaths match exactly. PublicPrefixes match on segment
// boundaries, so "/login" does not open "/loginx". RolePrefixes are plain string
// prefixes: "/admin" guards "/admin/users" and "/administration" alike.
// PublicSuffixes match file extensions of static assets.
type Policy struct {
	LoginPath      string            `yaml:"login_path"`
	PublicPaths    []string          `yaml:"public_paths"`
	PublicPrefixes []string          `yaml:"public_prefixes"`
	PublicSuffixes []string          `yaml:"public_suffixes"`
	RolePrefixes   map[Role][]string `yaml:"role_prefixes"`
}

// DefaultPolicy returns the portal's built-in route policy.
func DefaultPolicy() Policy {
	return Policy{
		LoginPath:   "/login",
		PublicPaths: []string{"/", "/healthz", "/readyz", "/favicon.ico"},
		PublicPrefixes: []string{
			"/login",
			"/api/auth/",
			"/static/",
		},
		PublicSuffixes: []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp"},
		RolePrefixes: map[Role][]string{
			RoleAdmin:   {"/admin"},
			RoleAdvisor: {"/advisor"},
			RoleClient:  {"/client"},
		},
	}
}

// Validate reports whether the policy is usable. The login path must itself be
// public, otherwise unauthenticated requests would redirect forever.
func (p Policy) Validate() error {
	if !strings.HasPrefix(p.LoginPath, "/") {
		return fmt.Errorf("%w: login path %q must start with /", ErrInvalidPolicy, p.LoginPath)
	}
	if !p.IsPublic(p.LoginPath) {
		return fmt.Errorf("%w: login path %q is not public", ErrInvalidPolicy, p.LoginPath)
	}

	for _, list := range [][]string{p.PublicPaths, p.PublicPrefixes} {
		for _, path := range list {
			if !strings.HasPrefix(path, "/") {
				return fmt.Errorf("%w: path %q must start with /", ErrInvalidPolicy, path)
			}
		}
	}
	if slices.Contains(p.PublicPrefixes, "/") {
		return fmt.Errorf("%w: public prefix \"/\" would expose every route", ErrInvalidPolicy)
	}

	owners := make(map[string]Role)
	for _, role := range slices.Sorted(maps.Keys(p.RolePrefixes)) {
		if !role.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidPolicy, ErrInvalidRole, role)
		}
		for _, prefix := range p.RolePrefixes[role] {
			if !strings.HasPrefix(prefix, "/") {
				return fmt.Errorf("%w: prefix %q must start with /", ErrInvalidPolicy, prefix)
			}
			if other, ok := owners[prefix]; ok && other != role {
				return fmt.Errorf("%w: prefix %q owned by both %s and %s", ErrInvalidPolicy, prefix, other, role)
			}
			owners[prefix] = role
		}
	}

	return nil
}

// IsPublic reports whether path is reachable without a session.
func (p Policy) IsPublic(path string) bool {
	if slices.Contains(p.PublicPaths, path) {
		return true
	}
	for _, prefix := range p.PublicPrefixes {
		if hasSegmentPrefix(path, prefix) {
			return true
		}
	}
	lower := strings.ToLower(path)
	for _, suffix := range p.PublicSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Owner returns the role whose area contains path. Role prefixes match as
// plain string prefixes, so "/admin" also owns "/administration". The longest
// matching prefix wins; ok is false for unmapped paths.
func (p Policy) Owner(path string) (owner Role, ok bool) {
	best := -1
	for role, prefixes := range p.RolePrefixes {
		for _, prefix := range prefixes {
			if len(prefix) > best && strings.HasPrefix(path, prefix) {
				owner, best, ok = role, len(prefix), true
			}
		}
	}
	return owner, ok
}

// Outcome is what the gate does with a request.
type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToDashboard
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToDashboard:
		return "redirect_dashboard"
	}
	return "unknown"
}

// Decision is the gate's verdict for one request. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Decide evaluates the policy for a path. authenticated is false when the
// request carries no valid session, in which case role is ignored.
//
// Paths outside every role area are allowed for any authenticated user.
func (p Policy) Decide(path string, role Role, authenticated bool) Decision {
	if p.IsPublic(path) {
		return Decision{Outcome: Allow}
	}
	if !authenticated || !role.Valid() {
		return Decision{Outcome: RedirectToLogin, Location: p.LoginPath}
	}
	if role == RoleAdmin {
		return Decision{Outcome: Allow}
	}
	if owner, ok := p.Owner(path); ok && owner != role {
		return Decision{Outcome: RedirectToDashboard, Location: role.DashboardPath()}
	}
	return Decision{Outcome: Allow}
}

func hasSegmentPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/")
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
