// Package identity is the portal's adapter to the hosted identity provider
// (WorkOS user management).
//
// It builds the hosted sign-in URL for a chosen Provider, exchanges the
// authorization code returned to the callback for tokens and the signed-in
// User, refreshes access tokens and looks users up by provider id.
// Provider errors are logged here and surfaced as a small set of sentinels:
// ErrAuthenticationFailed, ErrRefreshFailed and ErrUserLookupFailed.
package identity
