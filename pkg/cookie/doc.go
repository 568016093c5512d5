// Package cookie writes, reads and expires HTTP cookies and seals their values
// with authenticated encryption.
//
// The Manager is built from one or more secrets of at least 32 characters.
// For every secret an AES-256-GCM key is derived with HKDF-SHA256, so the raw
// secret is never used as key material directly. The first secret seals new
// values; all of them are tried when opening, which allows rotation without
// logging everybody out.
//
// Sealed values carry a random nonce and are bound to the cookie name, so a
// value copied from one cookie into another fails to open.
//
// # Usage
//
//	m, err := cookie.New([]string{os.Getenv("WORKOS_COOKIE_PASSWORD")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	if err := m.SetEncrypted(w, "zenith_oauth_state", []byte(state), cookie.WithTTL(10*time.Minute)); err != nil {
//		return err
//	}
//
//	state, err := m.GetEncrypted(r, "zenith_oauth_state")
//
// # Errors
//
// ErrCookieNotFound is returned when the request has no such cookie,
// ErrInvalidFormat when the value is not a sealed payload and
// ErrDecryptionFailed when no key authenticates it.
package cookie
