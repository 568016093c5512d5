package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32
	keyInfo         = "zenith-portal/cookie/aes-256-gcm"
)

// Manager writes and reads HTTP cookies and seals their values with
// AES-256-GCM. Keys are derived from the configured secrets with HKDF-SHA256.
type Manager struct {
	aeads    []cipher.AEAD
	defaults Options
}

// New returns a Manager sealing values with the first secret and opening them
// with any of them. Every secret must be at least 32 characters.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	aeads := make([]cipher.AEAD, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}

		aead, err := deriveAEAD(s)
		if err != nil {
			return nil, err
		}
		aeads = append(aeads, aead)
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{
		aeads:    aeads,
		defaults: defaults,
	}, nil
}

func deriveAEAD(secret string) (cipher.AEAD, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivation, err)
	}

	return cipher.NewGCM(block)
}

// Set writes a plain cookie using the manager defaults overridden by opts.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the raw value of the named cookie or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the named cookie. Deleting a cookie the client never had is harmless.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// SetEncrypted seals value under the cookie name and writes it.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name string, value []byte, opts ...Option) error {
	sealed, err := m.Seal(name, value)
	if err != nil {
		return err
	}
	m.Set(w, name, sealed, opts...)
	return nil
}

// GetEncrypted reads and opens a cookie written by SetEncrypted.
func (m *Manager) GetEncrypted(r *http.Request, name string) ([]byte, error) {
	sealed, err := m.Get(r, name)
	if err != nil {
		return nil, err
	}
	return m.Open(name, sealed)
}

// Seal encrypts plaintext for the cookie called name. The name is bound as
// additional data, so a value lifted from one cookie cannot be replayed in another.
// Output is nonce||ciphertext in unpadded URL-safe base64.
func (m *Manager) Seal(name string, plaintext []byte) (string, error) {
	aead := m.aeads[0]

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cookie: read nonce: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(aead.Seal(nonce, nonce, plaintext, []byte(name))), nil
}

// Open reverses Seal, trying every configured key so values sealed before a rotation stay readable.
func (m *Manager) Open(name, sealed string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, aead := range m.aeads {
		if len(raw) < aead.NonceSize()+aead.Overhead() {
			return nil, ErrInvalidFormat
		}

		nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
		if plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(name)); err == nil {
			return plaintext, nil
		}
	}

	return nil, ErrDecryptionFailed
}
