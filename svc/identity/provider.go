package identity

import (
	"fmt"
	"strings"
)

// Provider selects the sign-in method shown by the identity provider.
type Provider string

const (
	ProviderPassword  Provider = "password"
	ProviderMagicLink Provider = "MagicLink"
	ProviderGoogle    Provider = "GoogleOAuth"
	ProviderMicrosoft Provider = "MicrosoftOAuth"
)

var providerAliases = map[string]Provider{
	"password":       ProviderPassword,
	"magiclink":      ProviderMagicLink,
	"magic_link":     ProviderMagicLink,
	"googleoauth":    ProviderGoogle,
	"google":         ProviderGoogle,
	"microsoftoauth": ProviderMicrosoft,
	"microsoft":      ProviderMicrosoft,
}

// ParseProvider resolves a provider name case-insensitively.
// An empty name selects ProviderPassword.
func ParseProvider(s string) (Provider, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ProviderPassword, nil
	}
	p, ok := providerAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, s)
	}
	return p, nil
}

func (p Provider) String() string { return string(p) }

// Valid reports whether p is one of the supported sign-in methods.
func (p Provider) Valid() bool {
	switch p {
	case ProviderPassword, ProviderMagicLink, ProviderGoogle, ProviderMicrosoft:
		return true
	}
	return false
}
