package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength bounds display names stored for users.
const MaxNameLength = 200

// NormalizeEmail trims, NFC-normalises and lowercases an address so the same
// mailbox always maps to the same user row. The local part is otherwise kept
// verbatim.
func NormalizeEmail(email string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(email)))
}

// NormalizeName NFC-normalises a display name, drops control characters,
// collapses runs of whitespace and caps the length at MaxNameLength runes.
func NormalizeName(name string) string {
	name = norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(name))
	space := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
			continue
		case unicode.IsControl(r), r == utf8.RuneError:
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}

	out := b.String()
	if utf8.RuneCountInString(out) > MaxNameLength {
		out = strings.TrimSpace(string([]rune(out)[:MaxNameLength]))
	}
	return out
}

// FullName joins first and last name, falling back to fallback when both are blank.
func FullName(first, last, fallback string) string {
	if name := NormalizeName(first + " " + last); name != "" {
		return name
	}
	return NormalizeName(fallback)
}

// MaskEmail keeps the first character of the local part and the domain,
// for log lines that must not carry full addresses.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" {
		return "***"
	}
	first, _ := utf8.DecodeRuneInString(local)
	return string(first) + strings.Repeat("*", max(utf8.RuneCountInString(local)-1, 1)) + "@" + domain
}
