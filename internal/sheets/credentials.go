package sheets

import (
	"errors"
	"strings"
)

// pemMarker must appear in a usable service-account key.
const pemMarker = "BEGIN PRIVATE KEY"

// ErrMalformedKey is returned when the key lacks a PKCS#8 PEM header.
var ErrMalformedKey = errors.New("private key is missing " + pemMarker + " header")

// NormalizePrivateKey turns a key as it arrives from an environment variable
// into PEM text: surrounding whitespace and one pair of wrapping quotes are
// removed and literal "\n" sequences become newlines. The normalized value
// is returned even on error so callers can log a prefix of it.
func NormalizePrivateKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	key = stripWrappingQuotes(key)
	key = strings.ReplaceAll(key, `\r\n`, "\n")
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, "\r\n", "\n")
	key = strings.TrimSpace(key)

	if !strings.Contains(key, pemMarker) {
		return key, ErrMalformedKey
	}
	return key, nil
}

func stripWrappingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// KeyPrefix returns at most n leading characters of key for diagnostics.
func KeyPrefix(key string, n int) string {
	r := []rune(key)
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
