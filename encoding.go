package doccookie

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// shouldEscapeComponent reports whether b is outside the URI component
// unreserved set: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func shouldEscapeComponent(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return false
	}
	switch b {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

// EncodeComponent percent-encodes s byte by byte, leaving only the URI
// component unreserved characters as they are. Spaces become %20.
func EncodeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscapeComponent(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscapeComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// DecodeComponent reverses EncodeComponent. A '+' is kept as is.
func DecodeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
