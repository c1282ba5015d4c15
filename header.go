package doccookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// deleteMaxAge is written by DeleteCookie; any negative Max-Age removes
// the cookie.
const deleteMaxAge = "-99999999"

// formatCookie builds the cookie header for already encoded name and
// value. The attribute order is fixed: expires, path, Secure, SameSite,
// domain.
func formatCookie(name, value string, opts Options, now time.Time) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)

	if !opts.Expires.IsZero() {
		b.WriteString("; expires=")
		b.WriteString(opts.Expires.Time(now).UTC().Format(http.TimeFormat))
	}
	if opts.Path != "" {
		b.WriteString("; path=")
		b.WriteString(opts.Path)
	}
	if opts.Secure {
		b.WriteString("; Secure")
	}
	if opts.SameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(string(opts.SameSite))
	}
	if opts.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(opts.Domain)
	}
	return b.String()
}

// formatDelete builds an already expired cookie header for an encoded
// name.
func formatDelete(name, path, domain string) string {
	header := name + "=; Max-Age=" + deleteMaxAge + "; path=" + path
	if domain != "" {
		header += "; domain=" + domain
	}
	return header
}

// lookup returns the raw value of the first "name=value" segment of the
// ambient cookie string whose name equals the encoded name.
func lookup(ambient, name string) (string, bool) {
	prefix := name + "="
	for _, segment := range strings.Split(ambient, ";") {
		segment = strings.TrimSpace(segment)
		if strings.HasPrefix(segment, prefix) {
			return segment[len(prefix):], true
		}
	}
	return "", false
}

// setCookie is a cookie header split into its parts. Attribute names are
// matched without regard to case; unknown attributes are skipped.
type setCookie struct {
	name    string
	value   string
	named   bool // the first pair had an "="
	path    string
	domain  string
	expires time.Time
	// maxAge is only meaningful when hasMaxAge is set.
	maxAge    int
	hasMaxAge bool
	secure    bool
	httpOnly  bool
}

// parseSetCookie splits a cookie header. A pair without "=" is a value
// with an empty name. A path not starting with "/" is dropped.
func parseSetCookie(header string) setCookie {
	var c setCookie

	parts := strings.Split(header, ";")
	pair := strings.TrimSpace(parts[0])
	if name, value, ok := strings.Cut(pair, "="); ok {
		c.name, c.value, c.named = strings.TrimSpace(name), strings.TrimSpace(value), true
	} else {
		c.value = pair
	}

	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(attr), "=")
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if t, err := http.ParseTime(val); err == nil {
				c.expires = t
			}
		case "max-age":
			if n, err := strconv.Atoi(val); err == nil {
				c.maxAge, c.hasMaxAge = n, true
			}
		case "path":
			if strings.HasPrefix(val, "/") {
				c.path = val
			}
		case "domain":
			c.domain = strings.TrimPrefix(strings.ToLower(val), ".")
		case "secure":
			c.secure = true
		case "httponly":
			c.httpOnly = true
		}
	}

	return c
}
