package doccookie

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

// JarStore is a Store backed by an http.CookieJar and scoped to one URL,
// the way a document's cookie string is scoped to the document URL. The
// jar applies the merge, expiry, domain, path, and Secure rules.
type JarStore struct {
	jar    http.CookieJar
	url    *url.URL
	logger zerolog.Logger
}

// NewJarStore creates a JarStore for rawURL. A nil jar is replaced by a
// new cookiejar.Jar that uses the public suffix list.
//
// Parameters:
//   - rawURL: The document URL; it must be absolute.
//   - jar: The cookie jar to use, or nil.
//
// Returns:
//   - *JarStore: The new JarStore.
//   - error: The error if the URL is invalid.
func NewJarStore(rawURL string, jar http.CookieJar) (*JarStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse store URL %q: %w", rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("store URL %q must be absolute", rawURL)
	}

	if jar == nil {
		jar, err = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
	}

	return &JarStore{jar: jar, url: u, logger: log.Logger}, nil
}

// WithLogger sets the logger used for rejected cookie headers and returns
// a new JarStore sharing the same jar.
//
// Parameters:
//   - logger: The zerolog logger to use.
//
// Returns:
//   - *JarStore: The new JarStore.
func (s *JarStore) WithLogger(logger zerolog.Logger) *JarStore {
	c := *s
	c.logger = logger
	return &c
}

// URL returns the URL the store is scoped to.
func (s *JarStore) URL() *url.URL {
	return s.url
}

// ReadCookies implements Store.
func (s *JarStore) ReadCookies() string {
	cookies := s.jar.Cookies(s.url)
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}

// WriteCookie implements Store. The header is split by hand rather than
// with http.ParseSetCookie, since encoded names may keep characters such
// as "(" that are not HTTP tokens. A header without a name is dropped.
func (s *JarStore) WriteCookie(header string) {
	parsed := parseSetCookie(header)
	if !parsed.named {
		s.logger.Warn().
			Str("url", s.url.String()).
			Msg("Dropping cookie header without a name")

		return
	}

	c := &http.Cookie{
		Name:     parsed.name,
		Value:    parsed.value,
		Path:     parsed.path,
		Domain:   parsed.domain,
		Expires:  parsed.expires,
		Secure:   parsed.secure,
		HttpOnly: parsed.httpOnly,
	}
	if parsed.hasMaxAge {
		// http.Cookie uses 0 for "unset" and any negative value for "now".
		c.MaxAge = parsed.maxAge
		if c.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}

	s.jar.SetCookies(s.url, []*http.Cookie{c})
}
