package doccookie

import (
	"strings"
	"time"
)

// ConsentChecker returns true if a cookie may be set.
type ConsentChecker func() bool

// Named is a handle on one cookie name with fixed attributes. Its With*
// methods modify the handle in place and return it for chaining.
type Named struct {
	m          *Manager
	name       string
	opts       Options
	consent    ConsentChecker
	hostPrefix bool
}

// Named returns a handle on the cookie called name, written with opts.
//
// Parameters:
//   - name: The name of the cookie.
//   - opts: The attributes used by Set, SetJSON, and Delete.
//
// Returns:
//   - *Named: The new handle.
func (m *Manager) Named(name string, opts Options) *Named {
	return &Named{m: m, name: name, opts: opts}
}

// NewEssential creates a handle with first-party defaults suitable for
// session identifiers:
//
//	Secure=true, Path="/", SameSite=Lax, no expiry.
func NewEssential(m *Manager, name string) *Named {
	return m.Named(name, Options{
		Path:     "/",
		Secure:   true,
		SameSite: SameSiteLax,
	})
}

// NewAnalytics creates a handle with defaults suitable for analytics:
//
//	Secure=true, Path="/", SameSite=None, 180 days.
func NewAnalytics(m *Manager, name string) *Named {
	return m.Named(name, Options{
		Path:     "/",
		Expires:  ExpiresIn(180),
		Secure:   true,
		SameSite: SameSiteNone,
	})
}

// NewThirdParty creates a handle geared for cross-site usage:
//
//	Secure=true, Path="/", SameSite=None, 90 days.
func NewThirdParty(m *Manager, name string) *Named {
	return m.Named(name, Options{
		Path:     "/",
		Expires:  ExpiresIn(90),
		Secure:   true,
		SameSite: SameSiteNone,
	})
}

// WithTTL sets the expiry relative to each write. Zero means a session
// cookie.
func (n *Named) WithTTL(ttl time.Duration) *Named {
	n.opts.Expires = ExpiresAfter(ttl)
	return n
}

// WithPath sets the Path attribute.
func (n *Named) WithPath(path string) *Named {
	n.opts.Path = path
	return n
}

// WithDomain sets the Domain attribute (e.g., "example.com").
func (n *Named) WithDomain(domain string) *Named {
	n.opts.Domain = domain
	return n
}

// WithSameSite sets the SameSite attribute. SameSiteNone requires Secure.
func (n *Named) WithSameSite(s SameSite) *Named {
	n.opts.SameSite = s
	return n
}

// WithSecure sets the Secure flag.
func (n *Named) WithSecure(secure bool) *Named {
	n.opts.Secure = secure
	return n
}

// WithHostPrefix enforces the "__Host-" prefix (Path="/" and no Domain).
//
// Parameters:
//   - enable: The value to set.
//
// Returns:
//   - *Named: The handle with the Host prefix set.
func (n *Named) WithHostPrefix(enable bool) *Named {
	n.hostPrefix = enable
	if enable {
		n.opts.Path = "/"
		n.opts.Domain = ""
		n.opts.Secure = true
	}
	return n
}

// WithConsentChecker sets an optional gate; if it returns false, Set and
// SetJSON return ErrConsentNotGranted and do not write a cookie.
func (n *Named) WithConsentChecker(fn ConsentChecker) *Named {
	n.consent = fn
	return n
}

// Name returns the cookie name written by the handle, prefix included.
func (n *Named) Name() string {
	if n.hostPrefix && !strings.HasPrefix(n.name, hostPrefix) {
		return hostPrefix + n.name
	}
	return n.name
}

// Set writes value with the handle's attributes. Honors the consent gate.
//
// Returns:
//   - error: The error if the cookie cannot be set.
func (n *Named) Set(value string) error {
	if n.consent != nil && !n.consent() {
		return ErrConsentNotGranted
	}
	return n.m.SetCookie(n.Name(), value, n.opts)
}

// SetJSON marshals v to JSON and writes it. Honors the consent gate.
//
// Returns:
//   - error: The error if the cookie cannot be set.
func (n *Named) SetJSON(v any) error {
	if n.consent != nil && !n.consent() {
		return ErrConsentNotGranted
	}
	return n.m.SetJSONCookie(n.Name(), v, n.opts)
}

// Get returns the cookie value.
func (n *Named) Get() (string, bool) {
	return n.m.GetCookie(n.Name())
}

// GetJSON unmarshals the cookie value into v.
func (n *Named) GetJSON(v any) bool {
	return n.m.GetJSONCookie(n.Name(), v)
}

// Delete removes the cookie using the handle's path and domain.
func (n *Named) Delete() {
	n.m.DeleteCookie(n.Name(), n.opts.Path, n.opts.Domain)
}
