package doccookie

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultDeletePath is used by DeleteCookie when no path is given.
const defaultDeletePath = "/"

// maxNamePlusValue is the default limit on the encoded name and value.
// Browsers commonly cap a cookie at 4096 bytes.
const maxNamePlusValue = 4096

// Manager reads and writes cookies through a Store. It holds no cookie
// state of its own: every read re-parses the ambient cookie string and
// every write hands one cookie header to the Store.
//
// By default, it uses:
//   - Logger:    the global zerolog logger
//   - Clock:     time.Now
//   - Defaults:  none (every attribute comes from the call)
//   - SizeLimit: 4096 bytes of encoded name and value
type Manager struct {
	store     Store
	logger    zerolog.Logger
	now       func() time.Time
	defaults  Options
	sizeLimit int
}

// NewManager creates a new Manager over the given Store.
//
// Parameters:
//   - store: The Store holding the ambient cookie string.
//
// Returns:
//   - *Manager: The new Manager.
func NewManager(store Store) *Manager {
	return &Manager{
		store:     store,
		logger:    log.Logger,
		now:       time.Now,
		sizeLimit: maxNamePlusValue,
	}
}

// WithLogger sets the diagnostic logger and returns a new Manager.
//
// Parameters:
//   - logger: The zerolog logger to use.
//
// Returns:
//   - *Manager: The new Manager.
func (m *Manager) WithLogger(logger zerolog.Logger) *Manager {
	c := *m
	c.logger = logger
	return &c
}

// WithClock sets the clock used to resolve relative expiry and returns a
// new Manager.
//
// Parameters:
//   - now: The clock function.
//
// Returns:
//   - *Manager: The new Manager.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	c := *m
	c.now = now
	return &c
}

// WithDefaults sets attributes applied to every SetCookie call whose
// options leave them unset, and returns a new Manager.
//
// Parameters:
//   - defaults: The default attributes.
//
// Returns:
//   - *Manager: The new Manager.
func (m *Manager) WithDefaults(defaults Options) *Manager {
	c := *m
	c.defaults = defaults
	return &c
}

// WithSizeLimit sets the limit on encoded name plus value in bytes and
// returns a new Manager. Zero or a negative value disables the check.
//
// Parameters:
//   - limit: The limit in bytes.
//
// Returns:
//   - *Manager: The new Manager.
func (m *Manager) WithSizeLimit(limit int) *Manager {
	c := *m
	c.sizeLimit = limit
	return &c
}

// SetCookie writes a cookie with the given name, value, and attributes.
// Name and value are percent-encoded before they are written.
//
// Returns an error if the configuration is inconsistent (for example,
// if SameSite is None but Secure is false). Nothing is written then.
//
// Parameters:
//   - name: The name of the cookie.
//   - value: The value of the cookie.
//   - opts: The cookie attributes.
//
// Returns:
//   - error: A ConfigurationError if any.
func (m *Manager) SetCookie(name, value string, opts Options) error {
	opts = opts.withDefaults(m.defaults)
	if err := opts.validateFor(name); err != nil {
		return err
	}

	encName, encValue := EncodeComponent(name), EncodeComponent(value)
	if m.sizeLimit > 0 && len(encName)+len(encValue) > m.sizeLimit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(encName)+len(encValue), m.sizeLimit)
	}

	if opts.HTTPOnly {
		m.logger.Debug().
			Str("cookie", name).
			Msg("HttpOnly cannot be set from a document context, ignoring")
	}

	m.store.WriteCookie(formatCookie(encName, encValue, opts, m.now()))

	m.logger.Debug().
		Str("cookie", name).
		Str("path", opts.Path).
		Str("domain", opts.Domain).
		Msg("Set cookie")

	return nil
}

// GetCookie returns the decoded value of the first cookie named name in
// the ambient cookie string.
//
// Parameters:
//   - name: The name of the cookie.
//
// Returns:
//   - string: The value of the cookie.
//   - bool: false if no such cookie exists.
func (m *Manager) GetCookie(name string) (string, bool) {
	raw, ok := lookup(m.store.ReadCookies(), EncodeComponent(name))
	if !ok {
		return "", false
	}

	value, err := DecodeComponent(raw)
	if err != nil {
		m.logger.Warn().
			Err(err).
			Str("cookie", name).
			Msg("Cookie value is not percent-encoded, returning it as is")

		return raw, true
	}

	return value, true
}

// DeleteCookie removes a cookie by writing an already expired cookie with
// the same name, path, and domain. A cookie set with a different path or
// domain is left untouched.
//
// Parameters:
//   - name: The name of the cookie.
//   - path: The path the cookie was set with; "" means the default path,
//     or "/" when there is none.
//   - domain: The domain the cookie was set with; "" means the default
//     domain, if any.
func (m *Manager) DeleteCookie(name, path, domain string) {
	if path == "" {
		path = m.defaults.Path
	}
	if path == "" {
		path = defaultDeletePath
	}
	if domain == "" {
		domain = m.defaults.Domain
	}

	m.store.WriteCookie(formatDelete(EncodeComponent(name), path, domain))

	m.logger.Debug().
		Str("cookie", name).
		Str("path", path).
		Str("domain", domain).
		Msg("Deleted cookie")
}
