package doccookie

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SameSite is the value of the SameSite cookie attribute. The empty value
// omits the attribute.
type SameSite string

const (
	SameSiteDefault SameSite = ""
	SameSiteStrict  SameSite = "Strict"
	SameSiteLax     SameSite = "Lax"
	SameSiteNone    SameSite = "None"
)

const (
	sameSiteNone   = "none"
	sameSiteLax    = "lax"
	sameSiteStrict = "strict"
)

const (
	securePrefix = "__Secure-"
	hostPrefix   = "__Host-"
)

const day = 24 * time.Hour

// maxDuration is the float form of the largest time.Duration, 2^63.
const maxDuration = float64(math.MaxInt64)

// maxExpiry is the latest instant written for a relative expiry whose
// day count does not fit in a time.Duration.
var maxExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Expiry is the expires attribute of a cookie: absent, an absolute
// instant, or a number of days counted from the moment of writing.
type Expiry struct {
	at   time.Time
	days float64
}

// ExpiresAt returns an Expiry at the given instant. The zero time means
// no expiry (a session cookie).
func ExpiresAt(t time.Time) Expiry {
	return Expiry{at: t}
}

// ExpiresIn returns an Expiry the given number of days after the write.
// Fractional and negative day counts are allowed; zero means no expiry.
func ExpiresIn(days float64) Expiry {
	return Expiry{days: days}
}

// ExpiresAfter returns an Expiry d after the write.
func ExpiresAfter(d time.Duration) Expiry {
	return ExpiresIn(float64(d) / float64(day))
}

// IsZero reports whether the Expiry is absent.
func (e Expiry) IsZero() bool {
	return e.at.IsZero() && e.days == 0
}

// Time resolves the Expiry against now. It returns the zero time when the
// Expiry is absent. Day counts too large for a time.Duration resolve to
// the end of year 9999, and too negative ones to the Unix epoch.
func (e Expiry) Time(now time.Time) time.Time {
	if e.days == 0 {
		return e.at
	}

	d := e.days * float64(day)
	switch {
	case d >= maxDuration:
		return maxExpiry
	case d <= -maxDuration:
		return time.Unix(0, 0).UTC()
	}
	return now.Add(time.Duration(d))
}

// Options holds the attributes written alongside a cookie value.
type Options struct {
	Path    string
	Expires Expiry
	Secure  bool
	// HTTPOnly cannot be set from a document context. It is accepted and
	// never written.
	HTTPOnly bool
	SameSite SameSite
	Domain   string
}

// Validate checks the attribute combination.
//
// Returns:
//   - error: ErrInvalidSameSite or ErrSameSiteNoneNeedsSecure, nil if valid.
func (o Options) Validate() error {
	switch o.SameSite {
	case SameSiteDefault, SameSiteStrict, SameSiteLax, SameSiteNone:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSameSite, string(o.SameSite))
	}
	if o.SameSite == SameSiteNone && !o.Secure {
		return ErrSameSiteNoneNeedsSecure
	}
	return nil
}

// validateFor checks o together with the prefix rules that apply to name.
func (o Options) validateFor(name string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(name, hostPrefix):
		if !o.Secure || o.Path != "/" || o.Domain != "" {
			return fmt.Errorf("%w: %s requires Secure, Path=/ and no Domain", ErrPrefixRules, hostPrefix)
		}
	case strings.HasPrefix(name, securePrefix):
		if !o.Secure {
			return fmt.Errorf("%w: %s requires Secure", ErrPrefixRules, securePrefix)
		}
	}
	return nil
}

// withDefaults fills the unset attributes of o from d. Boolean flags are
// combined, so a default of true cannot be switched off per call.
func (o Options) withDefaults(d Options) Options {
	if o.Path == "" {
		o.Path = d.Path
	}
	if o.Expires.IsZero() {
		o.Expires = d.Expires
	}
	if o.SameSite == SameSiteDefault {
		o.SameSite = d.SameSite
	}
	if o.Domain == "" {
		o.Domain = d.Domain
	}
	o.Secure = o.Secure || d.Secure
	o.HTTPOnly = o.HTTPOnly || d.HTTPOnly
	return o
}

// StringToSameSite converts a string to SameSite, ignoring case. The empty
// string maps to SameSiteDefault.
//
// Parameters:
//   - s: The string to convert.
//
// Returns:
//   - SameSite: The SameSite value.
//   - error: ErrInvalidSameSite if s is not recognized.
func StringToSameSite(s string) (SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SameSiteDefault, nil
	case sameSiteNone:
		return SameSiteNone, nil
	case sameSiteLax:
		return SameSiteLax, nil
	case sameSiteStrict:
		return SameSiteStrict, nil
	default:
		return SameSiteDefault, fmt.Errorf("%w: %q", ErrInvalidSameSite, s)
	}
}

// MustStringToSameSite converts a string to SameSite and panics if the
// string is invalid.
func MustStringToSameSite(s string) SameSite {
	ss, err := StringToSameSite(s)
	if err != nil {
		panic(err)
	}
	return ss
}
