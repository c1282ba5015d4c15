package doccookie

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the parent of every attribute validation error.
var ErrConfiguration = errors.New("cookie: invalid configuration")

// Configuration errors. All of them match ErrConfiguration with errors.Is.
var (
	ErrSameSiteNoneNeedsSecure = fmt.Errorf("%w: SameSite=None requires Secure", ErrConfiguration)
	ErrInvalidSameSite         = fmt.Errorf("%w: invalid SameSite value", ErrConfiguration)
	ErrPrefixRules             = fmt.Errorf("%w: cookie prefix rules violated", ErrConfiguration)
	ErrTooLarge                = fmt.Errorf("%w: cookie name and value too large", ErrConfiguration)
)

// ErrSerialization indicates a value could not be encoded as JSON.
var ErrSerialization = errors.New("cookie: value is not serializable")

// ErrConsentNotGranted indicates the consent gate prevented setting.
var ErrConsentNotGranted = errors.New("cookie: consent not granted")
