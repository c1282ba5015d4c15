package doccookie

import (
	"strings"
	"sync"
	"time"
)

// Store is the ambient cookie store a Manager reads and writes. It owns the
// cookies; the Manager never keeps a copy.
type Store interface {
	// ReadCookies returns the active cookies as "name=value" pairs joined
	// by "; ".
	ReadCookies() string
	// WriteCookie merges one cookie header such as
	// "name=value; expires=...; path=/" into the store.
	WriteCookie(header string)
}

// MemoryStore is an in-memory Store that merges cookie headers the way a
// browser merges writes to document.cookie: a cookie is identified by its
// name, path, and domain, a write with a past expiry removes it, and reads
// list cookies in the order they were first created.
//
// MemoryStore does not check Domain against any host and does not filter
// Secure cookies.
type MemoryStore struct {
	mu          sync.Mutex
	entries     []memoryEntry
	now         func() time.Time
	defaultPath string
}

type memoryEntry struct {
	name    string
	value   string
	path    string
	domain  string
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithStoreClock sets the clock used to expire cookies.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithDefaultPath sets the path given to cookies written without one.
// It stands in for the directory of the document URL and defaults to "/".
func WithDefaultPath(path string) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.defaultPath = path
	}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		now:         time.Now,
		defaultPath: "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadCookies implements Store.
func (s *MemoryStore) ReadCookies() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	live := s.entries[:0]
	pairs := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.expired(now) {
			continue
		}
		live = append(live, e)
		pairs = append(pairs, e.name+"="+e.value)
	}
	s.entries = live

	return strings.Join(pairs, "; ")
}

// WriteCookie implements Store.
func (s *MemoryStore) WriteCookie(header string) {
	entry, remove := s.parse(header)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.name != entry.name || e.path != entry.path || e.domain != entry.domain {
			continue
		}
		if remove {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
		} else {
			// Replacing keeps the original creation order.
			s.entries[i] = entry
		}
		return
	}

	if !remove {
		s.entries = append(s.entries, entry)
	}
}

// Len returns the number of stored cookies, expired ones included until
// the next read.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// parse turns a cookie header into an entry. remove reports whether the
// header expires the cookie immediately.
func (s *MemoryStore) parse(header string) (entry memoryEntry, remove bool) {
	c := parseSetCookie(header)

	entry = memoryEntry{
		name:    c.name,
		value:   c.value,
		path:    c.path,
		domain:  c.domain,
		expires: c.expires,
	}
	if entry.path == "" {
		entry.path = s.defaultPath
	}

	now := s.now()
	// Max-Age takes precedence over expires.
	if c.hasMaxAge {
		if c.maxAge <= 0 {
			return entry, true
		}
		entry.expires = now.Add(time.Duration(c.maxAge) * time.Second)
	}

	return entry, entry.expired(now)
}
