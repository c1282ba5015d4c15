package doccookie

import (
	"bytes"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJarManager(t *testing.T, rawURL string) (*Manager, *JarStore) {
	t.Helper()
	store, err := NewJarStore(rawURL, nil)
	require.NoError(t, err)
	store = store.WithLogger(zerolog.Nop())
	return NewManager(store).WithLogger(zerolog.Nop()), store
}

func TestNewJarStore_InvalidURL(t *testing.T) {
	_, err := NewJarStore("/relative/path", nil)
	assert.Error(t, err)

	_, err = NewJarStore("://bad", nil)
	assert.Error(t, err)
}

func TestJarStore_RoundTrip(t *testing.T) {
	m, _ := newJarManager(t, "https://example.com/")

	require.NoError(t, m.SetCookie("a", "b", Options{Path: "/"}))
	require.NoError(t, m.SetCookie("greeting", "hello world; €", Options{Path: "/", Expires: ExpiresIn(7)}))

	got, ok := m.GetCookie("a")
	require.True(t, ok)
	assert.Equal(t, "b", got)

	got, ok = m.GetCookie("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello world; €", got)

	m.DeleteCookie("a", "", "")
	_, ok = m.GetCookie("a")
	assert.False(t, ok)
}

func TestJarStore_JSON(t *testing.T) {
	m, _ := newJarManager(t, "https://example.com/")

	in := profile{ID: 1, Name: "n", Tags: []string{"t"}}
	require.NoError(t, m.SetJSONCookie("p", in, Options{Path: "/", Secure: true, SameSite: SameSiteStrict}))

	out, ok := GetJSON[profile](m, "p")
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestJarStore_PastExpiryRemoves(t *testing.T) {
	m, _ := newJarManager(t, "https://example.com/")

	require.NoError(t, m.SetCookie("a", "b", Options{Path: "/"}))
	past := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.SetCookie("a", "b", Options{Path: "/", Expires: ExpiresAt(past)}))

	_, ok := m.GetCookie("a")
	assert.False(t, ok)
}

func TestJarStore_SecureNotSentOverHTTP(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	secure, err := NewJarStore("https://example.com/", jar)
	require.NoError(t, err)
	plain, err := NewJarStore("http://example.com/", jar)
	require.NoError(t, err)

	m := NewManager(secure).WithLogger(zerolog.Nop())
	require.NoError(t, m.SetCookie("s", "1", Options{Path: "/", Secure: true}))
	require.NoError(t, m.SetCookie("p", "2", Options{Path: "/"}))

	assert.Equal(t, "s=1; p=2", secure.ReadCookies())
	assert.Equal(t, "p=2", plain.ReadCookies())
}

func TestJarStore_DropsUnparsableHeader(t *testing.T) {
	var buf bytes.Buffer
	store, err := NewJarStore("https://example.com/", nil)
	require.NoError(t, err)
	store = store.WithLogger(zerolog.New(&buf))

	store.WriteCookie("no-equals-sign")
	assert.Equal(t, "", store.ReadCookies())
	assert.Contains(t, buf.String(), "Dropping cookie header without a name")
	assert.Equal(t, "https://example.com/", store.URL().String())
}

func TestJarStore_NonTokenNames(t *testing.T) {
	m, store := newJarManager(t, "https://example.com/")

	require.NoError(t, m.SetCookie("a(b)", "v", Options{Path: "/"}))
	require.NoError(t, m.SetCookie("it's", "x y", Options{Path: "/"}))
	assert.Equal(t, "a(b)=v; it's=x%20y", store.ReadCookies())

	got, ok := m.GetCookie("a(b)")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	m.DeleteCookie("a(b)", "", "")
	_, ok = m.GetCookie("a(b)")
	assert.False(t, ok)
	_, ok = m.GetCookie("it's")
	assert.True(t, ok)
}

func TestJarStore_MaxAge(t *testing.T) {
	m, store := newJarManager(t, "https://example.com/")

	store.WriteCookie("a=1; Max-Age=3600; path=/")
	store.WriteCookie("b=2; Max-Age=0; path=/")
	assert.Equal(t, "a=1", store.ReadCookies())

	got, ok := m.GetCookie("a")
	require.True(t, ok)
	assert.Equal(t, "1", got)
}

func TestJarStore_WithLoggerReturnsCopy(t *testing.T) {
	var first, second bytes.Buffer
	store, err := NewJarStore("https://example.com/", nil)
	require.NoError(t, err)

	a := store.WithLogger(zerolog.New(&first))
	b := a.WithLogger(zerolog.New(&second))
	require.NotSame(t, a, b)

	a.WriteCookie("nameless")
	assert.Contains(t, first.String(), "Dropping cookie header without a name")
	assert.Empty(t, second.String())

	// Copies share the jar.
	b.WriteCookie("shared=1; path=/")
	assert.Equal(t, "shared=1", a.ReadCookies())
}
