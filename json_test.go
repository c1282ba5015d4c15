package doccookie

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Admin bool     `json:"admin"`
}

func TestJSONCookie_RoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	in := profile{ID: 7, Name: "Zoë; \"quoted\"", Tags: []string{"a", "b c"}, Admin: true}
	require.NoError(t, m.SetJSONCookie("p", in, Options{Path: "/"}))

	var out profile
	require.True(t, m.GetJSONCookie("p", &out))
	assert.Equal(t, in, out)

	got, ok := GetJSON[profile](m, "p")
	require.True(t, ok)
	assert.Equal(t, in, got)
}

func TestSetJSONCookie_NotSerializable(t *testing.T) {
	m, store := newTestManager(t)

	err := m.SetJSONCookie("c", map[string]any{"ch": make(chan int)}, Options{})
	require.ErrorIs(t, err, ErrSerialization)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assert.Zero(t, store.Len())
}

func TestSetJSONCookie_ConfigurationError(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.SetJSONCookie("c", profile{}, Options{SameSite: SameSiteNone})
	assert.ErrorIs(t, err, ErrSameSiteNoneNeedsSecure)
}

func TestGetJSONCookie_Corrupt(t *testing.T) {
	var buf bytes.Buffer
	m, _ := newTestManager(t)
	m = m.WithLogger(zerolog.New(&buf))

	require.NoError(t, m.SetCookie("p", "{not json", Options{}))

	var out profile
	assert.False(t, m.GetJSONCookie("p", &out))
	assert.Contains(t, buf.String(), "Error parsing cookie JSON")
	assert.Contains(t, buf.String(), `"cookie":"p"`)

	_, ok := GetJSON[profile](m, "p")
	assert.False(t, ok)
}

func TestGetJSONCookie_MissingOrEmpty(t *testing.T) {
	var buf bytes.Buffer
	m, _ := newTestManager(t)
	m = m.WithLogger(zerolog.New(&buf))

	var out profile
	assert.False(t, m.GetJSONCookie("missing", &out))

	require.NoError(t, m.SetCookie("empty", "", Options{}))
	assert.False(t, m.GetJSONCookie("empty", &out))
	assert.Empty(t, buf.String(), "absent values are not decode failures")
}

func TestGetJSONField(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetJSONCookie("p", profile{ID: 3, Tags: []string{"x", "y"}}, Options{}))

	id, ok := m.GetJSONField("p", "id")
	require.True(t, ok)
	assert.Equal(t, int64(3), id.Int())

	count, ok := m.GetJSONField("p", "tags.#")
	require.True(t, ok)
	assert.Equal(t, int64(2), count.Int())

	_, ok = m.GetJSONField("p", "nope")
	assert.False(t, ok)

	require.NoError(t, m.SetCookie("bad", "{", Options{}))
	_, ok = m.GetJSONField("bad", "id")
	assert.False(t, ok)

	_, ok = m.GetJSONField("missing", "id")
	assert.False(t, ok)
}

func TestGetJSONCookie_Null(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.SetJSONCookie("p", nil, Options{}))
	raw, ok := m.GetCookie("p")
	require.True(t, ok)
	require.Equal(t, "null", raw)

	out := profile{ID: 9}
	assert.False(t, m.GetJSONCookie("p", &out))
	assert.Equal(t, 9, out.ID, "v is left untouched")

	_, ok = GetJSON[*profile](m, "p")
	assert.False(t, ok)
}
