package doccookie

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const jsonNull = "null"

// SetJSONCookie marshals v to JSON and writes it with SetCookie.
//
// Parameters:
//   - name: The name of the cookie.
//   - v: The value to marshal.
//   - opts: The cookie attributes.
//
// Returns:
//   - error: ErrSerialization if v cannot be marshaled, or any SetCookie
//     error.
func (m *Manager) SetJSONCookie(name string, v any, opts Options) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return m.SetCookie(name, string(data), opts)
}

// GetJSONCookie reads the cookie named name and unmarshals it into v.
//
// A value that is not valid JSON is logged and reported like a missing
// cookie; the decode error is not returned. A JSON null is also reported
// as missing and leaves v untouched. The contents of v are
// unspecified when GetJSONCookie returns false.
//
// Parameters:
//   - name: The name of the cookie.
//   - v: A pointer to unmarshal into.
//
// Returns:
//   - bool: true if the cookie exists and was decoded into v.
func (m *Manager) GetJSONCookie(name string, v any) bool {
	raw, ok := m.GetCookie(name)
	if !ok || raw == "" {
		return false
	}

	if strings.TrimSpace(raw) == jsonNull {
		return false
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		m.logger.Error().
			Err(err).
			Str("cookie", name).
			Msg("Error parsing cookie JSON")

		return false
	}

	return true
}

// GetJSON reads the cookie named name as a JSON encoded T.
//
// Parameters:
//   - m: The Manager to read through.
//   - name: The name of the cookie.
//
// Returns:
//   - T: The decoded value, or the zero T.
//   - bool: true if the cookie exists and was decoded.
func GetJSON[T any](m *Manager, name string) (T, bool) {
	var v T
	if !m.GetJSONCookie(name, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// GetJSONField queries a single field of a JSON cookie using a gjson path
// (for example "user.id" or "items.#").
//
// Parameters:
//   - name: The name of the cookie.
//   - path: The gjson path.
//
// Returns:
//   - gjson.Result: The matched field.
//   - bool: true if the cookie holds valid JSON and the path exists.
func (m *Manager) GetJSONField(name, path string) (gjson.Result, bool) {
	raw, ok := m.GetCookie(name)
	if !ok || raw == "" {
		return gjson.Result{}, false
	}

	if !gjson.Valid(raw) {
		m.logger.Error().
			Str("cookie", name).
			Msg("Error parsing cookie JSON")

		return gjson.Result{}, false
	}

	result := gjson.Get(raw, path)
	return result, result.Exists()
}
