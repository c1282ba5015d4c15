// Package doccookie provides helpers for reading, writing, and deleting
// cookies held in a document-style cookie store: one string of
// "name=value" pairs joined by "; ", updated one cookie header at a time.
// It includes:
//
//   - Manager with SetCookie/GetCookie/DeleteCookie over an injected Store.
//   - JSON helpers (SetJSONCookie/GetJSONCookie/GetJSON/GetJSONField).
//   - MemoryStore, an in-memory host with name+path+domain merge rules.
//   - JarStore, a Store backed by an http.CookieJar scoped to one URL.
//   - Named handles with Essential/Analytics/ThirdParty presets.
//   - YAML configuration for default attributes and logging.
//
// Notes:
//   - If SameSite=None is used, Secure must be true.
//   - Names and values are percent-encoded with the URI component set.
//   - HttpOnly cannot be set from a document context; it is accepted
//     and ignored.
//   - JSON decode failures are logged and reported as absent; JSON
//     encode failures are returned to the caller.
package doccookie
