// Package storage provides the small key/value stores the terminal persists
// its flags and the visitor log in.
//
// Two implementations exist:
//
//   - MemoryStore keeps values in process memory. It backs session-scoped
//     flags (the privileged page token) and tests.
//   - FileStore keeps values in a single JSON document on disk, typically
//     ~/.config/nlterm/storage.json. Several nlterm processes may share the
//     file; writes are whole-file replacements and concurrent writers can
//     lose updates, which is acceptable for cosmetic counters.
//
// Reads never fail: a missing or malformed file reads as empty.
package storage
