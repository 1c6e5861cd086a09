// Package themestore persists user-authored themes.
//
// FileStore keeps one YAML file per theme (<dir>/<id>.yaml) and writes atomically.
// MemoryStore is an in-process equivalent for library users and tests.
// Both satisfy theme.Store, so a Resolver can read from them directly.
package themestore
