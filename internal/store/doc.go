// Package store provides the SQLite-backed repositories. Every repository
// method is wrapped by the sqllog interceptor, so the repository layer's
// calls are what the SQL logging level controls.
package store
