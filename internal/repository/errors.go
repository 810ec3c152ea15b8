// Package repository persists members, items, reservations and charges.
// Two stores implement Store: SQLStore on MySQL and RedisStore, a key-value
// fallback used when no relational database is configured.  The sentinel
// errors below are shared by both so handlers can map them to HTTP codes
// without knowing which backend is active.
package repository

import "errors"

// ErrNotFound is returned when an update or delete targets a record that
// does not exist.  Handlers should translate this into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create collides with an existing primary
// key.  Handlers should translate this into an HTTP 409.
var ErrConflict = errors.New("conflict")
