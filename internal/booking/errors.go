// Package booking holds the rules for creating reservations, deriving their
// charges, accumulating cart purchases and projecting the charge stream into
// member statements.  Everything here is synchronous and free of I/O; the
// persistence and transport layers call into it.
package booking

import "fmt"

// ValidationError is a user-correctable input problem reported before any
// write is attempted.  Field names the offending input when there is one.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    if e.Field == "" {
        return e.Message
    }
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
    return &ValidationError{Field: field, Message: msg}
}

// PersistenceError wraps a read or write failure of the store.  The engine
// does not retry; callers decide whether to surface or retry it.
type PersistenceError struct {
    Op  string
    Err error
}

func (e *PersistenceError) Error() string {
    return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
