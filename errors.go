package samkit

import (
	"errors"
	"fmt"
)

// NotFoundError reports an entity that was required but absent: a resource,
// sub-block, event binding, parameter, or file. Operations return it before
// any write happens.
type NotFoundError struct {
	// Kind names what was looked up: "function", "gateway", "layer", ...
	Kind string
	// Name is the missing entity's name.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// NotFound builds a NotFoundError.
func NotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports a request that contradicts current template state:
// duplicate names or endpoints, deleting the only Lambda, deleting a layer
// still attached to a function, adding auth where auth exists. Conflicts are
// detected before mutation, so a conflicting operation has zero side effects.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
