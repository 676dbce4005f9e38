// Package errs implements the simulation's error-kind taxonomy
// (DomainValidation, NotFound, AlreadyDestroyed, InternalNumeric) and the
// fixed external string formats callers are expected to match against.
//
// The teacher reports malformed input by returning a bare fmt.Errorf from
// whichever constructor or setter noticed the problem (see
// actor.NewRigidBody's radius check, world.go's CreateBody). This package
// generalizes that into a single typed Error so the root physics2d
// package can classify failures programmatically (errs.Is(err,
// errs.NotFound)). Messages are built with fmt.Sprintf; github.com/pkg/errors
// supplies the errors.As that Is uses to find an *Error in a chain.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// DomainValidation: a caller-supplied value was out of range or the
	// wrong shape. Raised synchronously; state is left unchanged.
	DomainValidation Kind = iota
	// NotFound: a world id, body id, material, or predefined polygon
	// lookup did not resolve.
	NotFound
	// AlreadyDestroyed: a handle was destroyed (or was never valid, id 0)
	// and is being destroyed again. Other lookups of a destroyed handle
	// report NotFound.
	AlreadyDestroyed
	// InternalNumeric: a numeric edge case (zero-area polygon) that the
	// caller does not need to see — components that might produce one
	// recover locally instead of returning this kind.
	InternalNumeric
)

func (k Kind) String() string {
	switch k {
	case DomainValidation:
		return "DomainValidation"
	case NotFound:
		return "NotFound"
	case AlreadyDestroyed:
		return "AlreadyDestroyed"
	case InternalNumeric:
		return "InternalNumeric"
	default:
		return "Unknown"
	}
}

// Error is a classified failure with a fixed external message.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is reports whether err was produced by this package and carries kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// BadArgument builds a DomainValidation error in the fixed
// "bad argument to #N 'name': reason" shape.
func BadArgument(position int, name, reason string) *Error {
	return &Error{
		Kind: DomainValidation,
		msg:  fmt.Sprintf("bad argument to #%d '%s': %s", position, name, reason),
	}
}

// WorldNotFound builds the fixed "world %s does not exist" NotFound error.
func WorldNotFound(worldID uint64) *Error {
	return &Error{
		Kind: NotFound,
		msg:  fmt.Sprintf("world %s does not exist", fmt.Sprint(worldID)),
	}
}

// BodyNotFound builds the fixed "body %s does not exist in world %d"
// NotFound error.
func BodyNotFound(bodyID, worldID uint64) *Error {
	return &Error{
		Kind: NotFound,
		msg:  fmt.Sprintf("body %s does not exist in world %d", fmt.Sprint(bodyID), worldID),
	}
}

// MaterialNotFound builds a NotFound error for a material id or name
// lookup.
func MaterialNotFound(key string) *Error {
	return &Error{
		Kind: NotFound,
		msg:  fmt.Sprintf("material %s does not exist", key),
	}
}

// PolygonNotFound builds a NotFound error for a predefined polygon id or
// name lookup.
func PolygonNotFound(key string) *Error {
	return &Error{
		Kind: NotFound,
		msg:  fmt.Sprintf("predefined polygon %s does not exist", key),
	}
}

// AlreadyDestroyedError builds an AlreadyDestroyed error for a handle
// that was destroyed, or never valid (id 0).
func AlreadyDestroyedError(kind string, id uint64) *Error {
	return &Error{
		Kind: AlreadyDestroyed,
		msg:  fmt.Sprintf("%s %d is already destroyed", kind, id),
	}
}
