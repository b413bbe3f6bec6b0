package core

import (
	"errors"
	"fmt"
)

// The six error kinds every layer of the application speaks. Workflows and
// the policy layer wrap these; the controllers translate them to HTTP
// statuses in exactly one place.
var (
	// ErrAuthentication covers missing/invalid credentials and non-active
	// accounts. It never reveals which of the two it was.
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization means the caller is authenticated but the policy
	// denies this action on this resource.
	ErrAuthorization = errors.New("not authorized")
	// ErrValidation covers malformed input, including money invariant
	// violations on proposal items.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers illegal state transitions (including lost-update
	// races) and uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrInternal is everything else; details never reach the caller.
	ErrInternal = errors.New("internal error")
)

// ErrAccountNotActive marks an authentication failure caused by account
// status rather than bad credentials. It wraps ErrAuthentication so
// errors.Is(err, ErrAuthentication) still holds; transport maps it to 403
// instead of 401.
var ErrAccountNotActive = fmt.Errorf("%w: account not active", ErrAuthentication)

// Authenticationf wraps ErrAuthentication with a detail message.
func Authenticationf(format string, args ...interface{}) error {
	return wrapf(ErrAuthentication, format, args...)
}

// Authorizationf wraps ErrAuthorization with a detail message.
func Authorizationf(format string, args ...interface{}) error {
	return wrapf(ErrAuthorization, format, args...)
}

// Validationf wraps ErrValidation with a detail message.
func Validationf(format string, args ...interface{}) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf wraps ErrNotFound with a detail message.
func NotFoundf(format string, args ...interface{}) error {
	return wrapf(ErrNotFound, format, args...)
}

// Conflictf wraps ErrConflict with a detail message.
func Conflictf(format string, args ...interface{}) error {
	return wrapf(ErrConflict, format, args...)
}

// Internalf wraps ErrInternal with a detail message.
func Internalf(format string, args ...interface{}) error {
	return wrapf(ErrInternal, format, args...)
}

func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
