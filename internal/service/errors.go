package service

import (
	"errors"
	"fmt"

	"github.com/kioskops/fleetconfig/models"
)

var (
	// ErrUnknownKiosk is returned when an operation targets a kiosk ID that
	// is not registered.
	ErrUnknownKiosk = errors.New("unknown kiosk")

	// ErrUnknownDomain is returned when an operation names a configuration
	// domain outside the four recognized values.
	ErrUnknownDomain = errors.New("unknown configuration domain")

	// ErrPinNotRecognized is returned by TestPin when no live assignment
	// matches the presented PIN under the given context.
	ErrPinNotRecognized = errors.New("pin not recognized")

	// ErrValidation is the class sentinel of all [ValidationError] values;
	// match with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrPinConflict is the class sentinel of all [ConflictError] values;
	// match with errors.Is.
	ErrPinConflict = errors.New("pin already in use")
)

// ValidationError reports a malformed payload or PIN. Message is safe to
// show to an administrator verbatim.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every ValidationError match [ErrValidation].
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a PIN collision and names the scope holding the
// conflicting assignment so the caller can present a precise remediation
// message.
type ConflictError struct {
	ConflictingScope models.PinScope
	KioskID          string
}

func (e *ConflictError) Error() string {
	if e.ConflictingScope == models.PinScopeGlobal {
		return "pin already in use by the global scope"
	}
	return fmt.Sprintf("pin already in use by kiosk %q", e.KioskID)
}

// Is makes every ConflictError match [ErrPinConflict].
func (e *ConflictError) Is(target error) bool { return target == ErrPinConflict }
