package validators

import "errors"

// Sentinel errors returned by [OverridePayloadValidator]. Callers should
// match with [errors.Is]; the service layer wraps them into its
// ValidationError type before they reach an administrator.
var (
	// ErrUnsupportedType is returned when Validate receives an object of a
	// type it does not know how to check.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownField is returned when a caller restricts validation to a
	// field name the validator does not recognize.
	ErrUnknownField = errors.New("unknown field for validation")

	// ErrInvalidTimezone is returned when a schedule's timezone is empty or
	// not a loadable IANA zone identifier.
	ErrInvalidTimezone = errors.New("invalid timezone identifier")

	// ErrInvalidClock is returned when a slot bound is not a well-formed
	// "HH:MM" wall-clock string.
	ErrInvalidClock = errors.New("invalid wall-clock time")

	// ErrInvalidSlotBounds is returned when a slot's start is not strictly
	// before its end within the same calendar day. Overnight windows must
	// be expressed as an explicit "…–24:00" plus "00:00–…" pair.
	ErrInvalidSlotBounds = errors.New("slot start must be before slot end")

	// ErrOverlappingSlots is returned when two slots of the same day
	// overlap. Slots may touch (one ends where the next starts) but never
	// intersect.
	ErrOverlappingSlots = errors.New("slots within a day must not overlap")

	// ErrInvalidDisplayState is returned when a status payload names a
	// display state outside the fixed set.
	ErrInvalidDisplayState = errors.New("unknown display state")

	// ErrEmptyProductName is returned when a branding payload carries no
	// product name.
	ErrEmptyProductName = errors.New("branding product name is required")
)
