package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrKioskAlreadyExists is returned when registering a kiosk whose ID
	// is already taken.
	ErrKioskAlreadyExists = errors.New("kiosk already exists")

	// ErrKioskNotFound is returned when a query targets a kiosk ID that is
	// not registered.
	ErrKioskNotFound = errors.New("kiosk was not found")

	// ErrPinAlreadyAssigned is returned by SQL backends when the unique
	// index on pin values rejects a write. The service layer normally
	// catches collisions before commit; this is the storage-level backstop.
	ErrPinAlreadyAssigned = errors.New("pin value already assigned")

	// ErrUnknownConfigDomain is returned when a stored row names a domain
	// this build does not recognize.
	ErrUnknownConfigDomain = errors.New("unknown configuration domain")
)

// Low-level database operation errors, returned (or wrapped) when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
