// Package validators checks domain payloads before they are accepted by the
// service layer. Validators are pure and hold no state.
package validators

import "context"

// Validator validates a supported object. The optional fields restrict the
// check to a subset of the object's fields; with no fields given the full
// field set is validated.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
