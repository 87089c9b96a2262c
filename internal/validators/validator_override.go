package validators

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kioskops/fleetconfig/internal/schedule"
	"github.com/kioskops/fleetconfig/models"
)

// Field names accepted by [OverridePayloadValidator.Validate].
const (
	FieldTimezone    = "timezone"
	FieldSlots       = "slots"
	FieldState       = "state"
	FieldProductName = "product_name"
)

// OverridePayloadValidator validates the typed payloads of all four
// configuration domains. The zero value is ready to use.
type OverridePayloadValidator struct {
}

// NewOverridePayloadValidator constructs an override payload [Validator].
func NewOverridePayloadValidator() Validator {
	return &OverridePayloadValidator{}
}

// Validate dispatches on the payload type. Both value and pointer forms of
// every domain payload are supported.
func (v *OverridePayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StatusConfig:
		return v.validateStatus(ctx, value, fields...)
	case *models.StatusConfig:
		return v.validateStatus(ctx, *value, fields...)

	case models.WeeklySchedule:
		return v.validateSchedule(ctx, value, fields...)
	case *models.WeeklySchedule:
		return v.validateSchedule(ctx, *value, fields...)

	case models.OfficeHoursConfig:
		return v.validateSchedule(ctx, value.Schedule, fields...)
	case *models.OfficeHoursConfig:
		return v.validateSchedule(ctx, value.Schedule, fields...)

	case models.BrandingConfig:
		return v.validateBranding(ctx, value, fields...)
	case *models.BrandingConfig:
		return v.validateBranding(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *OverridePayloadValidator) validateStatus(_ context.Context, status models.StatusConfig, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldState}
	}

	for _, f := range fields {
		switch f {
		case FieldState:
			if !status.State.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidDisplayState, status.State)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *OverridePayloadValidator) validateBranding(_ context.Context, branding models.BrandingConfig, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProductName}
	}

	for _, f := range fields {
		switch f {
		case FieldProductName:
			if branding.ProductName == "" {
				return ErrEmptyProductName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *OverridePayloadValidator) validateSchedule(_ context.Context, s models.WeeklySchedule, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTimezone, FieldSlots}
	}

	for _, f := range fields {
		switch f {
		case FieldTimezone:
			if s.Timezone == "" {
				return ErrInvalidTimezone
			}
			if _, err := time.LoadLocation(s.Timezone); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidTimezone, s.Timezone)
			}
		case FieldSlots:
			for dayIndex, day := range s.Days {
				if err := validateDaySlots(day.Slots); err != nil {
					return fmt.Errorf("%s: %w", models.WeekdayNames[dayIndex], err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDaySlots enforces the slot policy for one day: every bound parses,
// start < end within the same calendar day, and slots do not overlap
// (touching bounds are allowed).
func validateDaySlots(slots []models.TimeSlot) error {
	type bounds struct {
		start, end int
	}

	parsed := make([]bounds, 0, len(slots))
	for _, slot := range slots {
		start, err := schedule.ParseClock(slot.Start)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidClock, slot.Start)
		}
		end, err := schedule.ParseClock(slot.End)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidClock, slot.End)
		}

		// "24:00" parses to the day bound and is only usable as an end.
		if start >= schedule.MinutesPerDay || start >= end {
			return fmt.Errorf("%w: %s-%s", ErrInvalidSlotBounds, slot.Start, slot.End)
		}

		parsed = append(parsed, bounds{start: start, end: end})
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].start < parsed[j].start })
	for i := 1; i < len(parsed); i++ {
		if parsed[i].start < parsed[i-1].end {
			return ErrOverlappingSlots
		}
	}

	return nil
}
