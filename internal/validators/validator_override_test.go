package validators

import (
	"context"
	"testing"
	"time"

	"github.com/kioskops/fleetconfig/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchedule() models.WeeklySchedule {
	s := models.WeeklySchedule{Timezone: "Europe/Berlin"}
	s.Days[time.Monday] = models.DaySchedule{
		Enabled: true,
		Slots: []models.TimeSlot{
			{Start: "09:00", End: "12:00"},
			{Start: "13:00", End: "17:00"},
		},
	}
	return s
}

func TestValidate_Schedule_OK(t *testing.T) {
	v := NewOverridePayloadValidator()

	require.NoError(t, v.Validate(context.Background(), validSchedule()))
}

func TestValidate_Schedule_PointerForm(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()

	require.NoError(t, v.Validate(context.Background(), &s))
}

func TestValidate_Schedule_BadTimezone(t *testing.T) {
	v := NewOverridePayloadValidator()

	s := validSchedule()
	s.Timezone = "Atlantis/Central"
	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrInvalidTimezone)

	s.Timezone = ""
	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrInvalidTimezone)
}

func TestValidate_Schedule_RejectsOvernightSlot(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	s.Days[time.Friday] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "22:00", End: "02:00"}},
	}

	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrInvalidSlotBounds)
}

func TestValidate_Schedule_AllowsMidnightEndBound(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	// An overnight window is the explicit pair: evening up to the day
	// bound, then the next day from midnight.
	s.Days[time.Friday] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "22:00", End: "24:00"}},
	}
	s.Days[time.Saturday] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "00:00", End: "02:00"}},
	}

	require.NoError(t, v.Validate(context.Background(), s))
}

func TestValidate_Schedule_RejectsMidnightStartBound(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	s.Days[time.Friday] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "24:00", End: "24:00"}},
	}

	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrInvalidSlotBounds)
}

func TestValidate_Schedule_RejectsOverlap(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	s.Days[time.Monday] = models.DaySchedule{
		Enabled: true,
		Slots: []models.TimeSlot{
			{Start: "09:00", End: "13:00"},
			{Start: "12:00", End: "17:00"},
		},
	}

	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrOverlappingSlots)
}

func TestValidate_Schedule_TouchingSlotsAreFine(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	s.Days[time.Monday] = models.DaySchedule{
		Enabled: true,
		Slots: []models.TimeSlot{
			{Start: "09:00", End: "12:00"},
			{Start: "12:00", End: "17:00"},
		},
	}

	require.NoError(t, v.Validate(context.Background(), s))
}

func TestValidate_Schedule_BadClock(t *testing.T) {
	v := NewOverridePayloadValidator()
	s := validSchedule()
	s.Days[time.Monday] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "9am", End: "17:00"}},
	}

	assert.ErrorIs(t, v.Validate(context.Background(), s), ErrInvalidClock)
}

func TestValidate_Status(t *testing.T) {
	v := NewOverridePayloadValidator()

	require.NoError(t, v.Validate(context.Background(), models.StatusConfig{State: models.StateLunch}))
	assert.ErrorIs(t,
		v.Validate(context.Background(), models.StatusConfig{State: "gone fishing"}),
		ErrInvalidDisplayState)
}

func TestValidate_Branding(t *testing.T) {
	v := NewOverridePayloadValidator()

	require.NoError(t, v.Validate(context.Background(), models.BrandingConfig{ProductName: "Front Desk"}))
	assert.ErrorIs(t,
		v.Validate(context.Background(), models.BrandingConfig{}),
		ErrEmptyProductName)
}

func TestValidate_OfficeHoursUsesScheduleRules(t *testing.T) {
	v := NewOverridePayloadValidator()
	cfg := models.OfficeHoursConfig{Schedule: validSchedule(), Note: "front desk staffed"}

	require.NoError(t, v.Validate(context.Background(), cfg))

	cfg.Schedule.Timezone = "Nowhere/Void"
	assert.ErrorIs(t, v.Validate(context.Background(), cfg), ErrInvalidTimezone)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewOverridePayloadValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewOverridePayloadValidator()

	assert.ErrorIs(t,
		v.Validate(context.Background(), validSchedule(), "holidays"),
		ErrUnknownField)
}
