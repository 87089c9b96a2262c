package models

// WeeklySchedule is a recurring weekly open/closed pattern evaluated in its
// own IANA timezone. Days is indexed by weekday with 0 = Sunday, matching
// time.Weekday.
type WeeklySchedule struct {
	Timezone string         `json:"timezone"`
	Days     [7]DaySchedule `json:"days"`
}

// DaySchedule describes one weekday of a WeeklySchedule. A disabled day is
// closed for its whole duration regardless of slots.
type DaySchedule struct {
	Enabled bool       `json:"enabled"`
	Slots   []TimeSlot `json:"slots,omitempty"`
}

// TimeSlot is a half-open wall-clock interval [Start, End) within a single
// calendar day. Times are "HH:MM" strings; "24:00" is accepted as an end
// bound only. Slots never wrap past midnight: an overnight window is
// expressed as an explicit "…–24:00" plus "00:00–…" pair.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekdayNames maps a Days index to its human-readable name, for error
// messages and admin responses.
var WeekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// HasOpenSlot reports whether any enabled day of the schedule carries at
// least one slot, i.e. whether the schedule can ever be open.
func (s WeeklySchedule) HasOpenSlot() bool {
	for _, day := range s.Days {
		if day.Enabled && len(day.Slots) > 0 {
			return true
		}
	}
	return false
}
