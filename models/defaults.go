package models

// DefaultGlobalConfig returns the configuration a fresh fleet starts with:
// open state, an empty (never-open) schedule pinned to UTC, and neutral
// branding. Stored global domains overlay these values.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Status: StatusConfig{State: StateOpen},
		Schedule: WeeklySchedule{
			Timezone: "UTC",
		},
		OfficeHours: OfficeHoursConfig{
			Schedule: WeeklySchedule{Timezone: "UTC"},
		},
		Branding: BrandingConfig{
			ProductName: "Check-In Kiosk",
		},
	}
}
