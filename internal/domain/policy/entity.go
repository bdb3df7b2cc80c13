package policy

import "time"

// AttendancePolicy is a business-level configuration of shift times,
// thresholds and geofencing shared by one or more work schedules.
// Shift and break fields carry a time-of-day only; the date part is unused.
type AttendancePolicy struct {
	ID                      string
	BusinessID              string
	Name                    string
	Description             *string
	ShiftStart              time.Time
	ShiftEnd                time.Time
	LateThresholdMinutes    int
	HalfDayThresholdMinutes int
	BreakStart              *time.Time
	BreakEnd                *time.Time
	RequireLocationCheck    bool
	OfficeLatitude          *float64
	OfficeLongitude         *float64
	AllowedRadiusMeters     *int
	IsActive                bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
