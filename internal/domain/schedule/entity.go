package schedule

import (
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
)

// WorkSchedule is a per-employee recurring assignment: which ISO weekdays
// (1=Monday .. 7=Sunday) are worked, and optional overrides of the policy's
// shift window.
type WorkSchedule struct {
	ID              string
	BusinessID      string
	EmployeeID      string
	PolicyID        string
	Name            string
	WorkDays        []int
	CustomStartTime *time.Time
	CustomEndTime   *time.Time
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Resolved policy, loaded with the schedule. Check-in and check-out
	// always need it, so repositories hydrate it in one query.
	Policy *policy.AttendancePolicy
}

// IsWorkDay reports whether date falls on one of the schedule's work days.
func (s WorkSchedule) IsWorkDay(date time.Time) bool {
	dow := isoWeekday(date)
	for _, d := range s.WorkDays {
		if d == dow {
			return true
		}
	}
	return false
}

// EffectiveShiftStart resolves the shift start: the schedule's custom
// override when present, otherwise the policy default.
func (s WorkSchedule) EffectiveShiftStart() time.Time {
	if s.CustomStartTime != nil {
		return *s.CustomStartTime
	}
	return s.Policy.ShiftStart
}

// EffectiveShiftEnd resolves the shift end the same way. Check-in and
// check-out logic only needs the start; the end feeds reporting and the
// stale-session auto-close job.
func (s WorkSchedule) EffectiveShiftEnd() time.Time {
	if s.CustomEndTime != nil {
		return *s.CustomEndTime
	}
	return s.Policy.ShiftEnd
}

// isoWeekday maps time.Weekday (Sunday=0) onto ISO-8601 (Monday=1 .. Sunday=7).
func isoWeekday(t time.Time) int {
	dow := int(t.Weekday())
	if dow == 0 {
		return 7
	}
	return dow
}
