package attendance

import (
	"math"
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/attendance"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/geo"
)

// The classifiers below are pure transition functions: check-in decides the
// initial status exactly once, check-out revises it exactly once. Keeping
// them free of I/O makes the state machine testable in isolation.

// CheckInResult is the outcome of the punctuality classification.
type CheckInResult struct {
	Status      attendance.Status
	LateMinutes int
}

// ClassifyCheckIn decides PRESENT vs LATE for a check-in instant.
//
// The cutoff is the effective shift start plus the late threshold; arriving
// at the cutoff exactly is still PRESENT. Late minutes are measured from the
// nominal shift start, not from the cutoff, floored to whole minutes.
func ClassifyCheckIn(effectiveStart time.Time, lateThresholdMinutes int, now time.Time) CheckInResult {
	shiftStart := atTimeOfDay(now, effectiveStart)
	cutoff := shiftStart.Add(time.Duration(lateThresholdMinutes) * time.Minute)

	if !now.After(cutoff) {
		return CheckInResult{Status: attendance.StatusPresent, LateMinutes: 0}
	}

	late := int(math.Floor(now.Sub(shiftStart).Minutes()))
	if late < 0 {
		late = 0
	}
	return CheckInResult{Status: attendance.StatusLate, LateMinutes: late}
}

// CheckOutResult is the outcome of the worked-duration classification.
type CheckOutResult struct {
	Status           attendance.Status
	TotalWorkMinutes int
}

// ClassifyCheckOut computes the worked duration and applies the half-day
// rule: short days demote to HALF_DAY whether the morning status was PRESENT
// or LATE, and a sufficient day keeps the check-in status unchanged. Nothing
// ever promotes a record back to PRESENT.
func ClassifyCheckOut(checkIn, checkOut time.Time, halfDayThresholdMinutes int, current attendance.Status) CheckOutResult {
	total := int(checkOut.Sub(checkIn).Minutes())
	if total < 0 {
		total = 0
	}

	status := current
	if total < halfDayThresholdMinutes {
		status = attendance.StatusHalfDay
	}
	return CheckOutResult{Status: status, TotalWorkMinutes: total}
}

// validateLocation enforces the policy geofence for one coordinate pair.
// It is a no-op when the policy does not require a location check.
func validateLocation(lat, lon *float64, p *policy.AttendancePolicy) error {
	if !p.RequireLocationCheck {
		return nil
	}
	if lat == nil || lon == nil {
		return attendance.ErrLocationRequired
	}

	distance := geo.DistanceMeters(*lat, *lon, *p.OfficeLatitude, *p.OfficeLongitude)
	if distance > float64(*p.AllowedRadiusMeters) {
		return &attendance.OutOfRangeError{
			DistanceMeters:      distance,
			AllowedRadiusMeters: *p.AllowedRadiusMeters,
		}
	}
	return nil
}

// atTimeOfDay pins a time-of-day value onto the calendar date and location
// of ref. Shift times are stored date-less; comparisons need a full instant.
func atTimeOfDay(ref, tod time.Time) time.Time {
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		ref.Location(),
	)
}
