package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNotAWorkDay      = errors.New("today is not a work day according to your schedule")
	ErrLocationRequired = errors.New("location coordinates are required for this policy")

	// Check-out errors
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAttendanceForbidden = errors.New("attendance record does not belong to the caller")
	ErrInvalidDateRange    = errors.New("invalid date range")
)

// OutOfRangeError is returned when the caller's coordinates fall outside the
// policy geofence. It keeps the computed distance so the message can tell
// the employee how far off they are.
type OutOfRangeError struct {
	DistanceMeters      float64
	AllowedRadiusMeters int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are %.0f meters away from the office location, maximum allowed is %d meters",
		e.DistanceMeters, e.AllowedRadiusMeters)
}
