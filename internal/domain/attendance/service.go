package attendance

import (
	"context"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
)

// AttendanceService is the attendance lifecycle controller: it owns the
// check-in/check-out state machine and the compliance classification.
type AttendanceService interface {
	// CheckIn creates today's attendance record for the caller, classifying
	// punctuality against the schedule's effective shift start.
	CheckIn(ctx context.Context, caller auth.Identity, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes an attendance record, computing the worked duration
	// and applying the half-day demotion rule.
	CheckOut(ctx context.Context, caller auth.Identity, attendanceID string, req CheckOutRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, caller auth.Identity, id string) (AttendanceResponse, error)

	// GetToday returns the caller's record for the current business date.
	GetToday(ctx context.Context, caller auth.Identity) (AttendanceResponse, error)

	// ListMyAttendance returns the caller's records between two dates.
	ListMyAttendance(ctx context.Context, caller auth.Identity, startDate, endDate string) ([]AttendanceResponse, error)

	// ListAttendance is the business-wide admin projection.
	ListAttendance(ctx context.Context, caller auth.Identity, filter AttendanceFilter) (ListAttendanceResponse, error)
}
