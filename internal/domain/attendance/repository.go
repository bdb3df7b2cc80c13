package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods take businessID to keep tenants isolated.
//
// Create must enforce the one-record-per-(employee, date) invariant
// atomically: the store carries a unique constraint and the implementation
// translates its violation into ErrAlreadyCheckedIn, so two concurrent
// check-ins cannot both succeed.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, businessID string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, businessID string) (*Attendance, error)

	// Update writes the check-out fields and status of an existing record.
	Update(ctx context.Context, att Attendance) (Attendance, error)

	// ListByEmployeeAndRange returns records for one employee between two
	// dates inclusive, ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, businessID string) ([]Attendance, error)

	// List retrieves records with filters and pagination (admin view).
	List(ctx context.Context, filter AttendanceFilter, businessID string) ([]Attendance, int64, error)

	// GetOpenSessionsBefore returns records that are still missing a
	// check-out and whose attendance date is before cutoff. Used by the
	// auto-close job.
	GetOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)
}
