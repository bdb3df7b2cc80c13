package attendance

import "time"

// Status is the compliance classification of one attendance day.
//
// The lifecycle is NO_RECORD -> checked in (PRESENT or LATE) -> checked out
// (PRESENT, LATE or HALF_DAY). HALF_DAY can demote either check-in status at
// check-out; nothing ever promotes a record back to PRESENT.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusHalfDay),
}

// Attendance is one record per employee per calendar date. Check-in creates
// it; check-out fills the remaining fields exactly once.
type Attendance struct {
	ID             string
	BusinessID     string
	EmployeeID     string
	WorkScheduleID string
	AttendanceDate time.Time

	CheckInTime      time.Time
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInAddress   *string
	CheckInNote      *string
	LateMinutes      int

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutAddress   *string
	CheckOutNote      *string
	TotalWorkMinutes  *int

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckedOut reports whether the record reached its terminal state.
func (a Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
