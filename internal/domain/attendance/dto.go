package attendance

import (
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	WorkScheduleID string   `json:"work_schedule_id"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Note           *string  `json:"note,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "work_schedule_id", Message: "work_schedule_id is required"})
	} else if !validator.IsValidUUID(r.WorkScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "work_schedule_id", Message: "work_schedule_id must be a valid UUID"})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Note      *string  `json:"note,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	errs := validateCoordinates(r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Coordinates are optional at the DTO level; whether they are mandatory
// depends on the policy and is decided in the service.
func validateCoordinates(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if lon != nil && !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}
	return errs
}

type AttendanceResponse struct {
	ID             string `json:"id"`
	BusinessID     string `json:"business_id"`
	EmployeeID     string `json:"employee_id"`
	WorkScheduleID string `json:"work_schedule_id"`
	Date           string `json:"date"`

	CheckInTime      string   `json:"check_in_time"`
	CheckInLatitude  *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude *float64 `json:"check_in_longitude,omitempty"`
	CheckInAddress   *string  `json:"check_in_address,omitempty"`
	CheckInNote      *string  `json:"check_in_note,omitempty"`
	LateMinutes      int      `json:"late_minutes"`

	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckOutAddress   *string  `json:"check_out_address,omitempty"`
	CheckOutNote      *string  `json:"check_out_note,omitempty"`
	TotalWorkMinutes  *int     `json:"total_work_minutes,omitempty"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, check_in_time, check_out_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of PRESENT, LATE, HALF_DAY"})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// MapAttendanceToResponse converts an Attendance entity to its API shape.
func MapAttendanceToResponse(att Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               att.ID,
		BusinessID:       att.BusinessID,
		EmployeeID:       att.EmployeeID,
		WorkScheduleID:   att.WorkScheduleID,
		Date:             att.AttendanceDate.Format("2006-01-02"),
		CheckInTime:      att.CheckInTime.Format(time.RFC3339),
		CheckInLatitude:  att.CheckInLatitude,
		CheckInLongitude: att.CheckInLongitude,
		CheckInAddress:   att.CheckInAddress,
		CheckInNote:      att.CheckInNote,
		LateMinutes:      att.LateMinutes,

		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		CheckOutAddress:   att.CheckOutAddress,
		CheckOutNote:      att.CheckOutNote,
		TotalWorkMinutes:  att.TotalWorkMinutes,

		Status:    string(att.Status),
		CreatedAt: att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if att.CheckOutTime != nil {
		s := att.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}
