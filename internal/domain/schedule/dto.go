package schedule

import (
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	EmployeeID      string  `json:"employee_id"`
	PolicyID        string  `json:"policy_id"`
	Name            string  `json:"name"`
	WorkDays        []int   `json:"work_days"` // ISO weekdays, 1=Monday .. 7=Sunday
	CustomStartTime *string `json:"custom_start_time,omitempty"`
	CustomEndTime   *string `json:"custom_end_time,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.PolicyID) {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "policy_id is required"})
	} else if !validator.IsValidUUID(r.PolicyID) {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "policy_id must be a valid UUID"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(r.WorkDays) == 0 {
		errs = append(errs, validator.ValidationError{Field: "work_days", Message: "work_days must contain at least one day"})
	}
	seen := make(map[int]bool, len(r.WorkDays))
	for _, d := range r.WorkDays {
		if !validator.IsValidWeekday(d) {
			errs = append(errs, validator.ValidationError{Field: "work_days", Message: "work_days must be ISO weekdays between 1 and 7"})
			break
		}
		if seen[d] {
			errs = append(errs, validator.ValidationError{Field: "work_days", Message: "work_days must not contain duplicates"})
			break
		}
		seen[d] = true
	}

	if r.CustomStartTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.CustomStartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "custom_start_time", Message: "custom_start_time must be a valid time (HH:MM)"})
		}
	}
	if r.CustomEndTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.CustomEndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "custom_end_time", Message: "custom_end_time must be a valid time (HH:MM)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateScheduleRequest struct {
	ID              string  `json:"-"`
	PolicyID        *string `json:"policy_id,omitempty"`
	Name            *string `json:"name,omitempty"`
	WorkDays        []int   `json:"work_days,omitempty"`
	CustomStartTime *string `json:"custom_start_time,omitempty"`
	CustomEndTime   *string `json:"custom_end_time,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PolicyID != nil && !validator.IsValidUUID(*r.PolicyID) {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "policy_id must be a valid UUID"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}

	seen := make(map[int]bool, len(r.WorkDays))
	for _, d := range r.WorkDays {
		if !validator.IsValidWeekday(d) {
			errs = append(errs, validator.ValidationError{Field: "work_days", Message: "work_days must be ISO weekdays between 1 and 7"})
			break
		}
		if seen[d] {
			errs = append(errs, validator.ValidationError{Field: "work_days", Message: "work_days must not contain duplicates"})
			break
		}
		seen[d] = true
	}

	if r.CustomStartTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.CustomStartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "custom_start_time", Message: "custom_start_time must be a valid time (HH:MM)"})
		}
	}
	if r.CustomEndTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.CustomEndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "custom_end_time", Message: "custom_end_time must be a valid time (HH:MM)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"business_id"`
	EmployeeID      string  `json:"employee_id"`
	PolicyID        string  `json:"policy_id"`
	PolicyName      *string `json:"policy_name,omitempty"`
	Name            string  `json:"name"`
	WorkDays        []int   `json:"work_days"`
	CustomStartTime *string `json:"custom_start_time,omitempty"`
	CustomEndTime   *string `json:"custom_end_time,omitempty"`
	ShiftStart      string  `json:"shift_start"` // effective value after override
	ShiftEnd        string  `json:"shift_end"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ScheduleFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
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

// MapScheduleToResponse converts a WorkSchedule (with hydrated policy) into
// its API shape.
func MapScheduleToResponse(s WorkSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		EmployeeID:      s.EmployeeID,
		PolicyID:        s.PolicyID,
		Name:            s.Name,
		WorkDays:        s.WorkDays,
		CustomStartTime: policy.FormatTimeOfDayPtr(s.CustomStartTime),
		CustomEndTime:   policy.FormatTimeOfDayPtr(s.CustomEndTime),
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if s.Policy != nil {
		resp.PolicyName = &s.Policy.Name
		resp.ShiftStart = policy.FormatTimeOfDay(s.EffectiveShiftStart())
		resp.ShiftEnd = policy.FormatTimeOfDay(s.EffectiveShiftEnd())
	}
	return resp
}
