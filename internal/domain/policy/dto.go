package policy

import (
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

type CreatePolicyRequest struct {
	Name                    string   `json:"name"`
	Description             *string  `json:"description,omitempty"`
	ShiftStart              string   `json:"shift_start"` // HH:MM or HH:MM:SS
	ShiftEnd                string   `json:"shift_end"`
	LateThresholdMinutes    int      `json:"late_threshold_minutes"`
	HalfDayThresholdMinutes int      `json:"half_day_threshold_minutes"`
	BreakStart              *string  `json:"break_start,omitempty"`
	BreakEnd                *string  `json:"break_end,omitempty"`
	RequireLocationCheck    bool     `json:"require_location_check"`
	OfficeLatitude          *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude         *float64 `json:"office_longitude,omitempty"`
	AllowedRadiusMeters     *int     `json:"allowed_radius_meters,omitempty"`
	IsActive                *bool    `json:"is_active,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	start, startOK := validator.ParseTimeOfDay(r.ShiftStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "shift_start", Message: "shift_start must be a valid time (HH:MM)"})
	}
	end, endOK := validator.ParseTimeOfDay(r.ShiftEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "shift_end", Message: "shift_end must be a valid time (HH:MM)"})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{Field: "shift_end", Message: "shift_end must be after shift_start"})
	}

	if r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_threshold_minutes", Message: "late_threshold_minutes must be zero or positive"})
	}
	if r.HalfDayThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "half_day_threshold_minutes", Message: "half_day_threshold_minutes must be zero or positive"})
	}

	if r.BreakStart != nil {
		if _, ok := validator.ParseTimeOfDay(*r.BreakStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "break_start", Message: "break_start must be a valid time (HH:MM)"})
		}
	}
	if r.BreakEnd != nil {
		if _, ok := validator.ParseTimeOfDay(*r.BreakEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "break_end", Message: "break_end must be a valid time (HH:MM)"})
		}
	}

	if r.RequireLocationCheck {
		if r.OfficeLatitude == nil || r.OfficeLongitude == nil || r.AllowedRadiusMeters == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "require_location_check",
				Message: "office_latitude, office_longitude and allowed_radius_meters are required when location check is enabled",
			})
		}
	}
	if r.OfficeLatitude != nil && !validator.IsValidLatitude(*r.OfficeLatitude) {
		errs = append(errs, validator.ValidationError{Field: "office_latitude", Message: "office_latitude must be between -90 and 90"})
	}
	if r.OfficeLongitude != nil && !validator.IsValidLongitude(*r.OfficeLongitude) {
		errs = append(errs, validator.ValidationError{Field: "office_longitude", Message: "office_longitude must be between -180 and 180"})
	}
	if r.AllowedRadiusMeters != nil && *r.AllowedRadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_radius_meters", Message: "allowed_radius_meters must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	ID                      string   `json:"-"`
	Name                    *string  `json:"name,omitempty"`
	Description             *string  `json:"description,omitempty"`
	ShiftStart              *string  `json:"shift_start,omitempty"`
	ShiftEnd                *string  `json:"shift_end,omitempty"`
	LateThresholdMinutes    *int     `json:"late_threshold_minutes,omitempty"`
	HalfDayThresholdMinutes *int     `json:"half_day_threshold_minutes,omitempty"`
	BreakStart              *string  `json:"break_start,omitempty"`
	BreakEnd                *string  `json:"break_end,omitempty"`
	RequireLocationCheck    *bool    `json:"require_location_check,omitempty"`
	OfficeLatitude          *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude         *float64 `json:"office_longitude,omitempty"`
	AllowedRadiusMeters     *int     `json:"allowed_radius_meters,omitempty"`
	IsActive                *bool    `json:"is_active,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	for field, value := range map[string]*string{
		"shift_start": r.ShiftStart,
		"shift_end":   r.ShiftEnd,
		"break_start": r.BreakStart,
		"break_end":   r.BreakEnd,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.ParseTimeOfDay(*value); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be a valid time (HH:MM)"})
		}
	}
	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_threshold_minutes", Message: "late_threshold_minutes must be zero or positive"})
	}
	if r.HalfDayThresholdMinutes != nil && *r.HalfDayThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "half_day_threshold_minutes", Message: "half_day_threshold_minutes must be zero or positive"})
	}
	if r.OfficeLatitude != nil && !validator.IsValidLatitude(*r.OfficeLatitude) {
		errs = append(errs, validator.ValidationError{Field: "office_latitude", Message: "office_latitude must be between -90 and 90"})
	}
	if r.OfficeLongitude != nil && !validator.IsValidLongitude(*r.OfficeLongitude) {
		errs = append(errs, validator.ValidationError{Field: "office_longitude", Message: "office_longitude must be between -180 and 180"})
	}
	if r.AllowedRadiusMeters != nil && *r.AllowedRadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_radius_meters", Message: "allowed_radius_meters must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	ID                      string   `json:"id"`
	BusinessID              string   `json:"business_id"`
	Name                    string   `json:"name"`
	Description             *string  `json:"description,omitempty"`
	ShiftStart              string   `json:"shift_start"`
	ShiftEnd                string   `json:"shift_end"`
	LateThresholdMinutes    int      `json:"late_threshold_minutes"`
	HalfDayThresholdMinutes int      `json:"half_day_threshold_minutes"`
	BreakStart              *string  `json:"break_start,omitempty"`
	BreakEnd                *string  `json:"break_end,omitempty"`
	RequireLocationCheck    bool     `json:"require_location_check"`
	OfficeLatitude          *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude         *float64 `json:"office_longitude,omitempty"`
	AllowedRadiusMeters     *int     `json:"allowed_radius_meters,omitempty"`
	IsActive                bool     `json:"is_active"`
	CreatedAt               string   `json:"created_at"`
	UpdatedAt               string   `json:"updated_at"`
}

type PolicyFilter struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PolicyFilter) Validate() error {
	var errs validator.ValidationErrors

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

// MapPolicyToResponse converts an AttendancePolicy entity to its API shape.
func MapPolicyToResponse(p AttendancePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                      p.ID,
		BusinessID:              p.BusinessID,
		Name:                    p.Name,
		Description:             p.Description,
		ShiftStart:              FormatTimeOfDay(p.ShiftStart),
		ShiftEnd:                FormatTimeOfDay(p.ShiftEnd),
		LateThresholdMinutes:    p.LateThresholdMinutes,
		HalfDayThresholdMinutes: p.HalfDayThresholdMinutes,
		BreakStart:              FormatTimeOfDayPtr(p.BreakStart),
		BreakEnd:                FormatTimeOfDayPtr(p.BreakEnd),
		RequireLocationCheck:    p.RequireLocationCheck,
		OfficeLatitude:          p.OfficeLatitude,
		OfficeLongitude:         p.OfficeLongitude,
		AllowedRadiusMeters:     p.AllowedRadiusMeters,
		IsActive:                p.IsActive,
		CreatedAt:               p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:               p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FormatTimeOfDay renders a time-of-day column value as HH:MM:SS.
func FormatTimeOfDay(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatTimeOfDayPtr is the pointer-safe variant used for break windows.
func FormatTimeOfDayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
