package response

import (
	"errors"
	"net/http"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/attendance"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrMissingClaims):
		Unauthorized(w, "Token is missing required claims")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNotAWorkDay):
		BadRequest(w, "Today is not a work day according to your schedule", nil)
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location coordinates are required for this policy", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceForbidden):
		Forbidden(w, "You do not have access to this attendance record")

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Attendance policy not found")
	case errors.Is(err, policy.ErrPolicyNameExists):
		Conflict(w, "Attendance policy with this name already exists")
	case errors.Is(err, policy.ErrPolicyInUse):
		Conflict(w, "Attendance policy is referenced by a work schedule")
	case errors.Is(err, policy.ErrIncompleteOffice):
		BadRequest(w, "Office latitude, longitude and allowed radius are required when location check is enabled", nil)
	case errors.Is(err, policy.ErrInvalidShiftTimes):
		BadRequest(w, "Shift end must be after shift start", nil)
	case errors.Is(err, policy.ErrPolicyForbidden):
		Forbidden(w, "Only business admins can manage attendance policies")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrScheduleForbidden):
		Forbidden(w, "You do not have access to this work schedule")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
