package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("work schedule not found")
	ErrScheduleForbidden = errors.New("work schedule does not belong to the caller")
)
