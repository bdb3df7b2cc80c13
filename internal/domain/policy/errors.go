package policy

import "errors"

var (
	ErrPolicyNotFound    = errors.New("attendance policy not found")
	ErrPolicyNameExists  = errors.New("attendance policy with this name already exists")
	ErrIncompleteOffice  = errors.New("office latitude, longitude and allowed radius are required when location check is enabled")
	ErrPolicyInUse       = errors.New("attendance policy is referenced by a work schedule")
	ErrInvalidShiftTimes = errors.New("shift end must be after shift start")
	ErrPolicyForbidden   = errors.New("only business admins can manage attendance policies")
)
