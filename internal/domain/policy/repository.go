package policy

import "context"

// PolicyRepository defines data access for attendance policies.
// All methods take businessID to keep tenants isolated.
type PolicyRepository interface {
	Create(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)
	GetByID(ctx context.Context, id string, businessID string) (AttendancePolicy, error)
	List(ctx context.Context, businessID string, filter PolicyFilter) ([]AttendancePolicy, int64, error)
	Update(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)
	Delete(ctx context.Context, id string, businessID string) error
}
