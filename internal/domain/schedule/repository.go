package schedule

import "context"

// ScheduleRepository defines data access for work schedules. GetByID
// hydrates the referenced attendance policy; the lifecycle controller
// depends on that.
type ScheduleRepository interface {
	Create(ctx context.Context, s WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, id string, businessID string) (WorkSchedule, error)
	List(ctx context.Context, businessID string, filter ScheduleFilter) ([]WorkSchedule, int64, error)
	Update(ctx context.Context, s WorkSchedule) (WorkSchedule, error)
	Delete(ctx context.Context, id string, businessID string) error
}
