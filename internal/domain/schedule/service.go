package schedule

import (
	"context"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, caller auth.Identity, req CreateScheduleRequest) (ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, caller auth.Identity, req UpdateScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, caller auth.Identity, id string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context, caller auth.Identity, filter ScheduleFilter) (ListSchedulesResponse, error)
	DeleteSchedule(ctx context.Context, caller auth.Identity, id string) error
}

type ListSchedulesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Schedules  []ScheduleResponse `json:"schedules"`
}
