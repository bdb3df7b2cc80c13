package schedule

import (
	"context"
	"fmt"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

type ScheduleService struct {
	scheduleRepo schedule.ScheduleRepository
	policyRepo   policy.PolicyRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository, policyRepo policy.PolicyRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		policyRepo:   policyRepo,
	}
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, caller auth.Identity, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if !caller.IsAdmin() {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleForbidden
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	// The policy must exist in the caller's business before a schedule can
	// reference it.
	p, err := s.policyRepo.GetByID(ctx, req.PolicyID, caller.BusinessID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get policy: %w", err)
	}

	sched := schedule.WorkSchedule{
		BusinessID: caller.BusinessID,
		EmployeeID: req.EmployeeID,
		PolicyID:   p.ID,
		Name:       req.Name,
		WorkDays:   req.WorkDays,
		IsActive:   true,
	}
	if req.CustomStartTime != nil {
		t, _ := validator.ParseTimeOfDay(*req.CustomStartTime)
		sched.CustomStartTime = &t
	}
	if req.CustomEndTime != nil {
		t, _ := validator.ParseTimeOfDay(*req.CustomEndTime)
		sched.CustomEndTime = &t
	}
	if req.IsActive != nil {
		sched.IsActive = *req.IsActive
	}

	created, err := s.scheduleRepo.Create(ctx, sched)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("create schedule: %w", err)
	}
	created.Policy = &p

	return schedule.MapScheduleToResponse(created), nil
}

func (s *ScheduleService) UpdateSchedule(ctx context.Context, caller auth.Identity, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if !caller.IsAdmin() {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleForbidden
	}
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	existing, err := s.scheduleRepo.GetByID(ctx, req.ID, caller.BusinessID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get schedule: %w", err)
	}

	if req.PolicyID != nil && *req.PolicyID != existing.PolicyID {
		p, err := s.policyRepo.GetByID(ctx, *req.PolicyID, caller.BusinessID)
		if err != nil {
			return schedule.ScheduleResponse{}, fmt.Errorf("get policy: %w", err)
		}
		existing.PolicyID = p.ID
		existing.Policy = &p
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if len(req.WorkDays) > 0 {
		existing.WorkDays = req.WorkDays
	}
	if req.CustomStartTime != nil {
		t, _ := validator.ParseTimeOfDay(*req.CustomStartTime)
		existing.CustomStartTime = &t
	}
	if req.CustomEndTime != nil {
		t, _ := validator.ParseTimeOfDay(*req.CustomEndTime)
		existing.CustomEndTime = &t
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.scheduleRepo.Update(ctx, existing)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("update schedule: %w", err)
	}
	if updated.Policy == nil {
		updated.Policy = existing.Policy
	}

	return schedule.MapScheduleToResponse(updated), nil
}

func (s *ScheduleService) GetSchedule(ctx context.Context, caller auth.Identity, id string) (schedule.ScheduleResponse, error) {
	sched, err := s.scheduleRepo.GetByID(ctx, id, caller.BusinessID)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("get schedule: %w", err)
	}
	// Employees can read their own schedule; anything else needs admin.
	if sched.EmployeeID != caller.EmployeeID && !caller.IsAdmin() {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleForbidden
	}
	return schedule.MapScheduleToResponse(sched), nil
}

func (s *ScheduleService) ListSchedules(ctx context.Context, caller auth.Identity, filter schedule.ScheduleFilter) (schedule.ListSchedulesResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListSchedulesResponse{}, err
	}

	// Non-admins only ever see their own schedules.
	if !caller.IsAdmin() {
		own := caller.EmployeeID
		filter.EmployeeID = &own
	}

	schedules, total, err := s.scheduleRepo.List(ctx, caller.BusinessID, filter)
	if err != nil {
		return schedule.ListSchedulesResponse{}, fmt.Errorf("list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, schedule.MapScheduleToResponse(sched))
	}

	return schedule.ListSchedulesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Schedules:  responses,
	}, nil
}

func (s *ScheduleService) DeleteSchedule(ctx context.Context, caller auth.Identity, id string) error {
	if !caller.IsAdmin() {
		return schedule.ErrScheduleForbidden
	}
	if err := s.scheduleRepo.Delete(ctx, id, caller.BusinessID); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
