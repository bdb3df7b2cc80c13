package policy

import (
	"context"
	"fmt"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/validator"
)

type PolicyService struct {
	policyRepo policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) *PolicyService {
	return &PolicyService{policyRepo: policyRepo}
}

func (s *PolicyService) CreatePolicy(ctx context.Context, caller auth.Identity, req policy.CreatePolicyRequest) (policy.PolicyResponse, error) {
	if !caller.IsAdmin() {
		return policy.PolicyResponse{}, policy.ErrPolicyForbidden
	}
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	shiftStart, _ := validator.ParseTimeOfDay(req.ShiftStart)
	shiftEnd, _ := validator.ParseTimeOfDay(req.ShiftEnd)

	p := policy.AttendancePolicy{
		BusinessID:              caller.BusinessID,
		Name:                    req.Name,
		Description:             req.Description,
		ShiftStart:              shiftStart,
		ShiftEnd:                shiftEnd,
		LateThresholdMinutes:    req.LateThresholdMinutes,
		HalfDayThresholdMinutes: req.HalfDayThresholdMinutes,
		RequireLocationCheck:    req.RequireLocationCheck,
		OfficeLatitude:          req.OfficeLatitude,
		OfficeLongitude:         req.OfficeLongitude,
		AllowedRadiusMeters:     req.AllowedRadiusMeters,
		IsActive:                true,
	}
	if req.BreakStart != nil {
		t, _ := validator.ParseTimeOfDay(*req.BreakStart)
		p.BreakStart = &t
	}
	if req.BreakEnd != nil {
		t, _ := validator.ParseTimeOfDay(*req.BreakEnd)
		p.BreakEnd = &t
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	created, err := s.policyRepo.Create(ctx, p)
	if err != nil {
		return policy.PolicyResponse{}, err
	}
	return policy.MapPolicyToResponse(created), nil
}

func (s *PolicyService) UpdatePolicy(ctx context.Context, caller auth.Identity, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if !caller.IsAdmin() {
		return policy.PolicyResponse{}, policy.ErrPolicyForbidden
	}
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	existing, err := s.policyRepo.GetByID(ctx, req.ID, caller.BusinessID)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("get policy: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.ShiftStart != nil {
		t, _ := validator.ParseTimeOfDay(*req.ShiftStart)
		existing.ShiftStart = t
	}
	if req.ShiftEnd != nil {
		t, _ := validator.ParseTimeOfDay(*req.ShiftEnd)
		existing.ShiftEnd = t
	}
	if !existing.ShiftEnd.After(existing.ShiftStart) {
		return policy.PolicyResponse{}, policy.ErrInvalidShiftTimes
	}
	if req.LateThresholdMinutes != nil {
		existing.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.HalfDayThresholdMinutes != nil {
		existing.HalfDayThresholdMinutes = *req.HalfDayThresholdMinutes
	}
	if req.BreakStart != nil {
		t, _ := validator.ParseTimeOfDay(*req.BreakStart)
		existing.BreakStart = &t
	}
	if req.BreakEnd != nil {
		t, _ := validator.ParseTimeOfDay(*req.BreakEnd)
		existing.BreakEnd = &t
	}
	if req.RequireLocationCheck != nil {
		existing.RequireLocationCheck = *req.RequireLocationCheck
	}
	if req.OfficeLatitude != nil {
		existing.OfficeLatitude = req.OfficeLatitude
	}
	if req.OfficeLongitude != nil {
		existing.OfficeLongitude = req.OfficeLongitude
	}
	if req.AllowedRadiusMeters != nil {
		existing.AllowedRadiusMeters = req.AllowedRadiusMeters
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	// A partial update may enable the geofence without supplying the office
	// location, so the cross-field rule is re-checked on the merged state.
	if existing.RequireLocationCheck {
		if existing.OfficeLatitude == nil || existing.OfficeLongitude == nil || existing.AllowedRadiusMeters == nil {
			return policy.PolicyResponse{}, policy.ErrIncompleteOffice
		}
	}

	updated, err := s.policyRepo.Update(ctx, existing)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("update policy: %w", err)
	}
	return policy.MapPolicyToResponse(updated), nil
}

func (s *PolicyService) GetPolicy(ctx context.Context, caller auth.Identity, id string) (policy.PolicyResponse, error) {
	p, err := s.policyRepo.GetByID(ctx, id, caller.BusinessID)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("get policy: %w", err)
	}
	return policy.MapPolicyToResponse(p), nil
}

func (s *PolicyService) ListPolicies(ctx context.Context, caller auth.Identity, filter policy.PolicyFilter) (policy.ListPoliciesResponse, error) {
	if err := filter.Validate(); err != nil {
		return policy.ListPoliciesResponse{}, err
	}

	policies, total, err := s.policyRepo.List(ctx, caller.BusinessID, filter)
	if err != nil {
		return policy.ListPoliciesResponse{}, fmt.Errorf("list policies: %w", err)
	}

	responses := make([]policy.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, policy.MapPolicyToResponse(p))
	}

	return policy.ListPoliciesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Policies:   responses,
	}, nil
}

func (s *PolicyService) DeletePolicy(ctx context.Context, caller auth.Identity, id string) error {
	if !caller.IsAdmin() {
		return policy.ErrPolicyForbidden
	}
	if err := s.policyRepo.Delete(ctx, id, caller.BusinessID); err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return nil
}
