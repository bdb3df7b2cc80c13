package policy

import (
	"context"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
)

// PolicyService is plain CRUD over the policy store; the compliance rules
// that consume these policies live in the attendance service.
type PolicyService interface {
	CreatePolicy(ctx context.Context, caller auth.Identity, req CreatePolicyRequest) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, caller auth.Identity, req UpdatePolicyRequest) (PolicyResponse, error)
	GetPolicy(ctx context.Context, caller auth.Identity, id string) (PolicyResponse, error)
	ListPolicies(ctx context.Context, caller auth.Identity, filter PolicyFilter) (ListPoliciesResponse, error)
	DeletePolicy(ctx context.Context, caller auth.Identity, id string) error
}

type ListPoliciesResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Policies   []PolicyResponse `json:"policies"`
}
