package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const policyColumns = `
	id, business_id, name, description, shift_start, shift_end,
	late_threshold_minutes, half_day_threshold_minutes,
	break_start, break_end,
	require_location_check, office_latitude, office_longitude, allowed_radius_meters,
	is_active, created_at, updated_at`

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Create implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Create(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_policies (
			business_id, name, description, shift_start, shift_end,
			late_threshold_minutes, half_day_threshold_minutes,
			break_start, break_end,
			require_location_check, office_latitude, office_longitude, allowed_radius_meters,
			is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.BusinessID,
		p.Name,
		p.Description,
		p.ShiftStart,
		p.ShiftEnd,
		p.LateThresholdMinutes,
		p.HalfDayThresholdMinutes,
		p.BreakStart,
		p.BreakEnd,
		p.RequireLocationCheck,
		p.OfficeLatitude,
		p.OfficeLongitude,
		p.AllowedRadiusMeters,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return policy.AttendancePolicy{}, policy.ErrPolicyNameExists
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to create policy: %w", err)
	}

	return p, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepositoryImpl) GetByID(ctx context.Context, id string, businessID string) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE id = $1
		  AND business_id = $2
	`

	p, err := scanPolicy(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get policy: %w", err)
	}

	return p, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepositoryImpl) List(ctx context.Context, businessID string, filter policy.PolicyFilter) ([]policy.AttendancePolicy, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"business_id = $1"}
	args := []interface{}{businessID}

	if filter.Name != nil {
		args = append(args, "%"+*filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_policies WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count policies: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_policies
		WHERE %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, policyColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var policies []policy.AttendancePolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read policies: %w", err)
	}

	return policies, total, nil
}

// Update implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Update(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_policies SET
			name = $1,
			description = $2,
			shift_start = $3,
			shift_end = $4,
			late_threshold_minutes = $5,
			half_day_threshold_minutes = $6,
			break_start = $7,
			break_end = $8,
			require_location_check = $9,
			office_latitude = $10,
			office_longitude = $11,
			allowed_radius_meters = $12,
			is_active = $13,
			updated_at = NOW()
		WHERE id = $14
		  AND business_id = $15
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.ShiftStart,
		p.ShiftEnd,
		p.LateThresholdMinutes,
		p.HalfDayThresholdMinutes,
		p.BreakStart,
		p.BreakEnd,
		p.RequireLocationCheck,
		p.OfficeLatitude,
		p.OfficeLongitude,
		p.AllowedRadiusMeters,
		p.IsActive,
		p.ID,
		p.BusinessID,
	).Scan(&p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return policy.AttendancePolicy{}, policy.ErrPolicyNameExists
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to update policy: %w", err)
	}

	return p, nil
}

// Delete implements policy.PolicyRepository. The foreign key from
// work_schedules blocks deleting a policy that is still referenced.
func (r *policyRepositoryImpl) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_policies WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return policy.ErrPolicyInUse
		}
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrPolicyNotFound
	}

	return nil
}

func scanPolicy(row pgx.Row) (policy.AttendancePolicy, error) {
	var p policy.AttendancePolicy
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.ShiftStart, &p.ShiftEnd,
		&p.LateThresholdMinutes, &p.HalfDayThresholdMinutes,
		&p.BreakStart, &p.BreakEnd,
		&p.RequireLocationCheck, &p.OfficeLatitude, &p.OfficeLongitude, &p.AllowedRadiusMeters,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
