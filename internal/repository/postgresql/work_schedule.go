package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
	"github.com/emenu-platform/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Schedules are always read together with their policy. The join keeps
// check-in a single round trip.
const scheduleColumns = `
	ws.id, ws.business_id, ws.employee_id, ws.policy_id, ws.name, ws.work_days,
	ws.custom_start_time, ws.custom_end_time, ws.is_active, ws.created_at, ws.updated_at,
	p.id, p.business_id, p.name, p.description, p.shift_start, p.shift_end,
	p.late_threshold_minutes, p.half_day_threshold_minutes,
	p.break_start, p.break_end,
	p.require_location_check, p.office_latitude, p.office_longitude, p.allowed_radius_meters,
	p.is_active, p.created_at, p.updated_at`

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// Create implements schedule.ScheduleRepository.
func (r *workScheduleRepositoryImpl) Create(ctx context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (
			business_id, employee_id, policy_id, name, work_days,
			custom_start_time, custom_end_time, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.BusinessID,
		s.EmployeeID,
		s.PolicyID,
		s.Name,
		s.WorkDays,
		s.CustomStartTime,
		s.CustomEndTime,
		s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return s, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string, businessID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + scheduleColumns + `
		FROM work_schedules ws
		JOIN attendance_policies p ON p.id = ws.policy_id
		WHERE ws.id = $1
		  AND ws.business_id = $2
	`

	s, err := scanSchedule(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return s, nil
}

// List implements schedule.ScheduleRepository.
func (r *workScheduleRepositoryImpl) List(ctx context.Context, businessID string, filter schedule.ScheduleFilter) ([]schedule.WorkSchedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"ws.business_id = $1"}
	args := []interface{}{businessID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("ws.employee_id = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("ws.is_active = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM work_schedules ws WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work schedules: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM work_schedules ws
		JOIN attendance_policies p ON p.id = ws.policy_id
		WHERE %s
		ORDER BY ws.created_at DESC
		LIMIT $%d OFFSET $%d
	`, scheduleColumns, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read work schedules: %w", err)
	}

	return schedules, total, nil
}

// Update implements schedule.ScheduleRepository.
func (r *workScheduleRepositoryImpl) Update(ctx context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedules SET
			policy_id = $1,
			name = $2,
			work_days = $3,
			custom_start_time = $4,
			custom_end_time = $5,
			is_active = $6,
			updated_at = NOW()
		WHERE id = $7
		  AND business_id = $8
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.PolicyID,
		s.Name,
		s.WorkDays,
		s.CustomStartTime,
		s.CustomEndTime,
		s.IsActive,
		s.ID,
		s.BusinessID,
	).Scan(&s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to update work schedule: %w", err)
	}

	return s, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *workScheduleRepositoryImpl) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedules WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

func scanSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var s schedule.WorkSchedule
	s.Policy = &policy.AttendancePolicy{}

	p := s.Policy
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.EmployeeID, &s.PolicyID, &s.Name, &s.WorkDays,
		&s.CustomStartTime, &s.CustomEndTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.ShiftStart, &p.ShiftEnd,
		&p.LateThresholdMinutes, &p.HalfDayThresholdMinutes,
		&p.BreakStart, &p.BreakEnd,
		&p.RequireLocationCheck, &p.OfficeLatitude, &p.OfficeLongitude, &p.AllowedRadiusMeters,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return s, err
}
