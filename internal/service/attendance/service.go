package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/attendance"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
)

// TxRunner executes fn inside a single database transaction. Repositories
// pick the transaction up from ctx, so fn must pass its ctx argument on.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
	location       *time.Location
	runTx          TxRunner
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	location *time.Location,
	runTx TxRunner,
) *AttendanceService {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		location:       location,
		runTx:          runTx,
		now:            time.Now,
	}
}

func (s *AttendanceService) CheckIn(ctx context.Context, caller auth.Identity, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := s.now().In(s.location)
	today := dateOnly(nowLocal)

	var created attendance.Attendance
	err := s.runTx(ctx, func(ctx context.Context) error {
		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, caller.EmployeeID, today, caller.BusinessID)
		if err != nil {
			return fmt.Errorf("check existing attendance: %w", err)
		}
		if existing != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		sched, err := s.scheduleRepo.GetByID(ctx, req.WorkScheduleID, caller.BusinessID)
		if err != nil {
			return fmt.Errorf("get work schedule: %w", err)
		}
		if sched.EmployeeID != caller.EmployeeID {
			return schedule.ErrScheduleForbidden
		}

		if !sched.IsWorkDay(nowLocal) {
			return attendance.ErrNotAWorkDay
		}

		if err := validateLocation(req.Latitude, req.Longitude, sched.Policy); err != nil {
			return err
		}

		result := ClassifyCheckIn(sched.EffectiveShiftStart(), sched.Policy.LateThresholdMinutes, nowLocal)

		record := attendance.Attendance{
			BusinessID:       caller.BusinessID,
			EmployeeID:       caller.EmployeeID,
			WorkScheduleID:   sched.ID,
			AttendanceDate:   today,
			CheckInTime:      nowLocal.UTC(),
			CheckInLatitude:  req.Latitude,
			CheckInLongitude: req.Longitude,
			CheckInAddress:   req.Address,
			CheckInNote:      req.Note,
			LateMinutes:      result.LateMinutes,
			Status:           result.Status,
		}

		// The unique constraint on (employee_id, attendance_date) is the real
		// guard; the lookup above only exists for a friendlier fast path.
		created, err = s.attendanceRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.MapAttendanceToResponse(created), nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, caller auth.Identity, attendanceID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := s.runTx(ctx, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByID(ctx, attendanceID, caller.BusinessID)
		if err != nil {
			return fmt.Errorf("get attendance: %w", err)
		}
		if record.EmployeeID != caller.EmployeeID {
			return attendance.ErrAttendanceForbidden
		}
		if record.CheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}

		sched, err := s.scheduleRepo.GetByID(ctx, record.WorkScheduleID, caller.BusinessID)
		if err != nil {
			return fmt.Errorf("get work schedule: %w", err)
		}

		if err := validateLocation(req.Latitude, req.Longitude, sched.Policy); err != nil {
			return err
		}

		nowUTC := s.now().UTC()
		result := ClassifyCheckOut(record.CheckInTime, nowUTC, sched.Policy.HalfDayThresholdMinutes, record.Status)

		record.CheckOutTime = &nowUTC
		record.CheckOutLatitude = req.Latitude
		record.CheckOutLongitude = req.Longitude
		record.CheckOutAddress = req.Address
		record.CheckOutNote = req.Note
		record.TotalWorkMinutes = &result.TotalWorkMinutes
		record.Status = result.Status

		updated, err = s.attendanceRepo.Update(ctx, record)
		if err != nil {
			return fmt.Errorf("update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.MapAttendanceToResponse(updated), nil
}

func (s *AttendanceService) GetAttendance(ctx context.Context, caller auth.Identity, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id, caller.BusinessID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("get attendance: %w", err)
	}
	if record.EmployeeID != caller.EmployeeID && !caller.IsAdmin() {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceForbidden
	}
	return attendance.MapAttendanceToResponse(record), nil
}

func (s *AttendanceService) GetToday(ctx context.Context, caller auth.Identity) (attendance.AttendanceResponse, error) {
	today := dateOnly(s.now().In(s.location))

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, caller.EmployeeID, today, caller.BusinessID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("get today attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.MapAttendanceToResponse(*record), nil
}

func (s *AttendanceService) ListMyAttendance(ctx context.Context, caller auth.Identity, startDate, endDate string) ([]attendance.AttendanceResponse, error) {
	nowLocal := s.now().In(s.location)

	// Defaults to the current month so the common "my attendance" screen
	// needs no query parameters.
	from := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := dateOnly(nowLocal)

	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, attendance.ErrInvalidDateRange
		}
		from = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, attendance.ErrInvalidDateRange
		}
		to = parsed
	}
	if to.Before(from) {
		return nil, attendance.ErrInvalidDateRange
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, caller.EmployeeID, from, to, caller.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.MapAttendanceToResponse(record))
	}
	return responses, nil
}

func (s *AttendanceService) ListAttendance(ctx context.Context, caller auth.Identity, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if !caller.IsAdmin() {
		return attendance.ListAttendanceResponse{}, attendance.ErrAttendanceForbidden
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, caller.BusinessID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.MapAttendanceToResponse(record))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// dateOnly truncates an instant to its calendar date. Dates are stored at
// UTC midnight regardless of the business timezone the day was observed in.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
