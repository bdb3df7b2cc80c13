package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/attendance"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
)

// AttendanceJobs closes attendance sessions whose owner never checked out.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	location *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_sessions", 1*time.Hour, j.AutoCloseOpenSessions)
}

// AutoCloseOpenSessions closes every session from a previous business day
// that is still missing its check-out. The check-out is backdated to the
// schedule's effective shift end on the attendance date; the worked minutes
// and the half-day rule are applied the same way a real check-out would.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	nowLocal := j.now().In(j.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	sessions, err := j.attendanceRepo.GetOpenSessionsBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("get open sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range sessions {
		sched, err := j.scheduleRepo.GetByID(ctx, session.WorkScheduleID, session.BusinessID)
		if err != nil {
			slog.Error("Cron: Failed to load schedule for open session",
				"attendance_id", session.ID,
				"work_schedule_id", session.WorkScheduleID,
				"error", err)
			continue
		}

		shiftEnd := sched.EffectiveShiftEnd()
		closeLocal := time.Date(
			session.AttendanceDate.Year(), session.AttendanceDate.Month(), session.AttendanceDate.Day(),
			shiftEnd.Hour(), shiftEnd.Minute(), shiftEnd.Second(), 0,
			j.location,
		)
		closeUTC := closeLocal.UTC()

		// A check-in after the scheduled end would produce a negative
		// duration; close such sessions at the check-in instant instead.
		if closeUTC.Before(session.CheckInTime) {
			closeUTC = session.CheckInTime
		}

		total := int(closeUTC.Sub(session.CheckInTime).Minutes())
		status := session.Status
		if total < sched.Policy.HalfDayThresholdMinutes {
			status = attendance.StatusHalfDay
		}

		session.CheckOutTime = &closeUTC
		session.TotalWorkMinutes = &total
		session.Status = status

		if _, err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Auto-closed open sessions", "count", closedCount)
	return nil
}
