package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/attendance"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/auth"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
	"github.com/emenu-platform/attendance-backend-go/internal/domain/schedule"
)

// In-memory repositories backing the service tests. The attendance fake
// enforces the same (employee_id, attendance_date) uniqueness the database
// constraint does, so the state machine is tested end to end without a
// running Postgres.

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == att.EmployeeID && existing.AttendanceDate.Equal(att.AttendanceDate) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	att.ID = uuid.New().String()
	att.CreatedAt = time.Now().UTC()
	att.UpdatedAt = att.CreatedAt
	r.records[att.ID] = att
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string, businessID string) (attendance.Attendance, error) {
	att, ok := r.records[id]
	if !ok || att.BusinessID != businessID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, businessID string) (*attendance.Attendance, error) {
	for _, att := range r.records {
		if att.EmployeeID == employeeID && att.BusinessID == businessID && att.AttendanceDate.Equal(date) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := r.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	att.UpdatedAt = time.Now().UTC()
	r.records[att.ID] = att
	return att, nil
}

func (r *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time, businessID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.EmployeeID != employeeID || att.BusinessID != businessID {
			continue
		}
		if att.AttendanceDate.Before(from) || att.AttendanceDate.After(to) {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter, businessID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.BusinessID == businessID {
			out = append(out, att)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) GetOpenSessionsBefore(_ context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if !att.CheckedOut() && att.AttendanceDate.Before(cutoff) {
			out = append(out, att)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule
}

func newFakeScheduleRepo(schedules ...schedule.WorkSchedule) *fakeScheduleRepo {
	r := &fakeScheduleRepo{schedules: make(map[string]schedule.WorkSchedule)}
	for _, s := range schedules {
		r.schedules[s.ID] = s
	}
	return r
}

func (r *fakeScheduleRepo) Create(_ context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	r.schedules[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id string, businessID string) (schedule.WorkSchedule, error) {
	s, ok := r.schedules[id]
	if !ok || s.BusinessID != businessID {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (r *fakeScheduleRepo) List(_ context.Context, businessID string, _ schedule.ScheduleFilter) ([]schedule.WorkSchedule, int64, error) {
	var out []schedule.WorkSchedule
	for _, s := range r.schedules {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	r.schedules[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id string, _ string) error {
	delete(r.schedules, id)
	return nil
}

// Fixture IDs and clock. The fixed "now" is Monday 2026-03-16 in UTC+7.
var (
	testBusinessID = uuid.New().String()
	testEmployeeID = uuid.New().String()
	testScheduleID = uuid.New().String()
	testPolicyID   = uuid.New().String()

	testZone = time.FixedZone("ICT", 7*60*60)
)

func testCaller() auth.Identity {
	return auth.Identity{
		UserID:     uuid.New().String(),
		EmployeeID: testEmployeeID,
		BusinessID: testBusinessID,
		Role:       "employee",
	}
}

func testPolicy() *policy.AttendancePolicy {
	return &policy.AttendancePolicy{
		ID:                      testPolicyID,
		BusinessID:              testBusinessID,
		Name:                    "Standard Shift",
		ShiftStart:              time.Date(0, time.January, 1, 9, 0, 0, 0, time.UTC),
		ShiftEnd:                time.Date(0, time.January, 1, 18, 0, 0, 0, time.UTC),
		LateThresholdMinutes:    15,
		HalfDayThresholdMinutes: 240,
		IsActive:                true,
	}
}

func testSchedule(p *policy.AttendancePolicy) schedule.WorkSchedule {
	return schedule.WorkSchedule{
		ID:         testScheduleID,
		BusinessID: testBusinessID,
		EmployeeID: testEmployeeID,
		PolicyID:   p.ID,
		Name:       "Weekday Shift",
		WorkDays:   []int{1, 2, 3, 4, 5},
		IsActive:   true,
		Policy:     p,
	}
}

func newTestService(attRepo *fakeAttendanceRepo, schedRepo *fakeScheduleRepo, now time.Time) *AttendanceService {
	svc := NewAttendanceService(attRepo, schedRepo, testZone, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	monday := func(hour, minute int) time.Time {
		return time.Date(2026, time.March, 16, hour, minute, 0, 0, testZone)
	}

	t.Run("on time is present", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), monday(8, 55))

		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
		assert.Equal(t, 0, resp.LateMinutes)
		assert.Equal(t, "2026-03-16", resp.Date)
	})

	t.Run("within grace period is present", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), monday(9, 14))

		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	})

	t.Run("past grace period is late from shift start", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), monday(9, 40))

		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusLate), resp.Status)
		assert.Equal(t, 40, resp.LateMinutes)
	})

	t.Run("second check-in same day is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), monday(9, 0))

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("non work day is rejected", func(t *testing.T) {
		sunday := time.Date(2026, time.March, 15, 9, 0, 0, 0, testZone)
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), sunday)

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		assert.ErrorIs(t, err, attendance.ErrNotAWorkDay)
	})

	t.Run("someone else's schedule is rejected", func(t *testing.T) {
		sched := testSchedule(testPolicy())
		sched.EmployeeID = uuid.New().String()
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(sched), monday(9, 0))

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		assert.ErrorIs(t, err, schedule.ErrScheduleForbidden)
	})

	t.Run("unknown schedule is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(), monday(9, 0))

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: uuid.New().String()})
		assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
	})

	t.Run("geofenced policy requires coordinates", func(t *testing.T) {
		p := testPolicy()
		lat, lon, radius := 11.5564, 104.9282, 100
		p.RequireLocationCheck = true
		p.OfficeLatitude = &lat
		p.OfficeLongitude = &lon
		p.AllowedRadiusMeters = &radius
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(p)), monday(9, 0))

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		assert.ErrorIs(t, err, attendance.ErrLocationRequired)
	})

	t.Run("outside the geofence is rejected and nothing is stored", func(t *testing.T) {
		p := testPolicy()
		lat, lon, radius := 11.5564, 104.9282, 100
		p.RequireLocationCheck = true
		p.OfficeLatitude = &lat
		p.OfficeLongitude = &lon
		p.AllowedRadiusMeters = &radius

		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeScheduleRepo(testSchedule(p)), monday(9, 0))

		farLat := lat + 0.05
		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{
			WorkScheduleID: testScheduleID,
			Latitude:       &farLat,
			Longitude:      &lon,
		})

		var oor *attendance.OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Empty(t, attRepo.records)
	})

	t.Run("custom start time overrides the policy", func(t *testing.T) {
		sched := testSchedule(testPolicy())
		customStart := time.Date(0, time.January, 1, 7, 0, 0, 0, time.UTC)
		sched.CustomStartTime = &customStart
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(sched), monday(7, 30))

		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusLate), resp.Status)
		assert.Equal(t, 30, resp.LateMinutes)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()

	checkIn := func(t *testing.T, svc *AttendanceService) string {
		t.Helper()
		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("full day keeps check-in status", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		schedRepo := newFakeScheduleRepo(testSchedule(testPolicy()))
		svc := newTestService(attRepo, schedRepo, time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone))

		id := checkIn(t, svc)

		svc.now = func() time.Time { return time.Date(2026, time.March, 16, 18, 0, 0, 0, testZone) }
		resp, err := svc.CheckOut(ctx, caller, id, attendance.CheckOutRequest{})
		require.NoError(t, err)

		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
		require.NotNil(t, resp.TotalWorkMinutes)
		assert.Equal(t, 540, *resp.TotalWorkMinutes)
		require.NotNil(t, resp.CheckOutTime)
	})

	t.Run("short day demotes late to half day", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		schedRepo := newFakeScheduleRepo(testSchedule(testPolicy()))
		svc := newTestService(attRepo, schedRepo, time.Date(2026, time.March, 16, 10, 0, 0, 0, testZone))

		id := checkIn(t, svc)

		svc.now = func() time.Time { return time.Date(2026, time.March, 16, 12, 0, 0, 0, testZone) }
		resp, err := svc.CheckOut(ctx, caller, id, attendance.CheckOutRequest{})
		require.NoError(t, err)

		assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
		require.NotNil(t, resp.TotalWorkMinutes)
		assert.Equal(t, 120, *resp.TotalWorkMinutes)
		// The late minutes from check-in survive the demotion.
		assert.Equal(t, 60, resp.LateMinutes)
	})

	t.Run("second check-out is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		schedRepo := newFakeScheduleRepo(testSchedule(testPolicy()))
		svc := newTestService(attRepo, schedRepo, time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone))

		id := checkIn(t, svc)

		svc.now = func() time.Time { return time.Date(2026, time.March, 16, 18, 0, 0, 0, testZone) }
		_, err := svc.CheckOut(ctx, caller, id, attendance.CheckOutRequest{})
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, caller, id, attendance.CheckOutRequest{})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("someone else's record is rejected", func(t *testing.T) {
		attRepo := newFakeAttendanceRepo()
		schedRepo := newFakeScheduleRepo(testSchedule(testPolicy()))
		svc := newTestService(attRepo, schedRepo, time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone))

		id := checkIn(t, svc)

		other := testCaller()
		other.EmployeeID = uuid.New().String()
		_, err := svc.CheckOut(ctx, other, id, attendance.CheckOutRequest{})
		assert.ErrorIs(t, err, attendance.ErrAttendanceForbidden)
	})

	t.Run("unknown record is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), time.Date(2026, time.March, 16, 18, 0, 0, 0, testZone))

		_, err := svc.CheckOut(ctx, caller, uuid.New().String(), attendance.CheckOutRequest{})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})
}

func TestGetToday(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	now := time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone)

	t.Run("no record yet", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), now)

		_, err := svc.GetToday(ctx, caller)
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("returns today's record after check-in", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), now)

		created, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)

		resp, err := svc.GetToday(ctx, caller)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})
}

func TestListMyAttendance(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	now := time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone)

	svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), now)
	_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
	require.NoError(t, err)

	t.Run("defaults to current month", func(t *testing.T) {
		records, err := svc.ListMyAttendance(ctx, caller, "", "")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("explicit range excluding the record", func(t *testing.T) {
		records, err := svc.ListMyAttendance(ctx, caller, "2026-02-01", "2026-02-28")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := svc.ListMyAttendance(ctx, caller, "2026-03-20", "2026-03-01")
		assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := svc.ListMyAttendance(ctx, caller, "16-03-2026", "")
		assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
	})
}

func TestListAttendance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone)

	t.Run("employee role is rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(), now)

		_, err := svc.ListAttendance(ctx, testCaller(), attendance.AttendanceFilter{})
		assert.ErrorIs(t, err, attendance.ErrAttendanceForbidden)
	})

	t.Run("admin sees business records with pagination defaults", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), now)
		_, err := svc.CheckIn(ctx, testCaller(), attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)

		admin := testCaller()
		admin.Role = "admin"
		resp, err := svc.ListAttendance(ctx, admin, attendance.AttendanceFilter{})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.TotalCount)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 20, resp.Limit)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Len(t, resp.Attendances, 1)
	})
}

func TestTransactionBoundary(t *testing.T) {
	ctx := context.Background()
	caller := testCaller()
	monday := time.Date(2026, time.March, 16, 9, 0, 0, 0, testZone)

	t.Run("check-in and check-out each run inside one transaction", func(t *testing.T) {
		var calls int
		svc := newTestService(newFakeAttendanceRepo(), newFakeScheduleRepo(testSchedule(testPolicy())), monday)
		svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			calls++
			return fn(ctx)
		}

		resp, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		_, err = svc.CheckOut(ctx, caller, resp.ID, attendance.CheckOutRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("transaction failure surfaces and stores nothing", func(t *testing.T) {
		txErr := errors.New("begin transaction: connection refused")
		attRepo := newFakeAttendanceRepo()
		svc := newTestService(attRepo, newFakeScheduleRepo(testSchedule(testPolicy())), monday)
		svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return txErr
		}

		_, err := svc.CheckIn(ctx, caller, attendance.CheckInRequest{WorkScheduleID: testScheduleID})
		assert.ErrorIs(t, err, txErr)
		assert.Empty(t, attRepo.records)
	})
}
