package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emenu-platform/attendance-backend-go/internal/domain/policy"
)

func TestIsWorkDay(t *testing.T) {
	weekdays := WorkSchedule{WorkDays: []int{1, 2, 3, 4, 5}}

	monday := time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, time.March, 21, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.March, 22, 12, 0, 0, 0, time.UTC)

	assert.True(t, weekdays.IsWorkDay(monday))
	assert.False(t, weekdays.IsWorkDay(saturday))
	assert.False(t, weekdays.IsWorkDay(sunday))

	// Sunday maps to ISO weekday 7, not 0.
	weekend := WorkSchedule{WorkDays: []int{6, 7}}
	assert.True(t, weekend.IsWorkDay(sunday))
	assert.True(t, weekend.IsWorkDay(saturday))
	assert.False(t, weekend.IsWorkDay(monday))
}

func TestEffectiveShiftTimes(t *testing.T) {
	p := &policy.AttendancePolicy{
		ShiftStart: time.Date(0, time.January, 1, 9, 0, 0, 0, time.UTC),
		ShiftEnd:   time.Date(0, time.January, 1, 18, 0, 0, 0, time.UTC),
	}

	s := WorkSchedule{Policy: p}
	assert.Equal(t, 9, s.EffectiveShiftStart().Hour())
	assert.Equal(t, 18, s.EffectiveShiftEnd().Hour())

	customStart := time.Date(0, time.January, 1, 7, 30, 0, 0, time.UTC)
	customEnd := time.Date(0, time.January, 1, 16, 30, 0, 0, time.UTC)
	s.CustomStartTime = &customStart
	s.CustomEndTime = &customEnd

	assert.Equal(t, 7, s.EffectiveShiftStart().Hour())
	assert.Equal(t, 30, s.EffectiveShiftStart().Minute())
	assert.Equal(t, 16, s.EffectiveShiftEnd().Hour())
}
