package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
)

func dayWithTimes(checkIn, checkOut time.Time) attendance.AttendanceDay {
	ci, co := checkIn, checkOut
	return attendance.AttendanceDay{
		WorkDate: "2026-03-02",
		CheckIn:  &ci,
		CheckOut: &co,
		Status:   attendance.StatusPresent,
	}
}

func TestApplyCorrection(t *testing.T) {
	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	checkOut := time.Date(2026, time.March, 2, 17, 0, 0, 0, time.UTC)

	t.Run("check-in as bare time rederives status", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "check_in",
			NewValue: "09:30",
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), *day.CheckIn)
		assert.Equal(t, attendance.StatusLate, day.Status)
	})

	t.Run("check-out must stay after check-in", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "check_out",
			NewValue: "07:00",
		})
		assert.ErrorIs(t, err, attendance.ErrCorrectionOutOfOrder)
	})

	t.Run("check-in past check-out rejected", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "check_in",
			NewValue: "2026-03-02T18:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrCorrectionOutOfOrder)
	})

	t.Run("equal timestamps rejected", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "check_out",
			NewValue: checkIn.Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, attendance.ErrCorrectionOutOfOrder)
	})

	t.Run("status correction applies verbatim", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "status",
			NewValue: attendance.StatusLate,
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, day.Status)
	})

	t.Run("malformed value rejects the approval", func(t *testing.T) {
		day := dayWithTimes(checkIn, checkOut)

		err := applyCorrection(&day, attendance.CorrectionRequest{
			Field:    "check_in",
			NewValue: "half past nine",
		})
		assert.Error(t, err)
	})
}
