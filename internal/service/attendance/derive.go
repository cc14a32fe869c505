package attendance

import (
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
)

// Day status thresholds, in check-in hours of the work date.
const (
	lateHour    = 9
	lateEndHour = 12
	halfDayHour = 14
)

// Full working day in net minutes; anything beyond counts as overtime.
const fullDayMinutes = 480

// DeriveStatus maps a check-in time to the day status. Before 09:00 is
// present, 09:00-11:59 is late, 14:00 onwards is half-day. The 12:00-13:59
// window intentionally falls through to present.
func DeriveStatus(checkIn time.Time) string {
	hour := checkIn.Hour()
	switch {
	case hour < lateHour:
		return attendance.StatusPresent
	case hour < lateEndHour:
		return attendance.StatusLate
	case hour >= halfDayHour:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusPresent
	}
}

// GrossWorkingMinutes is the whole-minute span between check-in and
// check-out, breaks included.
func GrossWorkingMinutes(checkIn, checkOut time.Time) int {
	span := checkOut.Sub(checkIn)
	if span < 0 {
		return 0
	}
	return int(span / time.Minute)
}

// BreakMinutes is the whole-minute length of one closed break.
func BreakMinutes(startAt, endAt time.Time) int {
	span := endAt.Sub(startAt)
	if span < 0 {
		return 0
	}
	return int(span / time.Minute)
}

// OvertimeMinutes is net working time beyond a full day, never negative.
func OvertimeMinutes(workingMinutes, breakMinutes int) int {
	overtime := workingMinutes - breakMinutes - fullDayMinutes
	if overtime < 0 {
		return 0
	}
	return overtime
}

// SumClosedBreaks totals the recorded durations of closed intervals.
func SumClosedBreaks(breaks []attendance.BreakInterval) int {
	total := 0
	for _, b := range breaks {
		if b.DurationMinutes != nil {
			total += *b.DurationMinutes
		}
	}
	return total
}
