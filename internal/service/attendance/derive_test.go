package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
)

func TestDeriveStatus(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
	}

	cases := []struct {
		name    string
		checkIn time.Time
		want    string
	}{
		{"early morning", day(6, 30), attendance.StatusPresent},
		{"just before nine", day(8, 59), attendance.StatusPresent},
		{"nine sharp is late", day(9, 0), attendance.StatusLate},
		{"late window upper edge", day(11, 59), attendance.StatusLate},
		{"noon falls back to present", day(12, 0), attendance.StatusPresent},
		{"thirteen fifty-nine still present", day(13, 59), attendance.StatusPresent},
		{"fourteen sharp is half-day", day(14, 0), attendance.StatusHalfDay},
		{"evening check-in", day(20, 15), attendance.StatusHalfDay},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DeriveStatus(c.checkIn))
		})
	}
}

func TestGrossWorkingMinutes(t *testing.T) {
	checkIn := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	// 9:00 to 17:30 is 510 gross minutes regardless of breaks.
	assert.Equal(t, 510, GrossWorkingMinutes(checkIn, checkIn.Add(8*time.Hour+30*time.Minute)))

	// Partial minutes are floored.
	assert.Equal(t, 0, GrossWorkingMinutes(checkIn, checkIn.Add(59*time.Second)))
	assert.Equal(t, 1, GrossWorkingMinutes(checkIn, checkIn.Add(61*time.Second)))

	// Clock skew never yields negative time.
	assert.Equal(t, 0, GrossWorkingMinutes(checkIn, checkIn.Add(-time.Hour)))
}

func TestOvertimeMinutes(t *testing.T) {
	cases := []struct {
		name    string
		working int
		breaks  int
		want    int
	}{
		{"exactly a full day", 480, 0, 0},
		{"under a full day", 400, 0, 0},
		{"breaks eat the surplus", 510, 60, 0},
		{"an hour over", 570, 30, 60},
		{"breaks exceed working time", 30, 120, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, OvertimeMinutes(c.working, c.breaks))
		})
	}
}

func TestSumClosedBreaks(t *testing.T) {
	d30 := 30
	d15 := 15

	breaks := []attendance.BreakInterval{
		{DurationMinutes: &d30},
		{DurationMinutes: nil}, // still open
		{DurationMinutes: &d15},
	}

	assert.Equal(t, 45, SumClosedBreaks(breaks))
	assert.Equal(t, 0, SumClosedBreaks(nil))
}

func TestBreakMinutes(t *testing.T) {
	start := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 45, BreakMinutes(start, start.Add(45*time.Minute)))
	assert.Equal(t, 0, BreakMinutes(start, start.Add(-time.Minute)))
}
