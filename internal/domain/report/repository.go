package report

import (
	"context"
	"time"
)

// ReportRepository exposes the aggregate queries behind the dashboards and
// reports. Each method maps to a single SQL statement; composition into
// response shapes happens in the service.
type ReportRepository interface {
	CountEmployees(ctx context.Context) (int, error)

	CountTasks(ctx context.Context) (int, error)

	TaskStatusCounts(ctx context.Context) (map[string]int, error)

	DepartmentHeadcounts(ctx context.Context) (map[string]int, error)

	// TodaySnapshot aggregates attendance records for one work date.
	// Absent counts come from persisted absent rows only.
	TodaySnapshot(ctx context.Context, workDate string) (TodaySnapshot, error)

	// DailyHeadcounts returns one point per work date in [from, to] with the
	// number of non-absent attendance records. Dates with no records are
	// omitted.
	DailyHeadcounts(ctx context.Context, from, to string) ([]DailyHeadcount, error)

	AttendanceSummary(ctx context.Context, userID, from, to string) (AttendanceSum, error)

	TaskSummary(ctx context.Context, userID string) (TaskSum, error)

	// WeeklyTrend buckets a user's attendance into ISO weeks, newest last.
	WeeklyTrend(ctx context.Context, userID string, weeks int) ([]WeekPoint, error)

	AttendanceRows(ctx context.Context, from, to string, department *string) ([]AttendanceReportRow, error)

	DepartmentProductivity(ctx context.Context, from, to string) ([]DepartmentProductivity, error)

	DailyProductivity(ctx context.Context, from, to string) ([]DailyProductivity, error)

	TopPerformers(ctx context.Context, from, to string, limit int) ([]TopPerformer, error)

	// RecentActivity merges check-ins, check-outs and task completions since
	// the cutoff, newest first.
	RecentActivity(ctx context.Context, since time.Time, limit int) ([]Activity, error)
}
