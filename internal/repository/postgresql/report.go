package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/domain/report"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// CountEmployees implements report.ReportRepository.
func (r *reportRepository) CountEmployees(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountTasks implements report.ReportRepository.
func (r *reportRepository) CountTasks(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// TaskStatusCounts implements report.ReportRepository.
func (r *reportRepository) TaskStatusCounts(ctx context.Context) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count task statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan task status count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// DepartmentHeadcounts implements report.ReportRepository.
func (r *reportRepository) DepartmentHeadcounts(ctx context.Context) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT department, COUNT(*) FROM users
		WHERE status = 'active'
		GROUP BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var department string
		var count int
		if err := rows.Scan(&department, &count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts[department] = count
	}

	return counts, rows.Err()
}

// TodaySnapshot implements report.ReportRepository.
func (r *reportRepository) TodaySnapshot(ctx context.Context, workDate string) (report.TodaySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'late' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'half-day' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN check_in IS NOT NULL AND check_out IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG((productivity->>'score')::numeric), 0)
		FROM attendances
		WHERE work_date = $1::date
	`

	var snap report.TodaySnapshot
	err := q.QueryRow(ctx, query, workDate).Scan(
		&snap.TotalRecords,
		&snap.Summary.Present, &snap.Summary.Late, &snap.Summary.HalfDay, &snap.Summary.Absent,
		&snap.CheckedIn,
		&snap.Summary.AvgProductivity,
	)
	if err != nil {
		return report.TodaySnapshot{}, fmt.Errorf("failed to get today snapshot: %w", err)
	}

	return snap, nil
}

// DailyHeadcounts implements report.ReportRepository.
func (r *reportRepository) DailyHeadcounts(ctx context.Context, from, to string) ([]report.DailyHeadcount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT work_date::text, COUNT(*)
		FROM attendances
		WHERE work_date >= $1::date AND work_date <= $2::date AND status <> 'absent'
		GROUP BY work_date
		ORDER BY work_date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily headcounts: %w", err)
	}
	defer rows.Close()

	var points []report.DailyHeadcount
	for rows.Next() {
		var p report.DailyHeadcount
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily headcount: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// AttendanceSummary implements report.ReportRepository.
func (r *reportRepository) AttendanceSummary(ctx context.Context, userID, from, to string) (report.AttendanceSum, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'late' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'half-day' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN check_out IS NOT NULL AND working_minutes < 480 AND status <> 'absent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(working_minutes), 0)
		FROM attendances
		WHERE user_id = $1 AND work_date >= $2::date AND work_date <= $3::date
	`

	var sum report.AttendanceSum
	err := q.QueryRow(ctx, query, userID, from, to).Scan(
		&sum.TotalDays, &sum.PresentDays, &sum.LateDays, &sum.HalfDays, &sum.AbsentDays,
		&sum.EarlyDepartures, &sum.TotalMinutes,
	)
	if err != nil {
		return report.AttendanceSum{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return sum, nil
}

// TaskSummary implements report.ReportRepository.
func (r *reportRepository) TaskSummary(ctx context.Context, userID string) (report.TaskSum, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'overdue'
				OR (status IN ('pending', 'in-progress') AND due_date IS NOT NULL AND due_date < NOW())
				THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE assignee_id = $1
	`

	var sum report.TaskSum
	err := q.QueryRow(ctx, query, userID).Scan(&sum.Total, &sum.Completed, &sum.InProgress, &sum.Overdue)
	if err != nil {
		return report.TaskSum{}, fmt.Errorf("failed to get task summary: %w", err)
	}

	return sum, nil
}

// WeeklyTrend implements report.ReportRepository.
func (r *reportRepository) WeeklyTrend(ctx context.Context, userID string, weeks int) ([]report.WeekPoint, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			date_trunc('week', work_date)::date::text,
			COALESCE(AVG((productivity->>'score')::numeric), 0),
			COALESCE(SUM(working_minutes), 0)::numeric / 60
		FROM attendances
		WHERE user_id = $1 AND work_date >= (CURRENT_DATE - ($2 * INTERVAL '1 week'))
		GROUP BY 1
		ORDER BY 1 ASC
	`

	rows, err := q.Query(ctx, query, userID, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly trend: %w", err)
	}
	defer rows.Close()

	var points []report.WeekPoint
	for rows.Next() {
		var p report.WeekPoint
		if err := rows.Scan(&p.WeekStart, &p.AvgProductivity, &p.TotalHours); err != nil {
			return nil, fmt.Errorf("failed to scan week point: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// AttendanceRows implements report.ReportRepository.
func (r *reportRepository) AttendanceRows(ctx context.Context, from, to string, department *string) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.work_date >= $1::date AND a.work_date <= $2::date"
	args := []interface{}{from, to}
	if department != nil && *department != "" {
		baseWhere += " AND u.department = $3"
		args = append(args, *department)
	}

	query := fmt.Sprintf(`
		SELECT
			u.id, u.name, u.department,
			COALESCE(SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.status = 'late' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.status = 'half-day' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN a.status = 'absent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(a.working_minutes), 0)::numeric / 60,
			COALESCE(SUM(a.break_minutes), 0)::numeric / 60,
			COALESCE(SUM(a.overtime_minutes), 0)::numeric / 60
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		GROUP BY u.id, u.name, u.department
		ORDER BY u.name ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance report rows: %w", err)
	}
	defer rows.Close()

	var out []report.AttendanceReportRow
	for rows.Next() {
		var row report.AttendanceReportRow
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.Department,
			&row.DaysPresent, &row.DaysLate, &row.DaysHalf, &row.DaysAbsent,
			&row.TotalHours, &row.BreakHours, &row.OvertimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance report row: %w", err)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// DepartmentProductivity implements report.ReportRepository.
func (r *reportRepository) DepartmentProductivity(ctx context.Context, from, to string) ([]report.DepartmentProductivity, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT
			u.department,
			COUNT(DISTINCT u.id),
			COALESCE(AVG((a.productivity->>'score')::numeric), 0)
		FROM users u
		LEFT JOIN attendances a
			ON a.user_id = u.id AND a.work_date >= $1::date AND a.work_date <= $2::date
		WHERE u.status = 'active'
		GROUP BY u.department
		ORDER BY u.department ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get department productivity: %w", err)
	}
	defer rows.Close()

	var out []report.DepartmentProductivity
	for rows.Next() {
		var d report.DepartmentProductivity
		if err := rows.Scan(&d.Department, &d.Headcount, &d.AvgProductivity); err != nil {
			return nil, fmt.Errorf("failed to scan department productivity: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// DailyProductivity implements report.ReportRepository.
func (r *reportRepository) DailyProductivity(ctx context.Context, from, to string) ([]report.DailyProductivity, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT work_date::text, COALESCE(AVG((productivity->>'score')::numeric), 0)
		FROM attendances
		WHERE work_date >= $1::date AND work_date <= $2::date
		GROUP BY work_date
		ORDER BY work_date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily productivity: %w", err)
	}
	defer rows.Close()

	var out []report.DailyProductivity
	for rows.Next() {
		var d report.DailyProductivity
		if err := rows.Scan(&d.Date, &d.AvgProductivity); err != nil {
			return nil, fmt.Errorf("failed to scan daily productivity: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// TopPerformers implements report.ReportRepository.
func (r *reportRepository) TopPerformers(ctx context.Context, from, to string, limit int) ([]report.TopPerformer, error) {
	q := GetQuerier(ctx, r.db)

	if limit < 1 {
		limit = 5
	}

	// Score = 10*completed + avg productivity + 0.5*hours. Ranking done in
	// SQL so the limit applies before rows leave the database.
	query := `
		WITH completed AS (
			SELECT assignee_id, COUNT(*) AS done
			FROM tasks
			WHERE status = 'completed'
			  AND completed_at >= $1::date
			  AND completed_at < ($2::date + INTERVAL '1 day')
			GROUP BY assignee_id
		), worked AS (
			SELECT user_id,
				COALESCE(AVG((productivity->>'score')::numeric), 0) AS avg_prod,
				COALESCE(SUM(working_minutes), 0)::numeric / 60 AS hours
			FROM attendances
			WHERE work_date >= $1::date AND work_date <= $2::date
			GROUP BY user_id
		)
		SELECT
			u.id, u.name, u.department,
			COALESCE(c.done, 0),
			COALESCE(w.avg_prod, 0),
			COALESCE(w.hours, 0),
			10 * COALESCE(c.done, 0) + COALESCE(w.avg_prod, 0) + 0.5 * COALESCE(w.hours, 0) AS score
		FROM users u
		LEFT JOIN completed c ON c.assignee_id = u.id
		LEFT JOIN worked w ON w.user_id = u.id
		WHERE u.status = 'active'
		ORDER BY score DESC, u.name ASC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top performers: %w", err)
	}
	defer rows.Close()

	var out []report.TopPerformer
	for rows.Next() {
		var p report.TopPerformer
		err := rows.Scan(
			&p.EmployeeID, &p.EmployeeName, &p.Department,
			&p.CompletedTasks, &p.AvgProductivity, &p.TotalHours, &p.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan top performer: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// RecentActivity implements report.ReportRepository.
func (r *reportRepository) RecentActivity(ctx context.Context, since time.Time, limit int) ([]report.Activity, error) {
	q := GetQuerier(ctx, r.db)

	if limit < 1 {
		limit = 50
	}

	query := `
		SELECT * FROM (
			SELECT 'check-in' AS type, u.id, u.name, a.status::text AS detail, a.check_in AS at
			FROM attendances a JOIN users u ON u.id = a.user_id
			WHERE a.check_in IS NOT NULL AND a.check_in >= $1
			UNION ALL
			SELECT 'check-out', u.id, u.name, a.working_minutes::text, a.check_out
			FROM attendances a JOIN users u ON u.id = a.user_id
			WHERE a.check_out IS NOT NULL AND a.check_out >= $1
			UNION ALL
			SELECT 'task-completed', u.id, u.name, t.title, t.completed_at
			FROM tasks t JOIN users u ON u.id = t.assignee_id
			WHERE t.completed_at IS NOT NULL AND t.completed_at >= $1
		) feed
		ORDER BY at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	defer rows.Close()

	var out []report.Activity
	for rows.Next() {
		var a report.Activity
		var at time.Time
		if err := rows.Scan(&a.Type, &a.EmployeeID, &a.EmployeeName, &a.Detail, &at); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Timestamp = at.UTC().Format(time.RFC3339)
		out = append(out, a)
	}

	return out, rows.Err()
}
