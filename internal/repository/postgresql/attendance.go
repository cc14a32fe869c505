package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
)

const attendanceColumns = `a.id, a.user_id, a.work_date::text, a.check_in, a.check_out, a.status,
	a.working_minutes, a.break_minutes, a.overtime_minutes,
	a.check_in_location, a.check_out_location, a.device, a.health, a.mood, a.productivity,
	a.approval_required, a.approval_reason, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanDay(row pgx.Row) (attendance.AttendanceDay, error) {
	var d attendance.AttendanceDay
	err := row.Scan(
		&d.ID, &d.UserID, &d.WorkDate, &d.CheckIn, &d.CheckOut, &d.Status,
		&d.WorkingMinutes, &d.BreakMinutes, &d.OvertimeMinutes,
		&d.CheckInLocation, &d.CheckOutLocation, &d.Device, &d.Health, &d.Mood, &d.Productivity,
		&d.ApprovalRequired, &d.ApprovalReason, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	if day.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.AttendanceDay{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		day.ID = id.String()
	}

	query := `
		INSERT INTO attendances (
			id, user_id, work_date, check_in, check_out, status,
			working_minutes, break_minutes, overtime_minutes,
			check_in_location, check_out_location, device, health, mood, productivity,
			approval_required, approval_reason
		) VALUES (
			$1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.ID, day.UserID, day.WorkDate, day.CheckIn, day.CheckOut, day.Status,
		day.WorkingMinutes, day.BreakMinutes, day.OvertimeMinutes,
		day.CheckInLocation, day.CheckOutLocation, day.Device, day.Health, day.Mood, day.Productivity,
		day.ApprovalRequired, day.ApprovalReason,
	).Scan(&day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		// The UNIQUE (user_id, work_date) constraint decides the winner of
		// a concurrent first check-in; the loser gets the conflict error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceDay{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, workDate string) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendances a
		WHERE a.user_id = $1 AND a.work_date = $2::date
	`, attendanceColumns)

	d, err := scanDay(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	if err := a.attachBreaks(ctx, []*attendance.AttendanceDay{&d}); err != nil {
		return nil, err
	}

	return &d, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendances a WHERE a.id = $1`, attendanceColumns)

	d, err := scanDay(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	if err := a.attachBreaks(ctx, []*attendance.AttendanceDay{&d}); err != nil {
		return attendance.AttendanceDay{}, err
	}

	return d, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, day attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, status = $4,
			working_minutes = $5, break_minutes = $6, overtime_minutes = $7,
			check_in_location = $8, check_out_location = $9,
			device = $10, health = $11, mood = $12, productivity = $13,
			approval_required = $14, approval_reason = $15,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		day.ID, day.CheckIn, day.CheckOut, day.Status,
		day.WorkingMinutes, day.BreakMinutes, day.OvertimeMinutes,
		day.CheckInLocation, day.CheckOutLocation,
		day.Device, day.Health, day.Mood, day.Productivity,
		day.ApprovalRequired, day.ApprovalReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// History implements attendance.AttendanceRepository.
func (a *attendanceRepository) History(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.AttendanceDay, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.user_id = $1"
	args := []interface{}{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendances a WHERE %s`, baseWhere)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance history: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s FROM attendances a
		WHERE %s
		ORDER BY a.work_date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	days, err := a.queryDays(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return days, total, nil
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, userID string, from string, to string) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendances a
		WHERE a.user_id = $1 AND a.work_date >= $2::date AND a.work_date <= $3::date
		ORDER BY a.work_date ASC
	`, attendanceColumns)

	return a.queryDays(ctx, q, query, userID, from, to)
}

// ListAllRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAllRange(ctx context.Context, from string, to string, department *string) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.work_date >= $1::date AND a.work_date <= $2::date"
	args := []interface{}{from, to}
	if department != nil && *department != "" {
		baseWhere += " AND u.department = $3"
		args = append(args, *department)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.work_date ASC
	`, attendanceColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		var d attendance.AttendanceDay
		err := rows.Scan(
			&d.ID, &d.UserID, &d.WorkDate, &d.CheckIn, &d.CheckOut, &d.Status,
			&d.WorkingMinutes, &d.BreakMinutes, &d.OvertimeMinutes,
			&d.CheckInLocation, &d.CheckOutLocation, &d.Device, &d.Health, &d.Mood, &d.Productivity,
			&d.ApprovalRequired, &d.ApprovalReason, &d.CreatedAt, &d.UpdatedAt,
			&d.UserName, &d.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*attendance.AttendanceDay, len(days))
	for i := range days {
		ptrs[i] = &days[i]
	}
	if err := a.attachBreaks(ctx, ptrs); err != nil {
		return nil, err
	}

	return days, nil
}

func (a *attendanceRepository) queryDays(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.AttendanceDay, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*attendance.AttendanceDay, len(days))
	for i := range days {
		ptrs[i] = &days[i]
	}
	if err := a.attachBreaks(ctx, ptrs); err != nil {
		return nil, err
	}

	return days, nil
}

// attachBreaks loads break intervals for the given days in one query.
func (a *attendanceRepository) attachBreaks(ctx context.Context, days []*attendance.AttendanceDay) error {
	if len(days) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	ids := make([]string, 0, len(days))
	byID := make(map[string]*attendance.AttendanceDay, len(days))
	for _, d := range days {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	rows, err := q.Query(ctx, `
		SELECT id, attendance_id, seq, category, start_at, end_at, duration_minutes, note, location
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY attendance_id, seq ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b attendance.BreakInterval
		err := rows.Scan(&b.ID, &b.AttendanceID, &b.Seq, &b.Category, &b.StartAt, &b.EndAt, &b.DurationMinutes, &b.Note, &b.Location)
		if err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		if d, ok := byID[b.AttendanceID]; ok {
			d.Breaks = append(d.Breaks, b)
		}
	}

	return rows.Err()
}

// AddBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) AddBreak(ctx context.Context, b attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := GetQuerier(ctx, a.db)

	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.BreakInterval{}, fmt.Errorf("failed to generate break id: %w", err)
		}
		b.ID = id.String()
	}

	query := `
		INSERT INTO attendance_breaks (id, attendance_id, seq, category, start_at, end_at, duration_minutes, note, location)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(seq) + 1 FROM attendance_breaks WHERE attendance_id = $2), 1),
			$3, $4, $5, $6, $7, $8)
		RETURNING seq
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.AttendanceID, b.Category, b.StartAt, b.EndAt, b.DurationMinutes, b.Note, b.Location,
	).Scan(&b.Seq)
	if err != nil {
		return attendance.BreakInterval{}, fmt.Errorf("failed to add break: %w", err)
	}

	return b, nil
}

// CloseBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseBreak(ctx context.Context, b attendance.BreakInterval) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_breaks
		SET end_at = $2, duration_minutes = $3
		WHERE id = $1 AND end_at IS NULL
	`, b.ID, b.EndAt, b.DurationMinutes)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

// AddCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) AddCorrection(ctx context.Context, c attendance.CorrectionRequest) (attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, a.db)

	if c.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.CorrectionRequest{}, fmt.Errorf("failed to generate correction id: %w", err)
		}
		c.ID = id.String()
	}

	query := `
		INSERT INTO attendance_corrections (id, attendance_id, field, old_value, new_value, reason, requested_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING status, created_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.AttendanceID, c.Field, c.OldValue, c.NewValue, c.Reason, c.RequestedBy,
	).Scan(&c.Status, &c.CreatedAt)
	if err != nil {
		return attendance.CorrectionRequest{}, fmt.Errorf("failed to add correction: %w", err)
	}

	return c, nil
}

const correctionColumns = `id, attendance_id, field, old_value, new_value, reason, requested_by, status, created_at, resolved_by, resolved_at`

func scanCorrection(row pgx.Row) (attendance.CorrectionRequest, error) {
	var c attendance.CorrectionRequest
	err := row.Scan(&c.ID, &c.AttendanceID, &c.Field, &c.OldValue, &c.NewValue, &c.Reason,
		&c.RequestedBy, &c.Status, &c.CreatedAt, &c.ResolvedBy, &c.ResolvedAt)
	return c, err
}

// GetCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetCorrection(ctx context.Context, id string) (attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance_corrections WHERE id = $1`, correctionColumns)

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.CorrectionRequest{}, attendance.ErrCorrectionNotFound
		}
		return attendance.CorrectionRequest{}, fmt.Errorf("failed to get correction: %w", err)
	}

	return c, nil
}

// ListCorrections implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListCorrections(ctx context.Context, attendanceID string) ([]attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_corrections
		WHERE attendance_id = $1
		ORDER BY created_at ASC
	`, correctionColumns)

	return a.queryCorrections(ctx, q, query, attendanceID)
}

// ListPendingCorrections implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListPendingCorrections(ctx context.Context) ([]attendance.CorrectionRequest, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_corrections
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`, correctionColumns)

	return a.queryCorrections(ctx, q, query)
}

// CountPendingCorrections implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountPendingCorrections(ctx context.Context, attendanceID string) (int, error) {
	q := GetQuerier(ctx, a.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_corrections WHERE attendance_id = $1 AND status = 'pending'`,
		attendanceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending corrections: %w", err)
	}

	return count, nil
}

func (a *attendanceRepository) queryCorrections(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.CorrectionRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []attendance.CorrectionRequest
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}

	return corrections, rows.Err()
}

// UpdateCorrection implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCorrection(ctx context.Context, c attendance.CorrectionRequest) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_corrections
		SET status = $2, resolved_by = $3, resolved_at = $4
		WHERE id = $1
	`, c.ID, c.Status, c.ResolvedBy, c.ResolvedAt)
	if err != nil {
		return fmt.Errorf("failed to update correction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrCorrectionNotFound
	}

	return nil
}

// MarkAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkAbsent(ctx context.Context, userIDs []string, workDate string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO attendances (user_id, work_date, status)
		SELECT u.id, $2::date, 'absent'
		FROM users u
		WHERE u.id = ANY($1)
		ON CONFLICT (user_id, work_date) DO NOTHING
	`, userIDs, workDate)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absentees: %w", err)
	}

	return tag.RowsAffected(), nil
}
