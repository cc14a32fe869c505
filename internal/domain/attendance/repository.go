package attendance

import "context"

// AttendanceRepository defines data access methods for attendance days and
// their child records (breaks, corrections).
type AttendanceRepository interface {
	// Create inserts a new day. The UNIQUE (user_id, work_date) constraint
	// is the authority on double check-in: a unique violation is returned
	// as ErrAlreadyCheckedIn so concurrent first check-ins get a clean
	// conflict signal instead of a generic error.
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// GetByUserAndDate loads the day with its breaks. Returns nil (no
	// error) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, workDate string) (*AttendanceDay, error)

	GetByID(ctx context.Context, id string) (AttendanceDay, error)

	// Update persists the day's mutable columns (not the child records).
	Update(ctx context.Context, day AttendanceDay) error

	// History lists a user's days, newest first, with breaks attached.
	History(ctx context.Context, userID string, filter HistoryFilter) ([]AttendanceDay, int64, error)

	// ListRange returns all of a user's days in [from, to] (inclusive,
	// YYYY-MM-DD) with breaks attached. Stats and analytics scan these in
	// memory.
	ListRange(ctx context.Context, userID string, from string, to string) ([]AttendanceDay, error)

	// ListAllRange is ListRange across every account, for reporting.
	ListAllRange(ctx context.Context, from string, to string, department *string) ([]AttendanceDay, error)

	AddBreak(ctx context.Context, b BreakInterval) (BreakInterval, error)
	CloseBreak(ctx context.Context, b BreakInterval) error

	AddCorrection(ctx context.Context, c CorrectionRequest) (CorrectionRequest, error)
	GetCorrection(ctx context.Context, id string) (CorrectionRequest, error)
	ListCorrections(ctx context.Context, attendanceID string) ([]CorrectionRequest, error)
	ListPendingCorrections(ctx context.Context) ([]CorrectionRequest, error)
	// CountPendingCorrections counts unresolved requests against one record.
	CountPendingCorrections(ctx context.Context, attendanceID string) (int, error)
	UpdateCorrection(ctx context.Context, c CorrectionRequest) error

	// MarkAbsent inserts absent rows for the given user/date pairs that
	// have no record yet. Used by the end-of-day sweep.
	MarkAbsent(ctx context.Context, userIDs []string, workDate string) (int64, error)
}
