package attendance

import "context"

type AttendanceService interface {
	// Mark processes a check-in or check-out for the authenticated account.
	Mark(ctx context.Context, req MarkRequest) (DayResponse, error)

	// Break starts or ends a break on today's record.
	Break(ctx context.Context, req BreakRequest) (DayResponse, error)

	// Today returns today's record, or nil when there is none yet.
	Today(ctx context.Context) (*DayResponse, error)

	// CurrentBreak reports the break in progress on today's record, if any.
	CurrentBreak(ctx context.Context) (CurrentBreakResponse, error)

	// History lists a user's attendance records. userID may be the caller;
	// viewing someone else requires attendance.view_all.
	History(ctx context.Context, userID string, filter HistoryFilter) ([]DayResponse, int64, error)

	// MonthlyStats aggregates one calendar month.
	MonthlyStats(ctx context.Context, userID string, year int, month int) (MonthlyStats, error)

	// Analytics aggregates the trailing N days of behavioral metrics.
	Analytics(ctx context.Context, userID string, days int) (Analytics, error)

	// UpdateProductivity merges a productivity self-report into today's
	// record.
	UpdateProductivity(ctx context.Context, req ProductivityRequest) (DayResponse, error)

	// SubmitCorrection files a correction request; the record itself is not
	// touched until approval.
	SubmitCorrection(ctx context.Context, req CorrectionInput) (CorrectionResponse, error)

	// ListPendingCorrections requires attendance.approve_correction.
	ListPendingCorrections(ctx context.Context) ([]CorrectionResponse, error)

	// ResolveCorrection approves or rejects a pending request. Approval
	// applies the proposed change to the attendance record atomically.
	ResolveCorrection(ctx context.Context, correctionID string, approve bool) (CorrectionResponse, error)
}
