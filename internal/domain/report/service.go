package report

import "context"

// ReportService backs the admin dashboards. Every method requires
// reports.view.
type ReportService interface {
	Dashboard(ctx context.Context) (DashboardOverview, error)

	EmployeeDetail(ctx context.Context, employeeID string, req RangeRequest) (EmployeeDetail, error)

	AttendanceReport(ctx context.Context, req RangeRequest) (AttendanceReport, error)

	ProductivityReport(ctx context.Context, req RangeRequest) (ProductivityReport, error)

	// RecentActivity returns the merged feed from the last seven days.
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)
}
