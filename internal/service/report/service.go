package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/report"
	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	report.ReportRepository
	attendanceRepo attendance.AttendanceRepository
	taskRepo       task.TaskRepository
	userRepo       user.UserRepository
}

func NewReportService(
	reportRepo report.ReportRepository,
	attendanceRepo attendance.AttendanceRepository,
	taskRepo task.TaskRepository,
	userRepo user.UserRepository,
) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		attendanceRepo:   attendanceRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
	}
}

func requireReportsView(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return fmt.Errorf("role claim is missing or invalid")
	}
	if !user.HasPermission(user.Role(role), user.PermissionReportsView) {
		return user.ErrStaffAccessRequired
	}
	return nil
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context) (report.DashboardOverview, error) {
	if err := requireReportsView(ctx); err != nil {
		return report.DashboardOverview{}, err
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	totalEmployees, err := s.ReportRepository.CountEmployees(ctx)
	if err != nil {
		return report.DashboardOverview{}, err
	}
	totalTasks, err := s.ReportRepository.CountTasks(ctx)
	if err != nil {
		return report.DashboardOverview{}, err
	}
	taskCounts, err := s.ReportRepository.TaskStatusCounts(ctx)
	if err != nil {
		return report.DashboardOverview{}, err
	}
	departmentCounts, err := s.ReportRepository.DepartmentHeadcounts(ctx)
	if err != nil {
		return report.DashboardOverview{}, err
	}
	snapshot, err := s.ReportRepository.TodaySnapshot(ctx, today)
	if err != nil {
		return report.DashboardOverview{}, err
	}

	weekAgo := now.AddDate(0, 0, -6).Format("2006-01-02")
	weekly, err := s.ReportRepository.DailyHeadcounts(ctx, weekAgo, today)
	if err != nil {
		return report.DashboardOverview{}, err
	}

	return report.DashboardOverview{
		TotalEmployees:     totalEmployees,
		TotalTasks:         totalTasks,
		TodayAttendance:    snapshot.TotalRecords,
		CurrentlyCheckedIn: snapshot.CheckedIn,
		TaskStatusCounts:   taskCounts,
		DepartmentCounts:   departmentCounts,
		TodaySummary:       snapshot.Summary,
		WeeklyAttendance:   weekly,
	}, nil
}

// EmployeeDetail implements report.ReportService.
func (s *ReportServiceImpl) EmployeeDetail(ctx context.Context, employeeID string, req report.RangeRequest) (report.EmployeeDetail, error) {
	if err := requireReportsView(ctx); err != nil {
		return report.EmployeeDetail{}, err
	}
	if err := req.Validate(); err != nil {
		return report.EmployeeDetail{}, err
	}

	u, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.EmployeeDetail{}, err
	}

	attendanceSum, err := s.ReportRepository.AttendanceSummary(ctx, employeeID, req.StartDate, req.EndDate)
	if err != nil {
		return report.EmployeeDetail{}, err
	}
	taskSum, err := s.ReportRepository.TaskSummary(ctx, employeeID)
	if err != nil {
		return report.EmployeeDetail{}, err
	}
	trend, err := s.ReportRepository.WeeklyTrend(ctx, employeeID, 8)
	if err != nil {
		return report.EmployeeDetail{}, err
	}

	recentDays, _, err := s.attendanceRepo.History(ctx, employeeID, attendance.HistoryFilter{Limit: 7})
	if err != nil {
		return report.EmployeeDetail{}, err
	}
	dayResponses := make([]attendance.DayResponse, 0, len(recentDays))
	for _, d := range recentDays {
		dayResponses = append(dayResponses, attendance.ToDayResponse(d))
	}

	recentTasks, _, err := s.taskRepo.List(ctx, task.Filter{AssigneeID: &employeeID, Limit: 5})
	if err != nil {
		return report.EmployeeDetail{}, err
	}
	taskResponses := make([]task.TaskResponse, 0, len(recentTasks))
	for _, t := range recentTasks {
		taskResponses = append(taskResponses, task.ToResponse(t))
	}

	return report.EmployeeDetail{
		EmployeeID:   u.ID,
		EmployeeName: u.Name,
		Department:   u.Department,
		Attendance:   attendanceSum,
		Tasks:        taskSum,
		WeeklyTrend:  trend,
		RecentDays:   dayResponses,
		RecentTasks:  taskResponses,
	}, nil
}

// AttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, req report.RangeRequest) (report.AttendanceReport, error) {
	if err := requireReportsView(ctx); err != nil {
		return report.AttendanceReport{}, err
	}
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	out := report.AttendanceReport{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Mode:      "summary",
	}

	if req.Detailed {
		out.Mode = "detailed"
		days, err := s.attendanceRepo.ListAllRange(ctx, req.StartDate, req.EndDate, req.Department)
		if err != nil {
			return report.AttendanceReport{}, err
		}
		records := make([]attendance.DayResponse, 0, len(days))
		for _, d := range days {
			records = append(records, attendance.ToDayResponse(d))
		}
		out.Records = records
		return out, nil
	}

	rows, err := s.ReportRepository.AttendanceRows(ctx, req.StartDate, req.EndDate, req.Department)
	if err != nil {
		return report.AttendanceReport{}, err
	}
	out.Rows = rows

	return out, nil
}

// ProductivityReport implements report.ReportService.
func (s *ReportServiceImpl) ProductivityReport(ctx context.Context, req report.RangeRequest) (report.ProductivityReport, error) {
	if err := requireReportsView(ctx); err != nil {
		return report.ProductivityReport{}, err
	}
	if err := req.Validate(); err != nil {
		return report.ProductivityReport{}, err
	}

	departments, err := s.ReportRepository.DepartmentProductivity(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return report.ProductivityReport{}, err
	}
	top, err := s.ReportRepository.TopPerformers(ctx, req.StartDate, req.EndDate, 5)
	if err != nil {
		return report.ProductivityReport{}, err
	}
	daily, err := s.ReportRepository.DailyProductivity(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return report.ProductivityReport{}, err
	}

	return report.ProductivityReport{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Departments:   departments,
		TopPerformers: top,
		DailyTrend:    daily,
	}, nil
}

// RecentActivity implements report.ReportService.
func (s *ReportServiceImpl) RecentActivity(ctx context.Context, limit int) ([]report.Activity, error) {
	if err := requireReportsView(ctx); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	return s.ReportRepository.RecentActivity(ctx, since, limit)
}
