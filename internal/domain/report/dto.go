package report

import (
	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type RangeRequest struct {
	StartDate  string
	EndDate    string
	Department *string
	Detailed   bool
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// DASHBOARD
// ========================================

type DashboardOverview struct {
	TotalEmployees     int              `json:"total_employees"`
	TotalTasks         int              `json:"total_tasks"`
	TodayAttendance    int              `json:"today_attendance"`
	CurrentlyCheckedIn int              `json:"currently_checked_in"`
	TaskStatusCounts   map[string]int   `json:"task_status_counts"`
	DepartmentCounts   map[string]int   `json:"department_counts"`
	TodaySummary       TodaySummary     `json:"today_summary"`
	WeeklyAttendance   []DailyHeadcount `json:"weekly_attendance"`
}

// TodaySnapshot bundles the per-status counts for one work date with the
// number of people still on the clock.
type TodaySnapshot struct {
	Summary      TodaySummary
	TotalRecords int
	CheckedIn    int
}

type TodaySummary struct {
	Present         int     `json:"present"`
	Late            int     `json:"late"`
	HalfDay         int     `json:"half_day"`
	Absent          int     `json:"absent"`
	AvgProductivity float64 `json:"avg_productivity"`
}

type DailyHeadcount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ========================================
// EMPLOYEE DETAIL
// ========================================

type EmployeeDetail struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Department   string        `json:"department"`
	Attendance   AttendanceSum `json:"attendance"`
	Tasks        TaskSum       `json:"tasks"`
	WeeklyTrend  []WeekPoint   `json:"weekly_trend"`
	RecentDays   interface{}   `json:"recent_attendance"`
	RecentTasks  interface{}   `json:"recent_tasks"`
}

type AttendanceSum struct {
	TotalDays       int `json:"total_days"`
	PresentDays     int `json:"present_days"`
	LateDays        int `json:"late_days"`
	HalfDays        int `json:"half_days"`
	AbsentDays      int `json:"absent_days"`
	EarlyDepartures int `json:"early_departures"`
	TotalMinutes    int `json:"total_working_minutes"`
}

type TaskSum struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Overdue    int `json:"overdue"`
}

type WeekPoint struct {
	WeekStart       string  `json:"week_start"`
	AvgProductivity float64 `json:"avg_productivity"`
	TotalHours      float64 `json:"total_hours"`
}

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReportRow struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Department    string  `json:"department"`
	DaysPresent   int     `json:"days_present"`
	DaysLate      int     `json:"days_late"`
	DaysHalf      int     `json:"days_half"`
	DaysAbsent    int     `json:"days_absent"`
	TotalHours    float64 `json:"total_hours"`
	BreakHours    float64 `json:"break_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type AttendanceReport struct {
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Mode      string                `json:"mode"` // summary or detailed
	Rows      []AttendanceReportRow `json:"rows,omitempty"`
	Records   interface{}           `json:"records,omitempty"`
}

// ========================================
// PRODUCTIVITY REPORT
// ========================================

type DepartmentProductivity struct {
	Department      string  `json:"department"`
	Headcount       int     `json:"headcount"`
	AvgProductivity float64 `json:"avg_productivity"`
}

// TopPerformer is ranked by Score = 10*CompletedTasks + AvgProductivity +
// 0.5*TotalHours.
type TopPerformer struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Department      string  `json:"department"`
	CompletedTasks  int     `json:"completed_tasks"`
	AvgProductivity float64 `json:"avg_productivity"`
	TotalHours      float64 `json:"total_hours"`
	Score           float64 `json:"score"`
}

type ProductivityReport struct {
	StartDate     string                   `json:"start_date"`
	EndDate       string                   `json:"end_date"`
	Departments   []DepartmentProductivity `json:"departments"`
	TopPerformers []TopPerformer           `json:"top_performers"`
	DailyTrend    []DailyProductivity      `json:"daily_trend"`
}

type DailyProductivity struct {
	Date            string  `json:"date"`
	AvgProductivity float64 `json:"avg_productivity"`
}

// ========================================
// ACTIVITY FEED
// ========================================

// Activity is one row of the merged feed: check-ins, check-outs, and task
// completions from the last seven days, newest first.
type Activity struct {
	Type         string `json:"type"` // check-in, check-out, task-completed
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Detail       string `json:"detail"`
	Timestamp    string `json:"timestamp"`
}
