package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes absent records for yesterday for every active
// employee who was scheduled to work and never checked in. The insert is
// conflict-free, so a rerun in the same window is a no-op.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run shortly after midnight (01:00-01:59 UTC)
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	workDate := yesterday.Format("2006-01-02")
	weekday := strings.ToLower(yesterday.Weekday().String())

	slog.Info("Cron: Starting mark-absent job", "work_date", workDate)

	scheduled, err := j.collectScheduledIDs(ctx, weekday)
	if err != nil {
		return err
	}
	if len(scheduled) == 0 {
		slog.Info("Cron: No scheduled employees for weekday", "weekday", weekday)
		return nil
	}

	marked, err := j.attendanceRepo.MarkAbsent(ctx, scheduled, workDate)
	if err != nil {
		return fmt.Errorf("failed to mark absentees: %w", err)
	}

	slog.Info("Cron: Mark-absent job completed", "work_date", workDate, "marked", marked)
	return nil
}

func (j *AttendanceJobs) collectScheduledIDs(ctx context.Context, weekday string) ([]string, error) {
	status := string(user.StatusActive)
	var ids []string

	for page := 1; ; page++ {
		users, total, err := j.userRepo.List(ctx, user.EmployeeFilter{
			Status: &status,
			Page:   page,
			Limit:  100,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}

		for i := range users {
			if users[i].ScheduledOn(weekday) {
				ids = append(ids, users[i].ID)
			}
		}

		if int64(page*100) >= total || len(users) == 0 {
			break
		}
	}

	return ids, nil
}
