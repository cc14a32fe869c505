package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
}

func NewAttendanceService(db *database.DB, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
	}
}

func actorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	return user.Actor{UserID: userID, Role: user.Role(role)}, nil
}

func workDateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	now := time.Now().UTC()
	if req.Type == attendance.MarkTypeCheckIn {
		return s.checkIn(ctx, actor.UserID, now, req)
	}
	return s.checkOut(ctx, actor.UserID, now, req)
}

func (s *AttendanceServiceImpl) checkIn(ctx context.Context, userID string, now time.Time, req attendance.MarkRequest) (attendance.DayResponse, error) {
	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, workDateOf(now))
	if err != nil {
		return attendance.DayResponse{}, err
	}
	if existing != nil {
		return attendance.DayResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := DeriveStatus(now)
	day := attendance.AttendanceDay{
		UserID:          userID,
		WorkDate:        workDateOf(now),
		CheckIn:         &now,
		Status:          status,
		CheckInLocation: req.Location,
		Device:          req.Device,
		Health:          req.Health,
		Mood:            req.Mood,
		Productivity:    req.Productivity,
	}
	if status == attendance.StatusHalfDay {
		reason := "checked in after 14:00"
		day.ApprovalRequired = true
		day.ApprovalReason = &reason
	}

	// The unique (user, work date) constraint settles concurrent check-ins;
	// a loser surfaces as ErrAlreadyCheckedIn from the repository.
	created, err := s.AttendanceRepository.Create(ctx, day)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return attendance.ToDayResponse(created), nil
}

func (s *AttendanceServiceImpl) checkOut(ctx context.Context, userID string, now time.Time, req attendance.MarkRequest) (attendance.DayResponse, error) {
	var out attendance.AttendanceDay

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		day, err := s.AttendanceRepository.GetByUserAndDate(txCtx, userID, workDateOf(now))
		if err != nil {
			return err
		}
		if day == nil || day.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if day.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		// An open break ends implicitly at check-out.
		if open := day.OpenBreak(); open != nil {
			duration := BreakMinutes(open.StartAt, now)
			open.EndAt = &now
			open.DurationMinutes = &duration
			if err := s.AttendanceRepository.CloseBreak(txCtx, *open); err != nil {
				return err
			}
		}

		day.CheckOut = &now
		day.CheckOutLocation = req.Location
		if req.Mood != nil {
			day.Mood = req.Mood
		}
		if req.Health != nil {
			day.Health = req.Health
		}
		if req.Productivity != nil {
			if day.Productivity == nil {
				day.Productivity = req.Productivity
			} else {
				merged := day.Productivity.Merge(*req.Productivity)
				day.Productivity = &merged
			}
		}

		day.WorkingMinutes = GrossWorkingMinutes(*day.CheckIn, now)
		day.BreakMinutes = SumClosedBreaks(day.Breaks)
		day.OvertimeMinutes = OvertimeMinutes(day.WorkingMinutes, day.BreakMinutes)

		if err := s.AttendanceRepository.Update(txCtx, *day); err != nil {
			return err
		}

		out = *day
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return attendance.ToDayResponse(out), nil
}

// Break implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Break(ctx context.Context, req attendance.BreakRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	now := time.Now().UTC()
	var out attendance.AttendanceDay

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		day, err := s.AttendanceRepository.GetByUserAndDate(txCtx, actor.UserID, workDateOf(now))
		if err != nil {
			return err
		}
		if day == nil || day.CheckIn == nil {
			return attendance.ErrMustCheckInFirst
		}
		if day.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		open := day.OpenBreak()

		if req.Action == attendance.BreakActionStart {
			if open != nil {
				return attendance.ErrBreakAlreadyOpen
			}
			b := attendance.BreakInterval{
				AttendanceID: day.ID,
				Category:     req.Category,
				StartAt:      now,
				Note:         req.Note,
				Location:     req.Location,
			}
			created, err := s.AttendanceRepository.AddBreak(txCtx, b)
			if err != nil {
				return err
			}
			day.Breaks = append(day.Breaks, created)
		} else {
			if open == nil {
				return attendance.ErrNoOpenBreak
			}
			duration := BreakMinutes(open.StartAt, now)
			open.EndAt = &now
			open.DurationMinutes = &duration
			if err := s.AttendanceRepository.CloseBreak(txCtx, *open); err != nil {
				return err
			}

			day.BreakMinutes = SumClosedBreaks(day.Breaks)
			if err := s.AttendanceRepository.Update(txCtx, *day); err != nil {
				return err
			}
		}

		out = *day
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return attendance.ToDayResponse(out), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (*attendance.DayResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	day, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.UserID, workDateOf(time.Now()))
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}

	resp := attendance.ToDayResponse(*day)

	corrections, err := s.AttendanceRepository.ListCorrections(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range corrections {
		resp.Corrections = append(resp.Corrections, attendance.ToCorrectionResponse(c))
	}

	return &resp, nil
}

// CurrentBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CurrentBreak(ctx context.Context) (attendance.CurrentBreakResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.CurrentBreakResponse{}, err
	}

	day, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.UserID, workDateOf(time.Now()))
	if err != nil {
		return attendance.CurrentBreakResponse{}, err
	}
	if day == nil {
		return attendance.CurrentBreakResponse{}, nil
	}

	open := day.OpenBreak()
	if open == nil {
		return attendance.CurrentBreakResponse{}, nil
	}

	br := attendance.ToBreakResponse(*open)
	return attendance.CurrentBreakResponse{OnBreak: true, Break: &br}, nil
}

func (s *AttendanceServiceImpl) authorizeView(actor user.Actor, userID string) error {
	relation := user.RelationNone
	if actor.UserID == userID {
		relation = user.RelationSelf
	}
	if !user.Allows(actor, user.PermissionAttendanceViewAll, relation, user.RelationSelf) {
		return attendance.ErrUnauthorized
	}
	return nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.DayResponse, int64, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if userID == "" {
		userID = actor.UserID
	}
	if err := s.authorizeView(actor, userID); err != nil {
		return nil, 0, err
	}

	days, total, err := s.AttendanceRepository.History(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]attendance.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, attendance.ToDayResponse(d))
	}

	return out, total, nil
}

// MonthlyStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlyStats(ctx context.Context, userID string, year int, month int) (attendance.MonthlyStats, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.MonthlyStats{}, err
	}
	if userID == "" {
		userID = actor.UserID
	}
	if err := s.authorizeView(actor, userID); err != nil {
		return attendance.MonthlyStats{}, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days, err := s.AttendanceRepository.ListRange(ctx, userID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return attendance.MonthlyStats{}, err
	}

	stats := attendance.MonthlyStats{
		Month:          month,
		Year:           year,
		StatusCounts:   make(map[string]int),
		WeekdayPattern: make(map[string]int),
	}

	breakCategories := make(map[string]int)
	for _, d := range days {
		stats.StatusCounts[d.Status]++
		stats.TotalWorkingMins += d.WorkingMinutes
		stats.TotalBreakMins += d.BreakMinutes
		stats.TotalOvertimeMins += d.OvertimeMinutes

		if d.Status != attendance.StatusAbsent {
			if date, err := time.Parse("2006-01-02", d.WorkDate); err == nil {
				stats.WeekdayPattern[strings.ToLower(date.Weekday().String())]++
			}
		}
		for _, b := range d.Breaks {
			breakCategories[b.Category]++
		}
	}

	top := ""
	for category, count := range breakCategories {
		if top == "" || count > breakCategories[top] {
			top = category
		}
	}
	if top != "" {
		stats.TopBreakCategory = &top
	}

	return stats, nil
}

// Analytics implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Analytics(ctx context.Context, userID string, days int) (attendance.Analytics, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.Analytics{}, err
	}
	if userID == "" {
		userID = actor.UserID
	}
	if err := s.authorizeView(actor, userID); err != nil {
		return attendance.Analytics{}, err
	}
	if days < 1 || days > 365 {
		days = 30
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days+1)

	records, err := s.AttendanceRepository.ListRange(ctx, userID, from.Format("2006-01-02"), now.Format("2006-01-02"))
	if err != nil {
		return attendance.Analytics{}, err
	}

	analytics := attendance.Analytics{
		Days:              days,
		MoodDistribution:  make(map[string]int),
		CheckInHourCounts: make(map[int]int),
		BreakCategoryHist: make(map[string]int),
		SymptomFrequency:  make(map[string]int),
	}

	scoreSum, scoreCount := 0, 0
	for _, d := range records {
		if d.Mood != nil {
			analytics.MoodDistribution[*d.Mood]++
		}
		if d.CheckIn != nil {
			analytics.CheckInHourCounts[d.CheckIn.Hour()]++
		}
		for _, b := range d.Breaks {
			analytics.BreakCategoryHist[b.Category]++
		}
		if d.Device != nil && d.Device.Remote != nil {
			if *d.Device.Remote {
				analytics.RemoteDays++
			} else {
				analytics.OfficeDays++
			}
		}
		if d.Health != nil {
			for _, symptom := range d.Health.Symptoms {
				analytics.SymptomFrequency[symptom]++
			}
		}
		if d.Status != attendance.StatusAbsent {
			analytics.PunctualityTrend = append(analytics.PunctualityTrend, attendance.DayTrend{
				Date:   d.WorkDate,
				OnTime: d.Status == attendance.StatusPresent,
				Status: d.Status,
			})
		}
		if d.Productivity != nil && d.Productivity.Score != nil {
			scoreSum += *d.Productivity.Score
			scoreCount++
		}
		analytics.TotalWorkingMins += d.WorkingMinutes
	}

	if scoreCount > 0 {
		analytics.AvgProductivity = float64(scoreSum) / float64(scoreCount)
	}

	// The trend chart shows the last working week only.
	if len(analytics.PunctualityTrend) > 7 {
		analytics.PunctualityTrend = analytics.PunctualityTrend[len(analytics.PunctualityTrend)-7:]
	}

	return analytics, nil
}

// UpdateProductivity implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateProductivity(ctx context.Context, req attendance.ProductivityRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	day, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.UserID, workDateOf(time.Now()))
	if err != nil {
		return attendance.DayResponse{}, err
	}
	if day == nil {
		return attendance.DayResponse{}, attendance.ErrNotCheckedIn
	}

	incoming := attendance.Productivity{
		Score:          req.Score,
		TasksCompleted: req.TasksCompleted,
		SelfAssessment: req.SelfAssessment,
	}
	if day.Productivity == nil {
		day.Productivity = &incoming
	} else {
		merged := day.Productivity.Merge(incoming)
		day.Productivity = &merged
	}

	if err := s.AttendanceRepository.Update(ctx, *day); err != nil {
		return attendance.DayResponse{}, err
	}

	return attendance.ToDayResponse(*day), nil
}

// SubmitCorrection implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SubmitCorrection(ctx context.Context, req attendance.CorrectionInput) (attendance.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CorrectionResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}

	date := req.Date
	if date == "" {
		date = workDateOf(time.Now())
	}

	day, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.UserID, date)
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}
	if day == nil {
		return attendance.CorrectionResponse{}, attendance.ErrAttendanceNotFound
	}

	correction := attendance.CorrectionRequest{
		AttendanceID: day.ID,
		Field:        req.Field,
		OldValue:     snapshotField(*day, req.Field),
		NewValue:     req.NewValue,
		Reason:       req.Reason,
		RequestedBy:  actor.UserID,
	}

	var created attendance.CorrectionRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.AttendanceRepository.AddCorrection(txCtx, correction)
		if err != nil {
			return err
		}

		// The record carries the hold so supervisors see it in history
		// without opening the correction queue.
		reason := "pending correction: " + req.Field
		day.ApprovalRequired = true
		day.ApprovalReason = &reason
		return s.AttendanceRepository.Update(txCtx, *day)
	})
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}

	return attendance.ToCorrectionResponse(created), nil
}

func snapshotField(day attendance.AttendanceDay, field string) *string {
	var value string
	switch field {
	case "check_in":
		if day.CheckIn == nil {
			return nil
		}
		value = day.CheckIn.Format(time.RFC3339)
	case "check_out":
		if day.CheckOut == nil {
			return nil
		}
		value = day.CheckOut.Format(time.RFC3339)
	case "status":
		value = day.Status
	default:
		return nil
	}
	return &value
}

// ListPendingCorrections implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPendingCorrections(ctx context.Context) ([]attendance.CorrectionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Allows(actor, user.PermissionAttendanceCorrect, user.RelationNone) {
		return nil, user.ErrStaffAccessRequired
	}

	corrections, err := s.AttendanceRepository.ListPendingCorrections(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		out = append(out, attendance.ToCorrectionResponse(c))
	}

	return out, nil
}

// ResolveCorrection implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ResolveCorrection(ctx context.Context, correctionID string, approve bool) (attendance.CorrectionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}
	if !user.Allows(actor, user.PermissionAttendanceCorrect, user.RelationNone) {
		return attendance.CorrectionResponse{}, user.ErrStaffAccessRequired
	}

	var resolved attendance.CorrectionRequest

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		correction, err := s.AttendanceRepository.GetCorrection(txCtx, correctionID)
		if err != nil {
			return err
		}
		if correction.Status != "pending" {
			return attendance.ErrCorrectionAlreadyProcessed
		}

		now := time.Now().UTC()
		correction.ResolvedBy = &actor.UserID
		correction.ResolvedAt = &now
		if approve {
			correction.Status = "approved"
		} else {
			correction.Status = "rejected"
		}

		if err := s.AttendanceRepository.UpdateCorrection(txCtx, correction); err != nil {
			return err
		}

		day, err := s.AttendanceRepository.GetByID(txCtx, correction.AttendanceID)
		if err != nil {
			return err
		}
		if approve {
			if err := applyCorrection(&day, correction); err != nil {
				return err
			}
			if day.CheckIn != nil && day.CheckOut != nil {
				day.WorkingMinutes = GrossWorkingMinutes(*day.CheckIn, *day.CheckOut)
				day.BreakMinutes = SumClosedBreaks(day.Breaks)
				day.OvertimeMinutes = OvertimeMinutes(day.WorkingMinutes, day.BreakMinutes)
			}
		}

		// Resolving the last pending correction releases the hold.
		remaining, err := s.AttendanceRepository.CountPendingCorrections(txCtx, correction.AttendanceID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			day.ApprovalRequired = false
			day.ApprovalReason = nil
		}

		if err := s.AttendanceRepository.Update(txCtx, day); err != nil {
			return err
		}

		resolved = correction
		return nil
	})
	if err != nil {
		return attendance.CorrectionResponse{}, err
	}

	return attendance.ToCorrectionResponse(resolved), nil
}

func applyCorrection(day *attendance.AttendanceDay, c attendance.CorrectionRequest) error {
	switch c.Field {
	case "check_in", "check_out":
		t, err := parseCorrectionTime(c.NewValue, day.WorkDate)
		if err != nil {
			return err
		}
		if c.Field == "check_in" {
			day.CheckIn = &t
			day.Status = DeriveStatus(t)
		} else {
			day.CheckOut = &t
		}
		if day.CheckIn != nil && day.CheckOut != nil && !day.CheckOut.After(*day.CheckIn) {
			return attendance.ErrCorrectionOutOfOrder
		}
	case "status":
		day.Status = c.NewValue
	}
	return nil
}

// parseCorrectionTime accepts RFC3339 or a bare HH:MM resolved against the
// record's work date.
func parseCorrectionTime(value string, workDate string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04", workDate+" "+value)
	if err != nil {
		return time.Time{}, fmt.Errorf("correction value %q is not a valid timestamp", value)
	}
	return t.UTC(), nil
}
