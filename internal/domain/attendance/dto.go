package attendance

import (
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

const (
	MarkTypeCheckIn  = "check-in"
	MarkTypeCheckOut = "check-out"
)

type MarkRequest struct {
	Type         string          `json:"type"`
	Location     *Location       `json:"location"`
	Device       *DeviceSnapshot `json:"device"`
	Health       *HealthReport   `json:"health"`
	Mood         *string         `json:"mood"`
	Productivity *Productivity   `json:"productivity"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{MarkTypeCheckIn, MarkTypeCheckOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be check-in or check-out",
		})
	}
	if r.Location != nil {
		errs = append(errs, validateLocation(*r.Location)...)
	}
	if r.Mood != nil && !validator.IsInSlice(*r.Mood, MoodValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "mood",
			Message: "mood must be one of happy, good, neutral, tired, stressed",
		})
	}
	if r.Productivity != nil && r.Productivity.Score != nil {
		if *r.Productivity.Score < 1 || *r.Productivity.Score > 10 {
			errs = append(errs, validator.ValidationError{
				Field:   "productivity.score",
				Message: "score must be between 1 and 10",
			})
		}
	}
	if r.Health != nil && r.Health.Temperature != nil {
		if *r.Health.Temperature < 30 || *r.Health.Temperature > 45 {
			errs = append(errs, validator.ValidationError{
				Field:   "health.temperature",
				Message: "temperature must be between 30 and 45 degrees celsius",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	BreakActionStart = "start"
	BreakActionEnd   = "end"
)

type BreakRequest struct {
	Action   string    `json:"action"`
	Category string    `json:"category"`
	Note     *string   `json:"note"`
	Location *Location `json:"location"`
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, []string{BreakActionStart, BreakActionEnd}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be start or end",
		})
	}
	if r.Action == BreakActionStart {
		if r.Category == "" {
			r.Category = BreakOther
		}
		if !validator.IsInSlice(r.Category, []string{BreakLunch, BreakCoffee, BreakRest, BreakPersonal, BreakOther}) {
			errs = append(errs, validator.ValidationError{
				Field:   "category",
				Message: "category must be one of lunch, coffee, rest, personal, other",
			})
		}
	}
	if r.Location != nil {
		errs = append(errs, validateLocation(*r.Location)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CorrectionInput struct {
	Field    string  `json:"field"`
	OldValue *string `json:"old_value"`
	NewValue string  `json:"new_value"`
	Reason   string  `json:"reason"`
	Date     string  `json:"date"`
}

var correctableFields = []string{"check_in", "check_out", "status"}

func (r *CorrectionInput) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Field, correctableFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "field",
			Message: "field must be one of check_in, check_out, status",
		})
	}
	if validator.IsEmpty(r.NewValue) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_value",
			Message: "new_value is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProductivityRequest struct {
	Score          *int    `json:"score"`
	TasksCompleted *int    `json:"tasks_completed"`
	SelfAssessment *string `json:"self_assessment"`
}

func (r *ProductivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Score != nil && (*r.Score < 1 || *r.Score > 10) {
		errs = append(errs, validator.ValidationError{
			Field:   "score",
			Message: "score must be between 1 and 10",
		})
	}
	if r.TasksCompleted != nil && *r.TasksCompleted < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tasks_completed",
			Message: "tasks_completed must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func validateLocation(l Location) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if l.Latitude < -90 || l.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID              string    `json:"id"`
	Seq             int       `json:"seq"`
	Category        string    `json:"category"`
	StartAt         string    `json:"start_at"`
	EndAt           *string   `json:"end_at,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Note            *string   `json:"note,omitempty"`
	Location        *Location `json:"location,omitempty"`
}

type CorrectionResponse struct {
	ID          string  `json:"id"`
	Field       string  `json:"field"`
	OldValue    *string `json:"old_value,omitempty"`
	NewValue    string  `json:"new_value"`
	Reason      string  `json:"reason"`
	RequestedBy string  `json:"requested_by"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type DayResponse struct {
	ID               string               `json:"id"`
	UserID           string               `json:"user_id"`
	UserName         *string              `json:"user_name,omitempty"`
	Date             string               `json:"date"`
	CheckIn          *string              `json:"check_in,omitempty"`
	CheckOut         *string              `json:"check_out,omitempty"`
	Status           string               `json:"status"`
	WorkingMinutes   int                  `json:"working_minutes"`
	BreakMinutes     int                  `json:"break_minutes"`
	NetMinutes       int                  `json:"net_minutes"`
	OvertimeMinutes  int                  `json:"overtime_minutes"`
	CheckInLocation  *Location            `json:"check_in_location,omitempty"`
	CheckOutLocation *Location            `json:"check_out_location,omitempty"`
	Device           *DeviceSnapshot      `json:"device,omitempty"`
	Health           *HealthReport        `json:"health,omitempty"`
	Mood             *string              `json:"mood,omitempty"`
	Productivity     *Productivity        `json:"productivity,omitempty"`
	ApprovalRequired bool                 `json:"approval_required"`
	Breaks           []BreakResponse      `json:"breaks"`
	CurrentBreak     *BreakResponse       `json:"current_break,omitempty"`
	Corrections      []CorrectionResponse `json:"corrections,omitempty"`
}

// CurrentBreakResponse reports whether a break is in progress right now.
type CurrentBreakResponse struct {
	OnBreak bool           `json:"on_break"`
	Break   *BreakResponse `json:"break,omitempty"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

func ToBreakResponse(b BreakInterval) BreakResponse {
	return BreakResponse{
		ID:              b.ID,
		Seq:             b.Seq,
		Category:        b.Category,
		StartAt:         b.StartAt.Format("2006-01-02 15:04:05"),
		EndAt:           formatTimePtr(b.EndAt),
		DurationMinutes: b.DurationMinutes,
		Note:            b.Note,
		Location:        b.Location,
	}
}

func ToCorrectionResponse(c CorrectionRequest) CorrectionResponse {
	return CorrectionResponse{
		ID:          c.ID,
		Field:       c.Field,
		OldValue:    c.OldValue,
		NewValue:    c.NewValue,
		Reason:      c.Reason,
		RequestedBy: c.RequestedBy,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToDayResponse(d AttendanceDay) DayResponse {
	breaks := make([]BreakResponse, 0, len(d.Breaks))
	var current *BreakResponse
	for _, b := range d.Breaks {
		br := ToBreakResponse(b)
		if b.EndAt == nil {
			current = &br
		}
		breaks = append(breaks, br)
	}

	net := d.WorkingMinutes - d.BreakMinutes
	if net < 0 {
		net = 0
	}

	return DayResponse{
		ID:               d.ID,
		UserID:           d.UserID,
		UserName:         d.UserName,
		Date:             d.WorkDate,
		CheckIn:          formatTimePtr(d.CheckIn),
		CheckOut:         formatTimePtr(d.CheckOut),
		Status:           d.Status,
		WorkingMinutes:   d.WorkingMinutes,
		BreakMinutes:     d.BreakMinutes,
		NetMinutes:       net,
		OvertimeMinutes:  d.OvertimeMinutes,
		CheckInLocation:  d.CheckInLocation,
		CheckOutLocation: d.CheckOutLocation,
		Device:           d.Device,
		Health:           d.Health,
		Mood:             d.Mood,
		Productivity:     d.Productivity,
		ApprovalRequired: d.ApprovalRequired,
		Breaks:           breaks,
		CurrentBreak:     current,
	}
}

// ========================================
// STATS / ANALYTICS
// ========================================

type MonthlyStats struct {
	Month             int            `json:"month"`
	Year              int            `json:"year"`
	StatusCounts      map[string]int `json:"status_counts"`
	TotalWorkingMins  int            `json:"total_working_minutes"`
	TotalBreakMins    int            `json:"total_break_minutes"`
	TotalOvertimeMins int            `json:"total_overtime_minutes"`
	WeekdayPattern    map[string]int `json:"weekday_pattern"`
	TopBreakCategory  *string        `json:"top_break_category,omitempty"`
}

type Analytics struct {
	Days              int            `json:"days"`
	MoodDistribution  map[string]int `json:"mood_distribution"`
	CheckInHourCounts map[int]int    `json:"check_in_hour_counts"`
	BreakCategoryHist map[string]int `json:"break_category_counts"`
	RemoteDays        int            `json:"remote_days"`
	OfficeDays        int            `json:"office_days"`
	SymptomFrequency  map[string]int `json:"symptom_frequency"`
	PunctualityTrend  []DayTrend     `json:"punctuality_trend"`
	AvgProductivity   float64        `json:"avg_productivity"`
	TotalWorkingMins  int            `json:"total_working_minutes"`
}

type DayTrend struct {
	Date   string `json:"date"`
	OnTime bool   `json:"on_time"`
	Status string `json:"status"`
}
