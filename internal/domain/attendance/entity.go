package attendance

import "time"

// Day status values, derived from the check-in hour (see service derive.go).
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
	StatusAbsent  = "absent"
)

// Break categories.
const (
	BreakLunch    = "lunch"
	BreakCoffee   = "coffee"
	BreakRest     = "rest"
	BreakPersonal = "personal"
	BreakOther    = "other"
)

// Mood self-report values.
var MoodValues = []string{"happy", "good", "neutral", "tired", "stressed"}

// Location is a GPS snapshot taken at check-in/out or break start.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

// DeviceSnapshot captures the client environment at check-in.
type DeviceSnapshot struct {
	Device       *string `json:"device,omitempty"`
	Network      *string `json:"network,omitempty"`
	IPAddress    *string `json:"ip_address,omitempty"`
	BatteryLevel *int    `json:"battery_level,omitempty"`
	Remote       *bool   `json:"remote,omitempty"`
}

// HealthReport is the optional health self-report attached to a day.
type HealthReport struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Symptoms    []string `json:"symptoms,omitempty"`
}

// Productivity is the self-reported productivity sub-record. Updates merge
// shallowly: non-nil incoming fields override, the rest keep their value.
type Productivity struct {
	Score          *int    `json:"score,omitempty"`
	TasksCompleted *int    `json:"tasks_completed,omitempty"`
	SelfAssessment *string `json:"self_assessment,omitempty"`
}

// Merge applies non-nil fields of in over p and returns the result.
func (p Productivity) Merge(in Productivity) Productivity {
	if in.Score != nil {
		p.Score = in.Score
	}
	if in.TasksCompleted != nil {
		p.TasksCompleted = in.TasksCompleted
	}
	if in.SelfAssessment != nil {
		p.SelfAssessment = in.SelfAssessment
	}
	return p
}

// BreakInterval is one non-working span inside a day. At most one interval
// per day may have a nil EndAt.
type BreakInterval struct {
	ID              string
	AttendanceID    string
	Seq             int
	Category        string
	StartAt         time.Time
	EndAt           *time.Time
	DurationMinutes *int
	Note            *string
	Location        *Location
}

// Open reports whether the break has not been ended yet.
func (b BreakInterval) Open() bool {
	return b.EndAt == nil
}

// CorrectionRequest is an append-only proposal to change a past day's field.
// Submitting one never mutates the target field; an admin/hr approval does.
type CorrectionRequest struct {
	ID           string
	AttendanceID string
	Field        string
	OldValue     *string
	NewValue     string
	Reason       string
	RequestedBy  string
	Status       string // pending, approved, rejected
	CreatedAt    time.Time
	ResolvedBy   *string
	ResolvedAt   *time.Time
}

// AttendanceDay is the single attendance record for one account on one
// calendar date. WorkDate is the YYYY-MM-DD key; (UserID, WorkDate) is unique.
//
// WorkingMinutes is the gross span floor((CheckOut-CheckIn)/minute);
// BreakMinutes is the sum of closed break durations; net working time is
// always WorkingMinutes-BreakMinutes, and OvertimeMinutes is the net time
// beyond eight hours.
type AttendanceDay struct {
	ID               string
	UserID           string
	WorkDate         string
	CheckIn          *time.Time
	CheckOut         *time.Time
	Status           string
	WorkingMinutes   int
	BreakMinutes     int
	OvertimeMinutes  int
	CheckInLocation  *Location
	CheckOutLocation *Location
	Device           *DeviceSnapshot
	Health           *HealthReport
	Mood             *string
	Productivity     *Productivity
	ApprovalRequired bool
	ApprovalReason   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Breaks []BreakInterval

	// DTO / Join
	UserName   *string
	Department *string
}

// OpenBreak returns the currently open break interval, or nil.
func (d *AttendanceDay) OpenBreak() *BreakInterval {
	for i := range d.Breaks {
		if d.Breaks[i].Open() {
			return &d.Breaks[i]
		}
	}
	return nil
}
