package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, including employee deletion
	RoleHR       Role = "hr"       // Directory and task management, reporting
	RoleEmployee Role = "employee" // Own attendance and assigned tasks
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// WorkSchedule is the expected working window for an account.
// Days holds lowercase English weekday names.
type WorkSchedule struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Days      []string `json:"days"`
}

// DefaultSchedule is the nine-to-five weekday window assigned to accounts
// created without an explicit schedule.
func DefaultSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime: "09:00",
		EndTime:   "17:00",
		Days:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}
}

// User is the directory record for one account. PasswordHash is never
// serialized into API output; responses go through UserResponse.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  *string
	Role          Role
	Status        Status
	Department    string
	JoinDate      time.Time
	Schedule      WorkSchedule
	ManagerID     *string
	Permissions   []string
	OAuthProvider *string
	OAuthID       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	SubordinateIDs []string
}

// IsAdmin checks if the account has full administrative access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff checks if the account can manage the directory and task board.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

// IsActive checks if the account can authenticate.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ScheduledOn reports whether day (lowercase weekday name) is a working day.
func (u *User) ScheduledOn(day string) bool {
	for _, d := range u.Schedule.Days {
		if d == day {
			return true
		}
	}
	return false
}
