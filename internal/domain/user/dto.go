package user

import (
	"strings"

	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DIRECTORY DTOs
// ========================================

type CreateEmployeeRequest struct {
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Password   string        `json:"password"`
	Role       string        `json:"role"`
	Department string        `json:"department"`
	JoinDate   string        `json:"join_date"`
	Schedule   *WorkSchedule `json:"schedule"`
	ManagerID  *string       `json:"manager_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, hr, employee",
		})
	}

	if r.JoinDate != "" {
		if _, ok := validator.IsValidDate(r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Schedule != nil {
		errs = append(errs, validateSchedule(r.Schedule)...)
	}

	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name       *string       `json:"name"`
	Role       *string       `json:"role"`
	Status     *string       `json:"status"`
	Department *string       `json:"department"`
	Schedule   *WorkSchedule `json:"schedule"`
	ManagerID  *string       `json:"manager_id"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, hr, employee",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of active, inactive",
		})
	}
	if r.Schedule != nil {
		errs = append(errs, validateSchedule(r.Schedule)...)
	}
	if r.ManagerID != nil && *r.ManagerID != "" && !validator.IsValidUUID(*r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest is the restricted field set an account may change on
// itself.
type UpdateProfileRequest struct {
	Name     *string       `json:"name"`
	Schedule *WorkSchedule `json:"schedule"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Schedule != nil {
		errs = append(errs, validateSchedule(r.Schedule)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSchedule(s *WorkSchedule) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(s.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule.start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !validator.IsValidTimeOfDay(s.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule.end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	for _, day := range s.Days {
		if !validator.IsValidWeekday(day) {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule.days",
				Message: "days must contain valid weekday names",
			})
			break
		}
	}
	return errs
}

type EmployeeFilter struct {
	Department *string
	Role       *string
	Status     *string
	Search     *string
	Page       int
	Limit      int
}

// ========================================
// RESPONSES
// ========================================

// UserResponse is the serializable view of a User. The password hash never
// leaves the domain.
type UserResponse struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Role           string       `json:"role"`
	Status         string       `json:"status"`
	Department     string       `json:"department"`
	JoinDate       string       `json:"join_date"`
	Schedule       WorkSchedule `json:"schedule"`
	ManagerID      *string      `json:"manager_id,omitempty"`
	SubordinateIDs []string     `json:"subordinate_ids,omitempty"`
	Permissions    []string     `json:"permissions,omitempty"`
	CreatedAt      string       `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          strings.ToLower(u.Email),
		Role:           string(u.Role),
		Status:         string(u.Status),
		Department:     u.Department,
		JoinDate:       u.JoinDate.Format("2006-01-02"),
		Schedule:       u.Schedule,
		ManagerID:      u.ManagerID,
		SubordinateIDs: u.SubordinateIDs,
		Permissions:    u.Permissions,
		CreatedAt:      u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
