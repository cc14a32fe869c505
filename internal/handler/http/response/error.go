package response

import (
	"errors"
	"net/http"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/domain/auth"
	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, err.Error())

	// Directory domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrManagerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrLastAdmin):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrStaffAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrBreakAlreadyOpen),
		errors.Is(err, attendance.ErrCorrectionAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrMustCheckInFirst),
		errors.Is(err, attendance.ErrNoOpenBreak),
		errors.Is(err, attendance.ErrCorrectionOutOfOrder):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrCorrectionNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, task.ErrAssigneeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, task.ErrAccessDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, task.ErrInvalidDuration),
		errors.Is(err, task.ErrInvalidProgress):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
