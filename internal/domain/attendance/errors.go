package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out state machine
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Breaks
	ErrMustCheckInFirst = errors.New("you must check in before starting a break")
	ErrBreakAlreadyOpen = errors.New("a break is already in progress")
	ErrNoOpenBreak      = errors.New("no break is currently in progress")

	// Corrections
	ErrCorrectionNotFound         = errors.New("correction request not found")
	ErrCorrectionAlreadyProcessed = errors.New("correction request has already been approved or rejected")
	ErrCorrectionOutOfOrder       = errors.New("corrected check-out must be after check-in")

	// General
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
