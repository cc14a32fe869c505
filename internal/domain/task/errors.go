package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAccessDenied     = errors.New("you do not have access to this task")
	ErrInvalidDuration  = errors.New("time entry end must be after its start")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrAssigneeNotFound = errors.New("assignee not found")
)
