package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrUserInactive            = errors.New("account is inactive")
	ErrLastAdmin               = errors.New("cannot remove the last admin account")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrStaffAccessRequired     = errors.New("admin or hr access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrManagerNotFound         = errors.New("manager not found")
)
