package user

import "context"

type EmployeeService interface {
	// CreateEmployee adds a directory account. Requires employee.manage.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (UserResponse, error)

	// ListEmployees requires employee.view_all.
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]UserResponse, int64, error)

	// GetEmployee returns one account. Staff may fetch anyone; everyone may
	// fetch themselves.
	GetEmployee(ctx context.Context, id string) (UserResponse, error)

	// UpdateEmployee applies a staff edit. Demoting or deactivating the last
	// active admin is rejected.
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error)

	// DeleteEmployee removes the account and, through schema cascades, its
	// attendance history. Requires employee.delete; the last active admin
	// cannot be deleted.
	DeleteEmployee(ctx context.Context, id string) error

	// UpdateProfile applies the self-service field set to the caller.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
}
