package user

import "context"

// UserRepository defines data access methods for directory accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail matches case-insensitively; email uniqueness is enforced
	// the same way.
	GetByEmail(ctx context.Context, email string) (User, error)

	List(ctx context.Context, filter EmployeeFilter) ([]User, int64, error)

	Update(ctx context.Context, u User) error

	// Delete removes the account; attendance rows cascade at the schema
	// level. Callers are responsible for the last-admin guard.
	Delete(ctx context.Context, id string) error

	// CountActiveAdmins backs the last-admin invariant.
	CountActiveAdmins(ctx context.Context) (int, error)

	// GetSubordinateIDs returns ids of accounts whose manager is userID.
	GetSubordinateIDs(ctx context.Context, userID string) ([]string, error)

	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
