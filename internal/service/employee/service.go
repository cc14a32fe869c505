package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db *database.DB
	user.UserRepository
}

func NewEmployeeService(db *database.DB, userRepo user.UserRepository) user.EmployeeService {
	return &EmployeeServiceImpl{
		db:             db,
		UserRepository: userRepo,
	}
}

func actorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	return user.Actor{UserID: userID, Role: user.Role(role)}, nil
}

// CreateEmployee implements user.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req user.CreateEmployeeRequest) (user.UserResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !user.Allows(actor, user.PermissionEmployeeManage, user.RelationNone) {
		return user.UserResponse{}, user.ErrStaffAccessRequired
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}
	// Only a full admin may mint another admin.
	if role == user.RoleAdmin && actor.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	joinDate := time.Now().UTC()
	if req.JoinDate != "" {
		joinDate, _ = time.Parse("2006-01-02", req.JoinDate)
	}

	schedule := user.DefaultSchedule()
	if req.Schedule != nil {
		schedule = *req.Schedule
	}

	if req.ManagerID != nil {
		if _, err := s.UserRepository.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return user.UserResponse{}, user.ErrManagerNotFound
			}
			return user.UserResponse{}, err
		}
	}

	u := user.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: &hashStr,
		Role:         role,
		Status:       user.StatusActive,
		Department:   req.Department,
		JoinDate:     joinDate,
		Schedule:     schedule,
		ManagerID:    req.ManagerID,
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// ListEmployees implements user.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter user.EmployeeFilter) ([]user.UserResponse, int64, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !user.Allows(actor, user.PermissionEmployeeViewAll, user.RelationNone) {
		return nil, 0, user.ErrStaffAccessRequired
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}

	return out, total, nil
}

// GetEmployee implements user.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (user.UserResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	relation := user.RelationNone
	if actor.UserID == id {
		relation = user.RelationSelf
	}
	if !user.Allows(actor, user.PermissionEmployeeViewAll, relation, user.RelationSelf) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	subordinates, err := s.UserRepository.GetSubordinateIDs(ctx, u.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	u.SubordinateIDs = subordinates

	return user.ToResponse(u), nil
}

// UpdateEmployee implements user.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req user.UpdateEmployeeRequest) (user.UserResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !user.Allows(actor, user.PermissionEmployeeManage, user.RelationNone) {
		return user.UserResponse{}, user.ErrStaffAccessRequired
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	// Role and status edits that would leave the directory without an
	// active admin are rejected.
	demotingAdmin := u.Role == user.RoleAdmin &&
		((req.Role != nil && user.Role(*req.Role) != user.RoleAdmin) ||
			(req.Status != nil && user.Status(*req.Status) != user.StatusActive))
	if demotingAdmin {
		admins, err := s.UserRepository.CountActiveAdmins(ctx)
		if err != nil {
			return user.UserResponse{}, err
		}
		if admins <= 1 {
			return user.UserResponse{}, user.ErrLastAdmin
		}
	}
	if req.Role != nil && user.Role(*req.Role) == user.RoleAdmin && actor.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Status != nil {
		u.Status = user.Status(*req.Status)
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.Schedule != nil {
		u.Schedule = *req.Schedule
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
		} else {
			if _, err := s.UserRepository.GetByID(ctx, *req.ManagerID); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					return user.UserResponse{}, user.ErrManagerNotFound
				}
				return user.UserResponse{}, err
			}
			u.ManagerID = req.ManagerID
		}
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

// DeleteEmployee implements user.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.Allows(actor, user.PermissionEmployeeDelete, user.RelationNone) {
		return user.ErrAdminPrivilegeRequired
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if u.Role == user.RoleAdmin {
			admins, err := s.UserRepository.CountActiveAdmins(txCtx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return user.ErrLastAdmin
			}
		}

		// Subordinates lose their manager reference rather than cascading.
		subordinates, err := s.UserRepository.GetSubordinateIDs(txCtx, id)
		if err != nil {
			return err
		}
		for _, subID := range subordinates {
			sub, err := s.UserRepository.GetByID(txCtx, subID)
			if err != nil {
				return err
			}
			sub.ManagerID = nil
			if err := s.UserRepository.Update(txCtx, sub); err != nil {
				return err
			}
		}

		return s.UserRepository.Delete(txCtx, id)
	})
}

// UpdateProfile implements user.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, actor.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Schedule != nil {
		u.Schedule = *req.Schedule
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}
