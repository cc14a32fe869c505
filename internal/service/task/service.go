package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse/workpulse-backend-go/internal/repository/postgresql"
)

type TaskServiceImpl struct {
	db *database.DB
	task.TaskRepository
	userRepo user.UserRepository
}

func NewTaskService(db *database.DB, taskRepo task.TaskRepository, userRepo user.UserRepository) task.TaskService {
	return &TaskServiceImpl{
		db:             db,
		TaskRepository: taskRepo,
		userRepo:       userRepo,
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

func relationTo(actor user.Actor, t task.Task) user.Relation {
	switch actor.UserID {
	case t.AssigneeID:
		return user.RelationAssignee
	case t.AssignerID:
		return user.RelationAssigner
	default:
		return user.RelationNone
	}
}

// canTrackTime reports whether the actor may log hours on t. Time tracking
// is personal: the assignee only, with no role override.
func canTrackTime(actor user.Actor, t task.Task) bool {
	return relationTo(actor, t) == user.RelationAssignee
}

// deriveOverdue demotes an open task past its due date at read time. The
// stored row converges later via the sweep job.
func deriveOverdue(t *task.Task, now time.Time) {
	if t.DueDate == nil {
		return
	}
	if (t.Status == task.StatusPending || t.Status == task.StatusInProgress) && t.DueDate.Before(now) {
		t.Status = task.StatusOverdue
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	relation := user.RelationNone
	if req.AssigneeID == actor.UserID {
		relation = user.RelationSelf
	}
	// Without task.create the only allowed assignee is yourself.
	if !user.Allows(actor, user.PermissionTaskCreate, relation, user.RelationSelf) {
		return task.TaskResponse{}, user.ErrInsufficientPermissions
	}

	assignee, err := s.userRepo.GetByID(ctx, req.AssigneeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return task.TaskResponse{}, task.ErrAssigneeNotFound
		}
		return task.TaskResponse{}, err
	}

	priority := task.PriorityMedium
	if req.Priority != "" {
		priority = task.Priority(req.Priority)
	}
	category := task.CategoryOther
	if req.Category != "" {
		category = req.Category
	}

	t := task.Task{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Status:         task.StatusPending,
		AssigneeID:     assignee.ID,
		AssignerID:     actor.UserID,
		EstimatedHours: req.EstimatedHours,
		Category:       category,
		Tags:           req.Tags,
		Dependencies:   req.Dependencies,
		Recurrence:     req.Recurrence,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return task.TaskResponse{}, err
		}
		t.DueDate = &due
	}

	created, err := s.TaskRepository.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, err
	}
	created.AssigneeName = &assignee.Name

	return task.ToResponse(created), nil
}

// parseDueDate accepts RFC3339 or a bare date, which becomes end of day UTC.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q is not a valid timestamp", value)
	}
	return t.Add(24*time.Hour - time.Second).UTC(), nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if !user.Allows(actor, user.PermissionTaskViewAll, relationTo(actor, t), user.RelationAssignee, user.RelationAssigner) {
		return task.TaskResponse{}, task.ErrAccessDenied
	}

	deriveOverdue(&t, time.Now().UTC())
	return task.ToResponse(t), nil
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.Filter) ([]task.TaskResponse, int64, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Accounts without board-wide visibility are pinned to their own tasks.
	if !user.Allows(actor, user.PermissionTaskViewAll, user.RelationNone) {
		if filter.AssignerID == nil || *filter.AssignerID != actor.UserID {
			filter.AssigneeID = &actor.UserID
			filter.AssignerID = nil
		}
	}

	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now().UTC()
	out := make([]task.TaskResponse, 0, len(tasks))
	for i := range tasks {
		deriveOverdue(&tasks[i], now)
		out = append(out, task.ToResponse(tasks[i]))
	}

	return out, total, nil
}

// assigneeFields is the narrowed update set for a non-staff assignee.
func assigneeOnlyUpdate(req task.UpdateRequest) bool {
	return req.Title == nil && req.Description == nil && req.Priority == nil &&
		req.AssigneeID == nil && req.DueDate == nil && req.EstimatedHours == nil &&
		req.Category == nil && req.Tags == nil && req.Dependencies == nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, id string, req task.UpdateRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	relation := relationTo(actor, t)
	manages := user.Allows(actor, user.PermissionTaskManage, user.RelationNone)
	if !manages {
		// The assignee may move progress and completion state, nothing else.
		if relation != user.RelationAssignee || !assigneeOnlyUpdate(req) {
			return task.TaskResponse{}, task.ErrAccessDenied
		}
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = task.Priority(*req.Priority)
	}
	if req.AssigneeID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.AssigneeID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return task.TaskResponse{}, task.ErrAssigneeNotFound
			}
			return task.TaskResponse{}, err
		}
		t.AssigneeID = *req.AssigneeID
		t.AssigneeName = nil
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return task.TaskResponse{}, err
		}
		t.DueDate = &due
	}
	if req.EstimatedHours != nil {
		t.EstimatedHours = req.EstimatedHours
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.Tags != nil {
		t.Tags = *req.Tags
	}
	if req.Dependencies != nil {
		t.Dependencies = *req.Dependencies
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return task.TaskResponse{}, task.ErrInvalidProgress
		}
		t.Progress = *req.Progress
	}
	if req.ActualHours != nil {
		// Manual override; the next time entry recomputes it from the sum.
		t.ActualHours = *req.ActualHours
	}
	if req.CompletionReason != nil {
		t.CompletionReason = req.CompletionReason
	}
	if req.Status != nil {
		newStatus := task.Status(*req.Status)
		if newStatus == task.StatusCompleted && t.Status != task.StatusCompleted {
			now := time.Now().UTC()
			t.CompletedAt = &now
			t.Progress = 100
		}
		if newStatus != task.StatusCompleted {
			t.CompletedAt = nil
		}
		t.Status = newStatus
	}

	if err := s.TaskRepository.Update(ctx, t); err != nil {
		return task.TaskResponse{}, err
	}

	return task.ToResponse(t), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.Allows(actor, user.PermissionTaskDelete, relationTo(actor, t), user.RelationAssigner) {
		return task.ErrAccessDenied
	}

	return s.TaskRepository.Delete(ctx, id)
}

// AddComment implements task.TaskService.
func (s *TaskServiceImpl) AddComment(ctx context.Context, taskID string, req task.CommentRequest) (task.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return task.CommentResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return task.CommentResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.CommentResponse{}, err
	}
	if !user.Allows(actor, user.PermissionTaskViewAll, relationTo(actor, t), user.RelationAssignee, user.RelationAssigner) {
		return task.CommentResponse{}, task.ErrAccessDenied
	}

	comment, err := s.TaskRepository.AddComment(ctx, task.Comment{
		TaskID:   taskID,
		AuthorID: actor.UserID,
		Text:     req.Text,
	})
	if err != nil {
		return task.CommentResponse{}, err
	}

	return task.CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// AddTimeEntry implements task.TaskService.
func (s *TaskServiceImpl) AddTimeEntry(ctx context.Context, taskID string, req task.TimeEntryRequest) (task.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TimeEntryResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return task.TimeEntryResponse{}, err
	}

	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TimeEntryResponse{}, err
	}
	if !canTrackTime(actor, t) {
		return task.TimeEntryResponse{}, task.ErrAccessDenied
	}

	startAt, endAt, err := req.Window()
	if err != nil {
		return task.TimeEntryResponse{}, err
	}
	if !endAt.After(startAt) {
		return task.TimeEntryResponse{}, task.ErrInvalidDuration
	}

	// Duration is rounded to the nearest whole minute and never recomputed.
	duration := int(math.Round(endAt.Sub(startAt).Minutes()))

	var entry task.TimeEntry
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		entry, err = s.TaskRepository.AddTimeEntry(txCtx, task.TimeEntry{
			TaskID:          taskID,
			UserID:          actor.UserID,
			StartAt:         startAt.UTC(),
			EndAt:           endAt.UTC(),
			DurationMinutes: duration,
			Description:     req.Description,
			WorkDate:        startAt.UTC().Format("2006-01-02"),
		})
		if err != nil {
			return err
		}

		totalMinutes, err := s.TaskRepository.SumTimeEntryMinutes(txCtx, taskID)
		if err != nil {
			return err
		}
		t.ActualHours = float64(totalMinutes) / 60

		return s.TaskRepository.Update(txCtx, t)
	})
	if err != nil {
		return task.TimeEntryResponse{}, err
	}

	return task.TimeEntryResponse{
		ID:              entry.ID,
		StartAt:         entry.StartAt.Format(time.RFC3339),
		EndAt:           entry.EndAt.Format(time.RFC3339),
		DurationMinutes: entry.DurationMinutes,
		Description:     entry.Description,
		WorkDate:        entry.WorkDate,
	}, nil
}
