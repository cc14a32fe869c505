package task

import "context"

// TaskRepository defines data access methods for the task board.
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)

	// GetByID loads the task with comments and time entries attached.
	GetByID(ctx context.Context, id string) (Task, error)

	List(ctx context.Context, filter Filter) ([]Task, int64, error)

	Update(ctx context.Context, t Task) error

	// Delete removes the task; comments and time entries cascade.
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, c Comment) (Comment, error)

	AddTimeEntry(ctx context.Context, e TimeEntry) (TimeEntry, error)

	// SumTimeEntryMinutes backs the actual-hours recomputation.
	SumTimeEntryMinutes(ctx context.Context, taskID string) (int, error)

	// SweepOverdue persists the overdue demotion for pending/in-progress
	// tasks whose due date has passed, returning the number updated.
	SweepOverdue(ctx context.Context) (int64, error)
}
