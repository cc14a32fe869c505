package task

import "context"

type TaskService interface {
	// Create assigns a task. Accounts without task.create may only assign
	// to themselves.
	Create(ctx context.Context, req CreateRequest) (TaskResponse, error)

	// Get returns one task with comments and time entries. Visible to the
	// assignee, the assigner, and anyone with task.view_all.
	Get(ctx context.Context, id string) (TaskResponse, error)

	// List returns tasks visible to the caller; accounts without
	// task.view_all are pinned to tasks they are assignee or assigner of.
	List(ctx context.Context, filter Filter) ([]TaskResponse, int64, error)

	// Update applies a partial edit. The assignee may move status, progress
	// and completion fields; the full field set requires task.manage.
	Update(ctx context.Context, id string, req UpdateRequest) (TaskResponse, error)

	// Delete requires task.delete or being the assigner.
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, taskID string, req CommentRequest) (CommentResponse, error)

	// AddTimeEntry records a work span and recomputes the task's actual
	// hours from the entry total.
	AddTimeEntry(ctx context.Context, taskID string, req TimeEntryRequest) (TimeEntryResponse, error)
}
