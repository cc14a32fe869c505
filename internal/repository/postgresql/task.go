package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/database"
)

const taskColumns = `t.id, t.title, t.description, t.priority, t.status, t.assignee_id, t.assigner_id,
	t.due_date, t.estimated_hours, t.actual_hours, t.category, t.tags, t.progress, t.dependencies,
	t.completed_at, t.completion_reason, t.recurrence, t.created_at, t.updated_at`

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.AssigneeID, &t.AssignerID,
		&t.DueDate, &t.EstimatedHours, &t.ActualHours, &t.Category, &t.Tags, &t.Progress, &t.Dependencies,
		&t.CompletedAt, &t.CompletionReason, &t.Recurrence, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
		}
		t.ID = id.String()
	}

	query := `
		INSERT INTO tasks (
			id, title, description, priority, status, assignee_id, assigner_id,
			due_date, estimated_hours, category, tags, progress, dependencies, recurrence
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING actual_hours, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.Priority, t.Status, t.AssigneeID, t.AssignerID,
		t.DueDate, t.EstimatedHours, t.Category, t.Tags, t.Progress, t.Dependencies, t.Recurrence,
	).Scan(&t.ActualHours, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.Task{}, task.ErrAssigneeNotFound
		}
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, ae.name, ar.name
		FROM tasks t
		JOIN users ae ON ae.id = t.assignee_id
		JOIN users ar ON ar.id = t.assigner_id
		WHERE t.id = $1
	`, taskColumns)

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.AssigneeID, &t.AssignerID,
		&t.DueDate, &t.EstimatedHours, &t.ActualHours, &t.Category, &t.Tags, &t.Progress, &t.Dependencies,
		&t.CompletedAt, &t.CompletionReason, &t.Recurrence, &t.CreatedAt, &t.UpdatedAt,
		&t.AssigneeName, &t.AssignerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if t.Comments, err = r.listComments(ctx, q, t.ID); err != nil {
		return task.Task{}, err
	}
	if t.TimeEntries, err = r.listTimeEntries(ctx, q, t.ID); err != nil {
		return task.Task{}, err
	}

	return t, nil
}

// List implements task.TaskRepository.
func (r *taskRepository) List(ctx context.Context, filter task.Filter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.AssigneeID != nil && *filter.AssigneeID != "" {
		baseWhere += fmt.Sprintf(" AND t.assignee_id = $%d", argIdx)
		args = append(args, *filter.AssigneeID)
		argIdx++
	}
	if filter.AssignerID != nil && *filter.AssignerID != "" {
		baseWhere += fmt.Sprintf(" AND t.assigner_id = $%d", argIdx)
		args = append(args, *filter.AssignerID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil && *filter.Priority != "" {
		baseWhere += fmt.Sprintf(" AND t.priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND t.category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (t.title ILIKE $%d OR t.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DueBefore != nil && *filter.DueBefore != "" {
		baseWhere += fmt.Sprintf(" AND t.due_date < $%d::timestamptz", argIdx)
		args = append(args, *filter.DueBefore)
		argIdx++
	}
	if filter.DueAfter != nil && *filter.DueAfter != "" {
		baseWhere += fmt.Sprintf(" AND t.due_date > $%d::timestamptz", argIdx)
		args = append(args, *filter.DueAfter)
		argIdx++
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tasks t WHERE %s`, baseWhere)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s, ae.name, ar.name
		FROM tasks t
		JOIN users ae ON ae.id = t.assignee_id
		JOIN users ar ON ar.id = t.assigner_id
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, taskColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.AssigneeID, &t.AssignerID,
			&t.DueDate, &t.EstimatedHours, &t.ActualHours, &t.Category, &t.Tags, &t.Progress, &t.Dependencies,
			&t.CompletedAt, &t.CompletionReason, &t.Recurrence, &t.CreatedAt, &t.UpdatedAt,
			&t.AssigneeName, &t.AssignerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, status = $5, assignee_id = $6,
			due_date = $7, estimated_hours = $8, actual_hours = $9, category = $10,
			tags = $11, progress = $12, dependencies = $13,
			completed_at = $14, completion_reason = $15, recurrence = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Priority, t.Status, t.AssigneeID,
		t.DueDate, t.EstimatedHours, t.ActualHours, t.Category,
		t.Tags, t.Progress, t.Dependencies,
		t.CompletedAt, t.CompletionReason, t.Recurrence,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) listComments(ctx context.Context, q database.Querier, taskID string) ([]task.Comment, error) {
	rows, err := q.Query(ctx, `
		SELECT c.id, c.task_id, c.author_id, c.text, c.created_at, u.name
		FROM task_comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []task.Comment
	for rows.Next() {
		var c task.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *taskRepository) listTimeEntries(ctx context.Context, q database.Querier, taskID string) ([]task.TimeEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT id, task_id, user_id, start_at, end_at, duration_minutes, description, work_date::text, created_at
		FROM task_time_entries
		WHERE task_id = $1
		ORDER BY start_at ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []task.TimeEntry
	for rows.Next() {
		var e task.TimeEntry
		err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &e.StartAt, &e.EndAt, &e.DurationMinutes, &e.Description, &e.WorkDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// AddComment implements task.TaskRepository.
func (r *taskRepository) AddComment(ctx context.Context, c task.Comment) (task.Comment, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return task.Comment{}, fmt.Errorf("failed to generate comment id: %w", err)
		}
		c.ID = id.String()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO task_comments (id, task_id, author_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, c.ID, c.TaskID, c.AuthorID, c.Text).Scan(&c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.Comment{}, task.ErrTaskNotFound
		}
		return task.Comment{}, fmt.Errorf("failed to add comment: %w", err)
	}

	return c, nil
}

// AddTimeEntry implements task.TaskRepository.
func (r *taskRepository) AddTimeEntry(ctx context.Context, e task.TimeEntry) (task.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return task.TimeEntry{}, fmt.Errorf("failed to generate time entry id: %w", err)
		}
		e.ID = id.String()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO task_time_entries (id, task_id, user_id, start_at, end_at, duration_minutes, description, work_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date)
		RETURNING created_at
	`, e.ID, e.TaskID, e.UserID, e.StartAt, e.EndAt, e.DurationMinutes, e.Description, e.WorkDate).Scan(&e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.TimeEntry{}, task.ErrTaskNotFound
		}
		return task.TimeEntry{}, fmt.Errorf("failed to add time entry: %w", err)
	}

	return e, nil
}

// SumTimeEntryMinutes implements task.TaskRepository.
func (r *taskRepository) SumTimeEntryMinutes(ctx context.Context, taskID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM task_time_entries
		WHERE task_id = $1
	`, taskID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum time entries: %w", err)
	}

	return total, nil
}

// SweepOverdue implements task.TaskRepository.
func (r *taskRepository) SweepOverdue(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tasks
		SET status = 'overdue', updated_at = NOW()
		WHERE status IN ('pending', 'in-progress')
		  AND due_date IS NOT NULL
		  AND due_date < NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue tasks: %w", err)
	}

	return tag.RowsAffected(), nil
}
