package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
)

type TaskJobs struct {
	taskRepo task.TaskRepository
}

func NewTaskJobs(taskRepo task.TaskRepository) *TaskJobs {
	return &TaskJobs{taskRepo: taskRepo}
}

func (j *TaskJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_overdue_tasks", 15*time.Minute, j.SweepOverdueTasks)
}

// SweepOverdueTasks converges stored task statuses with the overdue
// derivation: open tasks past their due date get demoted to overdue.
// Reads already derive this on the fly, so the sweep only matters for
// stored aggregates and filters.
func (j *TaskJobs) SweepOverdueTasks(ctx context.Context) error {
	swept, err := j.taskRepo.SweepOverdue(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep overdue tasks: %w", err)
	}
	if swept > 0 {
		slog.Info("Cron: Overdue sweep completed", "swept", swept)
	}
	return nil
}
