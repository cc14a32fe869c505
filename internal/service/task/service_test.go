package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/domain/user"
	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

func TestDeriveOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name   string
		status task.Status
		due    *time.Time
		want   task.Status
	}{
		{"pending past due", task.StatusPending, &past, task.StatusOverdue},
		{"in-progress past due", task.StatusInProgress, &past, task.StatusOverdue},
		{"pending with future due date", task.StatusPending, &future, task.StatusPending},
		{"no due date never flips", task.StatusPending, nil, task.StatusPending},
		{"completed stays completed", task.StatusCompleted, &past, task.StatusCompleted},
		{"cancelled stays cancelled", task.StatusCancelled, &past, task.StatusCancelled},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tk := task.Task{Status: c.status, DueDate: c.due}
			deriveOverdue(&tk, now)
			assert.Equal(t, c.want, tk.Status)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	got, err := parseDueDate("2026-03-02T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC), got)

	// Bare dates become end of day.
	got, err = parseDueDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 23, 59, 59, 0, time.UTC), got)

	_, err = parseDueDate("next tuesday")
	assert.Error(t, err)
}

func TestRelationTo(t *testing.T) {
	tk := task.Task{AssigneeID: "u-1", AssignerID: "u-2"}

	assert.Equal(t, user.RelationAssignee, relationTo(user.Actor{UserID: "u-1"}, tk))
	assert.Equal(t, user.RelationAssigner, relationTo(user.Actor{UserID: "u-2"}, tk))
	assert.Equal(t, user.RelationNone, relationTo(user.Actor{UserID: "u-3"}, tk))
}

func TestAssigneeOnlyUpdate(t *testing.T) {
	progress := 50
	status := string(task.StatusCompleted)
	title := "new title"

	assert.True(t, assigneeOnlyUpdate(task.UpdateRequest{Progress: &progress}))
	assert.True(t, assigneeOnlyUpdate(task.UpdateRequest{Status: &status, Progress: &progress}))

	assert.False(t, assigneeOnlyUpdate(task.UpdateRequest{Title: &title}))
	assert.False(t, assigneeOnlyUpdate(task.UpdateRequest{Title: &title, Progress: &progress}))
}

func TestCanTrackTime(t *testing.T) {
	tk := task.Task{AssigneeID: "worker", AssignerID: "lead"}

	assert.True(t, canTrackTime(user.Actor{UserID: "worker", Role: user.RoleEmployee}, tk))

	// Elevated roles manage tasks but never log hours onto someone else's.
	assert.False(t, canTrackTime(user.Actor{UserID: "lead", Role: user.RoleEmployee}, tk))
	assert.False(t, canTrackTime(user.Actor{UserID: "director", Role: user.RoleAdmin}, tk))
	assert.False(t, canTrackTime(user.Actor{UserID: "people-ops", Role: user.RoleHR}, tk))
}

func TestTimeEntryWindow(t *testing.T) {
	req := task.TimeEntryRequest{StartAt: "2026-03-02T09:00:00+07:00", EndAt: "2026-03-02T10:30:00+07:00"}

	start, end, err := req.Window()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, 90, int(end.Sub(start).Minutes()))

	bad := task.TimeEntryRequest{StartAt: "yesterday", EndAt: "2026-03-02T10:30:00Z"}
	_, _, err = bad.Window()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "start_at", verrs[0].Field)
	assert.Error(t, bad.Validate())
}
