package task

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusOverdue    Status = "overdue"
)

// Categories the board groups tasks by.
const (
	CategoryDevelopment   = "development"
	CategoryDesign        = "design"
	CategoryMeeting       = "meeting"
	CategoryDocumentation = "documentation"
	CategoryOther         = "other"
)

// Comment is owned by its task; not independently addressable.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time

	// DTO / Join
	AuthorName *string
}

// TimeEntry is one tracked work span on a task. DurationMinutes is
// round((EndAt-StartAt) in minutes) and is fixed at insert.
type TimeEntry struct {
	ID              string
	TaskID          string
	UserID          string
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
	Description     *string
	WorkDate        string
	CreatedAt       time.Time
}

// Task is a unit of assigned work.
//
// ActualHours is derived: the sum of all time entries' durations in hours,
// recomputed whenever an entry is added. Overdue is likewise derived from
// the due date at read time; the stored status only converges via the sweep
// job.
type Task struct {
	ID               string
	Title            string
	Description      string
	Priority         Priority
	Status           Status
	AssigneeID       string
	AssignerID       string
	DueDate          *time.Time
	EstimatedHours   *float64
	ActualHours      float64
	Category         string
	Tags             []string
	Progress         int
	Dependencies     []string
	CompletedAt      *time.Time
	CompletionReason *string
	Recurrence       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Comments    []Comment
	TimeEntries []TimeEntry

	// DTO / Join
	AssigneeName *string
	AssignerName *string
}
