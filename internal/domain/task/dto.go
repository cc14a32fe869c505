package task

import (
	"time"

	"github.com/workpulse/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// TASK DTOs
// ========================================

type CreateRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	AssigneeID     string   `json:"assignee_id"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Dependencies   []string `json:"dependencies"`
	Recurrence     *string  `json:"recurrence"`
}

var priorityValues = []string{
	string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent),
}

var categoryValues = []string{
	CategoryDevelopment, CategoryDesign, CategoryMeeting, CategoryDocumentation, CategoryOther,
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	if r.Priority != "" && !validator.IsInSlice(r.Priority, priorityValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of low, medium, high, urgent",
		})
	}
	if validator.IsEmpty(r.AssigneeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_id",
			Message: "assignee_id is required",
		})
	} else if !validator.IsValidUUID(r.AssigneeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_id",
			Message: "assignee_id must be a valid UUID",
		})
	}
	if r.DueDate != nil {
		if _, err := time.Parse(time.RFC3339, *r.DueDate); err != nil {
			if _, ok := validator.IsValidDate(*r.DueDate); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "due_date",
					Message: "due_date must be RFC3339 or YYYY-MM-DD",
				})
			}
		}
	}
	if r.EstimatedHours != nil && *r.EstimatedHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_hours",
			Message: "estimated_hours must not be negative",
		})
	}
	if r.Category != "" && !validator.IsInSlice(r.Category, categoryValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of development, design, meeting, documentation, other",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest carries every updatable field; the service narrows the
// allowed set by role (admin/hr vs assignee) before applying.
type UpdateRequest struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Priority         *string   `json:"priority"`
	AssigneeID       *string   `json:"assignee_id"`
	DueDate          *string   `json:"due_date"`
	EstimatedHours   *float64  `json:"estimated_hours"`
	Category         *string   `json:"category"`
	Tags             *[]string `json:"tags"`
	Status           *string   `json:"status"`
	Progress         *int      `json:"progress"`
	ActualHours      *float64  `json:"actual_hours"`
	Dependencies     *[]string `json:"dependencies"`
	CompletionReason *string   `json:"completion_reason"`
}

var statusValues = []string{
	string(StatusPending), string(StatusInProgress), string(StatusCompleted),
	string(StatusCancelled), string(StatusOverdue),
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, priorityValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of low, medium, high, urgent",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, statusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, in-progress, completed, cancelled, overdue",
		})
	}
	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "progress",
			Message: "progress must be between 0 and 100",
		})
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, categoryValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of development, design, meeting, documentation, other",
		})
	}
	if r.AssigneeID != nil && !validator.IsValidUUID(*r.AssigneeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_id",
			Message: "assignee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (r *CommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}
	if len(r.Text) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryRequest struct {
	StartAt     string  `json:"start_at"`
	EndAt       string  `json:"end_at"`
	Description *string `json:"description"`
}

// Window returns the parsed start and end instants in UTC. Malformed
// timestamps come back as the same validation errors Validate reports.
func (r *TimeEntryRequest) Window() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_at",
			Message: "start_at must be an RFC3339 timestamp",
		})
	}
	end, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_at",
			Message: "end_at must be an RFC3339 timestamp",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start.UTC(), end.UTC(), nil
}

func (r *TimeEntryRequest) Validate() error {
	_, _, err := r.Window()
	return err
}

type Filter struct {
	AssigneeID *string
	AssignerID *string
	Status     *string
	Priority   *string
	Category   *string
	Search     *string
	DueBefore  *string
	DueAfter   *string
	Page       int
	Limit      int
}

// ========================================
// RESPONSES
// ========================================

type CommentResponse struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"author_id"`
	AuthorName *string `json:"author_name,omitempty"`
	Text       string  `json:"text"`
	CreatedAt  string  `json:"created_at"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	StartAt         string  `json:"start_at"`
	EndAt           string  `json:"end_at"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     *string `json:"description,omitempty"`
	WorkDate        string  `json:"date"`
}

type TaskResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Priority         string              `json:"priority"`
	Status           string              `json:"status"`
	AssigneeID       string              `json:"assignee_id"`
	AssigneeName     *string             `json:"assignee_name,omitempty"`
	AssignerID       string              `json:"assigner_id"`
	AssignerName     *string             `json:"assigner_name,omitempty"`
	DueDate          *string             `json:"due_date,omitempty"`
	EstimatedHours   *float64            `json:"estimated_hours,omitempty"`
	ActualHours      float64             `json:"actual_hours"`
	Category         string              `json:"category"`
	Tags             []string            `json:"tags"`
	Progress         int                 `json:"progress"`
	Dependencies     []string            `json:"dependencies"`
	CompletedAt      *string             `json:"completed_at,omitempty"`
	CompletionReason *string             `json:"completion_reason,omitempty"`
	Comments         []CommentResponse   `json:"comments,omitempty"`
	TimeEntries      []TimeEntryResponse `json:"time_entries,omitempty"`
	CreatedAt        string              `json:"created_at"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ToResponse(t Task) TaskResponse {
	comments := make([]CommentResponse, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, CommentResponse{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Text:       c.Text,
			CreatedAt:  c.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	entries := make([]TimeEntryResponse, 0, len(t.TimeEntries))
	for _, e := range t.TimeEntries {
		entries = append(entries, TimeEntryResponse{
			ID:              e.ID,
			StartAt:         e.StartAt.Format(time.RFC3339),
			EndAt:           e.EndAt.Format(time.RFC3339),
			DurationMinutes: e.DurationMinutes,
			Description:     e.Description,
			WorkDate:        e.WorkDate,
		})
	}

	return TaskResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		AssigneeID:       t.AssigneeID,
		AssigneeName:     t.AssigneeName,
		AssignerID:       t.AssignerID,
		AssignerName:     t.AssignerName,
		DueDate:          formatTimePtr(t.DueDate),
		EstimatedHours:   t.EstimatedHours,
		ActualHours:      t.ActualHours,
		Category:         t.Category,
		Tags:             t.Tags,
		Progress:         t.Progress,
		Dependencies:     t.Dependencies,
		CompletedAt:      formatTimePtr(t.CompletedAt),
		CompletionReason: t.CompletionReason,
		Comments:         comments,
		TimeEntries:      entries,
		CreatedAt:        t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
