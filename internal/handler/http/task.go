package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/task"
	"github.com/workpulse/workpulse-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	AddTimeEntry(w http.ResponseWriter, r *http.Request)
}

type TaskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &TaskHandlerImpl{taskService: taskService}
}

// Create implements TaskHandler.
func (h *TaskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq task.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.taskService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created successfully", created)
}

// List implements TaskHandler.
func (h *TaskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := task.Filter{
		AssigneeID: queryString(r, "assignee_id"),
		AssignerID: queryString(r, "assigner_id"),
		Status:     queryString(r, "status"),
		Priority:   queryString(r, "priority"),
		Category:   queryString(r, "category"),
		Search:     queryString(r, "search"),
		DueBefore:  queryString(r, "due_before"),
		DueAfter:   queryString(r, "due_after"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	tasks, total, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListTasks service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, tasks, response.NewMeta(filter.Page, filter.Limit, total))
}

// Get implements TaskHandler.
func (h *TaskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		slog.Error("GetTask service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// Update implements TaskHandler.
func (h *TaskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var updateReq task.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.taskService.Update(r.Context(), id, updateReq)
	if err != nil {
		slog.Error("UpdateTask service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated successfully", updated)
}

// Delete implements TaskHandler.
func (h *TaskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		slog.Error("DeleteTask service error", "error", err, "id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}

// AddComment implements TaskHandler.
func (h *TaskHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var commentReq task.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		slog.Error("AddComment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	comment, err := h.taskService.AddComment(r.Context(), id, commentReq)
	if err != nil {
		slog.Error("AddComment service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added", comment)
}

// AddTimeEntry implements TaskHandler.
func (h *TaskHandlerImpl) AddTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var entryReq task.TimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&entryReq); err != nil {
		slog.Error("AddTimeEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.taskService.AddTimeEntry(r.Context(), id, entryReq)
	if err != nil {
		slog.Error("AddTimeEntry service error", "error", err, "task_id", id)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry recorded", entry)
}
