package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse/workpulse-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Break(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	CurrentBreak(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	UserHistory(w http.ResponseWriter, r *http.Request)
	MonthlyStats(w http.ResponseWriter, r *http.Request)
	Analytics(w http.ResponseWriter, r *http.Request)
	UpdateProductivity(w http.ResponseWriter, r *http.Request)
	SubmitCorrection(w http.ResponseWriter, r *http.Request)
	ListPendingCorrections(w http.ResponseWriter, r *http.Request)
	ResolveCorrection(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("Mark service error", "error", err, "type", markReq.Type)
		response.HandleError(w, err)
		return
	}

	if markReq.Type == attendance.MarkTypeCheckIn {
		response.Created(w, "Checked in successfully", day)
		return
	}
	response.SuccessWithMessage(w, "Checked out successfully", day)
}

// Break implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Break(w http.ResponseWriter, r *http.Request) {
	var breakReq attendance.BreakRequest

	if err := json.NewDecoder(r.Body).Decode(&breakReq); err != nil {
		slog.Error("Break decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.attendanceService.Break(r.Context(), breakReq)
	if err != nil {
		slog.Error("Break service error", "error", err, "action", breakReq.Action)
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	day, err := h.attendanceService.Today(r.Context())
	if err != nil {
		slog.Error("Today service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// No record yet is a normal state, not an error.
	response.Success(w, day)
}

// CurrentBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CurrentBreak(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.CurrentBreak(r.Context())
	if err != nil {
		slog.Error("CurrentBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	return attendance.HistoryFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := historyFilterFromQuery(r)

	days, total, err := h.attendanceService.History(r.Context(), "", filter)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, days, response.NewMeta(filter.Page, filter.Limit, total))
}

// UserHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UserHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	filter := historyFilterFromQuery(r)

	days, total, err := h.attendanceService.History(r.Context(), userID, filter)
	if err != nil {
		slog.Error("UserHistory service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, days, response.NewMeta(filter.Page, filter.Limit, total))
}

// MonthlyStats implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := queryInt(r, "year")
	if year == 0 {
		year = now.Year()
	}
	month := queryInt(r, "month")
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	userID := r.URL.Query().Get("user_id")

	stats, err := h.attendanceService.MonthlyStats(r.Context(), userID, year, month)
	if err != nil {
		slog.Error("MonthlyStats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Analytics implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	days := queryInt(r, "days")

	analytics, err := h.attendanceService.Analytics(r.Context(), userID, days)
	if err != nil {
		slog.Error("Analytics service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, analytics)
}

// UpdateProductivity implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateProductivity(w http.ResponseWriter, r *http.Request) {
	var productivityReq attendance.ProductivityRequest

	if err := json.NewDecoder(r.Body).Decode(&productivityReq); err != nil {
		slog.Error("UpdateProductivity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := h.attendanceService.UpdateProductivity(r.Context(), productivityReq)
	if err != nil {
		slog.Error("UpdateProductivity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Productivity updated successfully", day)
}

// SubmitCorrection implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SubmitCorrection(w http.ResponseWriter, r *http.Request) {
	var correctionReq attendance.CorrectionInput

	if err := json.NewDecoder(r.Body).Decode(&correctionReq); err != nil {
		slog.Error("SubmitCorrection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	correction, err := h.attendanceService.SubmitCorrection(r.Context(), correctionReq)
	if err != nil {
		slog.Error("SubmitCorrection service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", correction)
}

// ListPendingCorrections implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListPendingCorrections(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.attendanceService.ListPendingCorrections(r.Context())
	if err != nil {
		slog.Error("ListPendingCorrections service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, corrections)
}

type resolveCorrectionRequest struct {
	Approve bool `json:"approve"`
}

// ResolveCorrection implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ResolveCorrection(w http.ResponseWriter, r *http.Request) {
	correctionID := chi.URLParam(r, "id")

	var resolveReq resolveCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&resolveReq); err != nil {
		slog.Error("ResolveCorrection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	correction, err := h.attendanceService.ResolveCorrection(r.Context(), correctionID, resolveReq.Approve)
	if err != nil {
		slog.Error("ResolveCorrection service error", "error", err, "id", correctionID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request resolved", correction)
}
