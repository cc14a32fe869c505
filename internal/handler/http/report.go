package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse/workpulse-backend-go/internal/domain/report"
	"github.com/workpulse/workpulse-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	EmployeeDetail(w http.ResponseWriter, r *http.Request)
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	ProductivityReport(w http.ResponseWriter, r *http.Request)
	RecentActivity(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// rangeFromQuery defaults to the trailing 30 days when the range is omitted.
func rangeFromQuery(r *http.Request) report.RangeRequest {
	now := time.Now().UTC()

	req := report.RangeRequest{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Department: queryString(r, "department"),
		Detailed:   r.URL.Query().Get("detailed") == "true",
	}
	if req.StartDate == "" {
		req.StartDate = now.AddDate(0, 0, -29).Format("2006-01-02")
	}
	if req.EndDate == "" {
		req.EndDate = now.Format("2006-01-02")
	}
	return req
}

// Dashboard implements ReportHandler.
func (h *ReportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		slog.Error("Dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// EmployeeDetail implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeDetail(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	detail, err := h.reportService.EmployeeDetail(r.Context(), employeeID, rangeFromQuery(r))
	if err != nil {
		slog.Error("EmployeeDetail service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// AttendanceReport implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	out, err := h.reportService.AttendanceReport(r.Context(), rangeFromQuery(r))
	if err != nil {
		slog.Error("AttendanceReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, out)
}

// ProductivityReport implements ReportHandler.
func (h *ReportHandlerImpl) ProductivityReport(w http.ResponseWriter, r *http.Request) {
	out, err := h.reportService.ProductivityReport(r.Context(), rangeFromQuery(r))
	if err != nil {
		slog.Error("ProductivityReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, out)
}

// RecentActivity implements ReportHandler.
func (h *ReportHandlerImpl) RecentActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.reportService.RecentActivity(r.Context(), queryInt(r, "limit"))
	if err != nil {
		slog.Error("RecentActivity service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, activity)
}
