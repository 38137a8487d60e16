package http

import (
	"net/http"
	"strconv"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordDaily(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Tracking(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// periodFromQuery reads the optional month and year query parameters. Zero
// values are filled with the current month by the service.
func periodFromQuery(r *http.Request) (attendance.PeriodRequest, error) {
	var req attendance.PeriodRequest

	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return req, attendance.ErrInvalidPeriod
		}
		req.Month = month
	}

	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return req, attendance.ErrInvalidPeriod
		}
		req.Year = year
	}

	return req, nil
}

// RecordDaily implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordDaily(w http.ResponseWriter, r *http.Request) {
	isLeaveDay := r.URL.Query().Get("is_leave_day") == "true"

	result, err := h.attendanceService.RecordDailyAttendance(r.Context(), isLeaveDay)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Daily attendance recorded", result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMonthlyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Tracking implements AttendanceHandler.
func (h *attendanceHandlerImpl) Tracking(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetTracking(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
