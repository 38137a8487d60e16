package http

import (
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/analytics"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler interface {
	EmployeeAttendance(w http.ResponseWriter, r *http.Request)
	DepartmentsOverview(w http.ResponseWriter, r *http.Request)
	CompanyOverview(w http.ResponseWriter, r *http.Request)
	EmployeesAttendance(w http.ResponseWriter, r *http.Request)
	EmployeeMetrics(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

func overviewFromQuery(r *http.Request) analytics.OverviewRequest {
	return analytics.OverviewRequest{
		Month:      r.URL.Query().Get("month"),
		Department: r.URL.Query().Get("department"),
	}
}

// EmployeeAttendance implements AnalyticsHandler.
func (h *analyticsHandlerImpl) EmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.analyticsService.GetEmployeeAttendance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DepartmentsOverview implements AnalyticsHandler.
func (h *analyticsHandlerImpl) DepartmentsOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetDepartmentsOverview(r.Context(), overviewFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CompanyOverview implements AnalyticsHandler.
func (h *analyticsHandlerImpl) CompanyOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetCompanyOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeesAttendance implements AnalyticsHandler.
func (h *analyticsHandlerImpl) EmployeesAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.ListEmployeesAttendance(r.Context(), overviewFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeMetrics implements AnalyticsHandler.
func (h *analyticsHandlerImpl) EmployeeMetrics(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	req, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.GetEmployeeMetrics(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
