package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetSelf(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetSelf implements EmployeeHandler.
func (h *employeeHandlerImpl) GetSelf(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.employeeService.GetSelf(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated", result)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.Filter{}
	query := r.URL.Query()

	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}
	if department := query.Get("department"); department != "" {
		filter.Department = &department
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
