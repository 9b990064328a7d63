package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CreatePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	MyPayslips(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	MyProvidentFund(w http.ResponseWriter, r *http.Request)
	UpsertProvidentFund(w http.ResponseWriter, r *http.Request)
	ListProvidentFunds(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// CreatePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip created", result)
}

// GetPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requesterEmployeeID := ""
	if identity.EmployeeID != nil {
		requesterEmployeeID = *identity.EmployeeID
	}

	result, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "id"), requesterEmployeeID, identity.IsHR())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// MyPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) MyPayslips(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.MyPayslips(r.Context(), *identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	periodMonth := query.Get("month")
	if periodMonth == "" {
		response.BadRequest(w, "month query parameter is required (YYYY-MM)", nil)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.payrollService.ListPayslips(r.Context(), periodMonth, page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payslip marked as paid", nil)
}

// MyProvidentFund implements PayrollHandler.
func (h *payrollHandlerImpl) MyProvidentFund(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.MyProvidentFund(r.Context(), *identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UpsertProvidentFund implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertProvidentFund(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertProvidentFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert provident fund decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpsertProvidentFund(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Provident fund saved", result)
}

// ListProvidentFunds implements PayrollHandler.
func (h *payrollHandlerImpl) ListProvidentFunds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.payrollService.ListProvidentFunds(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
