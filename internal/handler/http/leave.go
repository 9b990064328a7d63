package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/leave"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	MyBalances(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

func employeeIdentity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return middleware.Identity{}, false
	}
	if identity.EmployeeID == nil {
		response.Forbidden(w, "No employee profile linked to this account")
		return middleware.Identity{}, false
	}
	return identity, true
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = *identity.EmployeeID

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), *identity.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// MyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}

	result, err := h.leaveService.MyRequests(r.Context(), *identity.EmployeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// MyBalances implements LeaveHandler.
func (h *leaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	identity, ok := employeeIdentity(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.MyBalances(r.Context(), *identity.EmployeeID, time.Now().Year())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.leaveService.ListPending(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.leaveService.Approve(r.Context(), leave.ReviewRequest{
		ID:         chi.URLParam(r, "id"),
		ReviewerID: identity.UserID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req leave.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = identity.UserID

	result, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}
