package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/workly-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/clock"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	tracker     attendance.Tracker
	clock       clock.Clock
	historyDays int
}

func NewAttendanceHandler(tracker attendance.Tracker, clk clock.Clock, historyDays int) AttendanceHandler {
	if historyDays <= 0 {
		historyDays = 30
	}
	return &attendanceHandlerImpl{
		tracker:     tracker,
		clock:       clk,
		historyDays: historyDays,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CheckIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.UserID = identity.UserID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.tracker.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", attendance.MapRecordToResponse(record))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.CheckOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CheckOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.UserID = identity.UserID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.tracker.CheckOut(r.Context(), req)
	if err != nil && !errors.Is(err, attendance.ErrClockAnomaly) {
		response.HandleError(w, err)
		return
	}

	message := "Checked out"
	if errors.Is(err, attendance.ErrClockAnomaly) {
		message = "Checked out; work duration was reset due to a clock change"
	}
	response.SuccessWithMessage(w, message, attendance.MapRecordToResponse(record))
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	record, found, err := h.tracker.LoadToday(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !found {
		response.Success(w, map[string]interface{}{"checked_in": false})
		return
	}

	response.Success(w, attendance.MapRecordToResponse(record))
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	days := h.historyDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "days must be a positive integer", nil)
			return
		}
		if parsed < days {
			days = parsed
		}
	}

	records, err := h.tracker.LoadHistory(r.Context(), identity.UserID, days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := attendance.HistoryResponse{
		Days:    days,
		Records: make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.Records = append(resp.Records, attendance.MapRecordToResponse(record))
	}
	response.Success(w, resp)
}

// Calendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	now := h.clock.Now()
	year, month := now.Year(), now.Month()

	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "month must be YYYY-MM", nil)
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	view, err := h.tracker.MonthGrid(r.Context(), identity.UserID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// UpdateNotes implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req attendance.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNotes decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.tracker.UpdateNotes(r.Context(), identity.UserID, req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notes updated", attendance.MapRecordToResponse(record))
}
