package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/holiday"
	"github.com/workly-hq/hrms-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListYear(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created", result)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.holidayService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// ListYear implements HolidayHandler.
func (h *holidayHandlerImpl) ListYear(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}

	result, err := h.holidayService.ListYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
