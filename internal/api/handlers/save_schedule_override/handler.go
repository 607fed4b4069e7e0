package save_schedule_override

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/api/middleware"
	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
	"github.com/promeet/booking-service/pkg/types"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidOverride       = "некорректное переопределение расписания"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgProfessionalNotFound  = "специалист не найден"
	msgForbidden             = "доступ запрещен"
)

// SaveOverrideRequest HTTP request model
type SaveOverrideRequest struct {
	Date        string `json:"date"` // "2026-03-15"
	IsAvailable bool   `json:"isAvailable"`
	StartTime   string `json:"startTime,omitempty"` // "10:00"
	EndTime     string `json:"endTime,omitempty"`   // "15:00"
}

// OverrideResponse HTTP response model
type OverrideResponse struct {
	ID             int64  `json:"id"`
	ProfessionalID int64  `json:"professionalId"`
	Date           string `json:"date"`
	IsAvailable    bool   `json:"isAvailable"`
	StartTime      string `json:"startTime,omitempty"`
	EndTime        string `json:"endTime,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/professionals/{professionalId}/schedule/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	override, err := req.toServiceOverride()
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Failed to parse override: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	saved, err := h.service.SaveDateOverride(r.Context(), professionalID, userID, override)
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrProfessionalNotFound):
			h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, scheduleSvc.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/schedule/overrides - Invalid override: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		default:
			h.logger.Error("PUT /professionals/{id}/schedule/overrides - Failed to save override: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &OverrideResponse{
		ID:             saved.ID,
		ProfessionalID: saved.ProfessionalID,
		IsAvailable:    saved.IsAvailable,
		StartTime:      saved.StartTime.String(),
		EndTime:        saved.EndTime.String(),
		CreatedAt:      saved.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      saved.UpdatedAt.Format(time.RFC3339),
	}
	if saved.Date != nil {
		response.Date = saved.Date.Format(domain.DateFormat)
	}

	h.logger.Info("PUT /professionals/{id}/schedule/overrides - Override saved: professional_id=%d, date=%s",
		professionalID, response.Date)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// toServiceOverride конвертирует HTTP запрос в модель сервиса
func (r *SaveOverrideRequest) toServiceOverride() (scheduleSvc.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return scheduleSvc.DateOverride{}, err
	}

	override := scheduleSvc.DateOverride{
		Date:        date,
		IsAvailable: r.IsAvailable,
	}

	if r.StartTime != "" {
		start, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return scheduleSvc.DateOverride{}, err
		}
		override.StartTime = start
	}
	if r.EndTime != "" {
		end, err := types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return scheduleSvc.DateOverride{}, err
		}
		override.EndTime = end
	}

	return override, nil
}
