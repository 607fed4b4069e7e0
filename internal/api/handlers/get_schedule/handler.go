package get_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgProfessionalNotFound  = "специалист не найден"
)

// RuleResponse HTTP модель правила расписания
type RuleResponse struct {
	ID          int64   `json:"id"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	Date        *string `json:"date,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Weekly         []*RuleResponse `json:"weekly"`
	Overrides      []*RuleResponse `json:"overrides"`
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

// Handle GET /api/v1/professionals/{professionalId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	weekly, overrides, err := h.service.GetSchedule(r.Context(), professionalID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/schedule - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/schedule - Failed to get schedule: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &ScheduleResponse{
		ProfessionalID: professionalID,
		Weekly:         toRuleResponses(weekly),
		Overrides:      toRuleResponses(overrides),
	}

	h.logger.Info("GET /professionals/{id}/schedule - Schedule returned: professional_id=%d, weekly=%d, overrides=%d",
		professionalID, len(response.Weekly), len(response.Overrides))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// toRuleResponses конвертирует доменные правила в HTTP модели
func toRuleResponses(rules []*domain.ScheduleRule) []*RuleResponse {
	result := make([]*RuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp := &RuleResponse{
			ID:          rule.ID,
			DayOfWeek:   rule.DayOfWeek,
			IsAvailable: rule.IsAvailable,
			StartTime:   rule.StartTime.String(),
			EndTime:     rule.EndTime.String(),
			UpdatedAt:   rule.UpdatedAt.Format(time.RFC3339),
		}
		if rule.Date != nil {
			date := rule.Date.Format(domain.DateFormat)
			resp.Date = &date
		}
		result = append(result, resp)
	}
	return result
}
