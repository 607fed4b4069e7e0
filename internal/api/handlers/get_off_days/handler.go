package get_off_days

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgProfessionalNotFound  = "специалист не найден"
)

// OffDaysResponse HTTP response model
type OffDaysResponse struct {
	ProfessionalID int64    `json:"professionalId"`
	Weekdays       []int    `json:"weekdays"`
	Dates          []string `json:"dates"`
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

// Handle GET /api/v1/professionals/{professionalId}/off-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/off-days - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	offDays, err := h.service.ListOffDays(r.Context(), professionalID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/off-days - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/off-days - Failed to get off days: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]string, 0, len(offDays.Dates))
	for _, date := range offDays.Dates {
		dates = append(dates, date.Format(domain.DateFormat))
	}

	response := &OffDaysResponse{
		ProfessionalID: professionalID,
		Weekdays:       offDays.Weekdays,
		Dates:          dates,
	}

	h.logger.Info("GET /professionals/{id}/off-days - Off days returned: professional_id=%d, weekdays=%d, dates=%d",
		professionalID, len(response.Weekdays), len(response.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}
