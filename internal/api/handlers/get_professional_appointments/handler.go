package get_professional_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/api/middleware"
	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/internal/service/appointments"
	"github.com/promeet/booking-service/internal/service/appointments/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus         = "некорректный статус записи"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// AppointmentsListResponse HTTP response model
type AppointmentsListResponse struct {
	Appointments []*models.AppointmentResponse `json:"appointments"`
}

// Handle GET /api/v1/professionals/{professionalId}/appointments?date=YYYY-MM-DD&status=pending&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/appointments - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	filter := domain.ProfessionalAppointmentsFilter{ProfessionalID: professionalID}

	query := r.URL.Query()
	if rawDate := query.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.Date = &date
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		status := domain.AppointmentStatus(rawStatus)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCanceled:
			filter.Status = &status
		default:
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid status: %s", rawStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
	}

	filter.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetByProfessional(r.Context(), filter, actorID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/appointments - Access denied: professional_id=%d, user_id=%d", professionalID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /professionals/{id}/appointments - Failed to get appointments: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/appointments - %d appointments returned: professional_id=%d", len(result), professionalID)
	handlers.RespondJSON(w, http.StatusOK, &AppointmentsListResponse{
		Appointments: models.FromDomainList(result),
	})
}
