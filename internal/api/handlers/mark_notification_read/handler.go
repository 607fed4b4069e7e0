package mark_notification_read

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/api/middleware"
	"github.com/promeet/booking-service/internal/service/notifier"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidUserID         = "некорректный ID пользователя"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "уведомление не найдено"
	msgForbidden             = "доступ запрещен"
)

// MarkAllReadResponse HTTP response model для массовой отметки
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type Handler struct {
	service NotifierService
	logger  Logger
}

func NewHandler(service NotifierService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/{notificationId}/read
// Принадлежность уведомления проверяется в запросе: чужое отвечает 404.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	notificationID, err := uuid.Parse(vars["notificationId"])
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /notifications/{id}/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, userID); err != nil {
		switch {
		case errors.Is(err, notifier.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: notification_id=%s, user_id=%d",
				notificationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: notification_id=%s, error=%v",
				notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Notification marked read: notification_id=%s, user_id=%d",
		notificationID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleAll PATCH /api/v1/users/{userId}/notifications/read
func (h *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /users/{id}/notifications/read - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /users/{id}/notifications/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if targetID != actorID {
		h.logger.Warn("PATCH /users/{id}/notifications/read - Access denied: target_id=%d, user_id=%d", targetID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), targetID)
	if err != nil {
		h.logger.Error("PATCH /users/{id}/notifications/read - Failed to mark all read: user_id=%d, error=%v", targetID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /users/{id}/notifications/read - %d notifications marked read: user_id=%d", updated, targetID)
	handlers.RespondJSON(w, http.StatusOK, &MarkAllReadResponse{Updated: updated})
}
