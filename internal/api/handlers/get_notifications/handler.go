package get_notifications

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/promeet/booking-service/internal/api/handlers"
	"github.com/promeet/booking-service/internal/api/middleware"
	"github.com/promeet/booking-service/internal/domain"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

// NotificationResponse HTTP модель уведомления
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	RelatedID *int64 `json:"relatedId,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// NotificationsListResponse HTTP response model
type NotificationsListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
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

// Handle GET /api/v1/users/{userId}/notifications?unreadOnly=true
// Пользователь видит только собственный список уведомлений.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if targetID != actorID {
		h.logger.Warn("GET /users/{id}/notifications - Access denied: target_id=%d, user_id=%d", targetID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"

	notifications, err := h.service.GetUserNotifications(r.Context(), targetID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /users/{id}/notifications - Failed to get notifications: user_id=%d, error=%v", targetID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &NotificationsListResponse{
		Notifications: toResponses(notifications),
	}

	h.logger.Info("GET /users/{id}/notifications - %d notifications returned: user_id=%d", len(response.Notifications), targetID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// toResponses конвертирует доменные уведомления в HTTP модели
func toResponses(notifications []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}
