package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType категория уведомления
type NotificationType string

const (
	NotificationGeneral     NotificationType = "general"
	NotificationAppointment NotificationType = "appointment"
	NotificationReview      NotificationType = "review"
	NotificationSystem      NotificationType = "system"
)

// Notification уведомление пользователя
// Создается как побочный эффект переходов статуса записи; мутируется
// только флагом прочтения, никогда не удаляется.
type Notification struct {
	ID        uuid.UUID
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	RelatedID *int64 // ID связанной сущности (например, записи) для deep link
	IsRead    bool
	CreatedAt time.Time
}
