package notifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/promeet/booking-service/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByUserID(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// PushClient интерфейс клиента push-шлюза
type PushClient interface {
	Push(ctx context.Context, dedupKey uuid.UUID, userID int64, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
