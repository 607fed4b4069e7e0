package get_notifications

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
)

type NotifierService interface {
	GetUserNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
