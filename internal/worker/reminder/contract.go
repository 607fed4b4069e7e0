package reminder

import (
	"context"
	"time"

	"github.com/promeet/booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetConfirmedUnnotified(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	ClaimReminder(ctx context.Context, id int64) (bool, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Send(ctx context.Context, userID int64, title, message string, nType domain.NotificationType, relatedID *int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
