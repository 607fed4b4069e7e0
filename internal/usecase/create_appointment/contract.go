package create_appointment

import (
	"context"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	CountActiveAt(ctx context.Context, professionalID int64, date time.Time, start types.TimeString) (int, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleResolver интерфейс разрешения окна доступности на дату
type ScheduleResolver interface {
	Resolve(ctx context.Context, professionalID int64, date time.Time) (domain.DayWindow, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Send(ctx context.Context, userID int64, title, message string, nType domain.NotificationType, relatedID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
