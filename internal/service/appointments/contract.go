package appointments

import (
	"context"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Decline(ctx context.Context, id int64, reason *string) error
	SetSuggestion(ctx context.Context, id int64, date time.Time, start types.TimeString) error
	ApplySuggestion(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error
	ClearSuggestion(ctx context.Context, id int64) error
}

// ProfessionalRepository интерфейс репозитория специалистов
// UserID специалиста всегда берется из свежей строки, не из снапшота записи.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Send(ctx context.Context, userID int64, title, message string, nType domain.NotificationType, relatedID *int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
