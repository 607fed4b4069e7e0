package schedule

import (
	"context"
	"time"

	"github.com/promeet/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория правил расписания
type ScheduleRepository interface {
	UpsertWeekly(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	UpsertOverride(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	GetOverride(ctx context.Context, professionalID int64, date time.Time) (*domain.ScheduleRule, error)
	GetWeekly(ctx context.Context, professionalID int64, dayOfWeek int) (*domain.ScheduleRule, error)
	ListWeekly(ctx context.Context, professionalID int64) ([]*domain.ScheduleRule, error)
	ListOverridesFrom(ctx context.Context, professionalID int64, from time.Time, unavailableOnly bool) ([]*domain.ScheduleRule, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error)
}

// TimeProvider интерфейс для получения текущего времени
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
