package get_schedule

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, professionalID int64) ([]*domain.ScheduleRule, []*domain.ScheduleRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
