package update_schedule

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
)

type ScheduleService interface {
	UpdateWeekly(ctx context.Context, professionalID, actorUserID int64, rules []scheduleSvc.WeeklyRule) ([]*domain.ScheduleRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
