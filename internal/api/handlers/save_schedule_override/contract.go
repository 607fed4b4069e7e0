package save_schedule_override

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
)

type ScheduleService interface {
	SaveDateOverride(ctx context.Context, professionalID, actorUserID int64, override scheduleSvc.DateOverride) (*domain.ScheduleRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
