package get_off_days

import (
	"context"

	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
)

type ScheduleService interface {
	ListOffDays(ctx context.Context, professionalID int64) (*scheduleSvc.OffDays, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
