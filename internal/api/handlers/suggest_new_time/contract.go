package suggest_new_time

import (
	"context"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/types"
)

type AppointmentService interface {
	SuggestNewTime(ctx context.Context, appointmentID, actorUserID int64, date time.Time, start types.TimeString) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
