package decline_appointment

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
)

type AppointmentService interface {
	Decline(ctx context.Context, appointmentID, actorUserID int64, reason *string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
