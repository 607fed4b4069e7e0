package accept_appointment

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
)

type AppointmentService interface {
	Accept(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
