package get_professional_appointments

import (
	"context"

	"github.com/promeet/booking-service/internal/domain"
)

type AppointmentService interface {
	GetByProfessional(ctx context.Context, filter domain.ProfessionalAppointmentsFilter, actorUserID int64) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
