package create_appointment

import (
	"time"

	"github.com/promeet/booking-service/internal/domain"
	createAppointment "github.com/promeet/booking-service/internal/usecase/create_appointment"
	"github.com/promeet/booking-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
// Цена в запросе отсутствует намеренно: она всегда вычисляется на сервере.
type CreateAppointmentRequest struct {
	ProfessionalID int64   `json:"professionalId"`
	ServiceID      *int64  `json:"serviceId,omitempty"`
	Date           string  `json:"date"`      // "2026-03-15"
	StartTime      string  `json:"startTime"` // "10:00"
	Reason         *string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64   `json:"id"`
	ClientID       int64   `json:"clientId"`
	ProfessionalID int64   `json:"professionalId"`
	ServiceID      *int64  `json:"serviceId,omitempty"`
	ServiceName    *string `json:"serviceName,omitempty"`
	Price          float64 `json:"price"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	Reason         *string `json:"reason,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:       clientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
		Reason:         r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		ServiceName:    resp.ServiceName,
		Price:          resp.Price,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		Reason:         resp.Reason,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
