package models

import (
	"time"

	"github.com/promeet/booking-service/internal/domain"
)

// AppointmentResponse HTTP модель записи на консультацию
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

	SuggestedDate         *string `json:"suggestedDate,omitempty"`
	SuggestedStartTime    *string `json:"suggestedStartTime,omitempty"`
	IsRescheduleRequested bool    `json:"isRescheduleRequested"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP модель
func FromDomain(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                    a.ID,
		ClientID:              a.ClientID,
		ProfessionalID:        a.ProfessionalID,
		ServiceID:             a.ServiceID,
		ServiceName:           a.ServiceName,
		Price:                 a.Price,
		Date:                  a.Date.Format(domain.DateFormat),
		StartTime:             a.StartTime.String(),
		EndTime:               a.EndTime.String(),
		Status:                string(a.Status),
		Reason:                a.Reason,
		IsRescheduleRequested: a.IsRescheduleRequested,
		CreatedAt:             a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             a.UpdatedAt.Format(time.RFC3339),
	}

	if a.SuggestedDate != nil {
		date := a.SuggestedDate.Format(domain.DateFormat)
		resp.SuggestedDate = &date
	}
	if a.SuggestedStartTime != nil {
		start := a.SuggestedStartTime.String()
		resp.SuggestedStartTime = &start
	}

	return resp
}

// FromDomainList конвертирует список доменных моделей
func FromDomainList(appointments []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomain(a))
	}
	return result
}
