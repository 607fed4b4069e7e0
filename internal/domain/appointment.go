package domain

import (
	"time"

	"github.com/promeet/booking-service/pkg/types"
)

// AppointmentStatus статус записи на консультацию
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment запись клиента к специалисту
// Центральная транзакционная сущность сервиса. Физически не удаляется:
// отмена — это переход статуса, а не удаление строки.
type Appointment struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64

	// Снапшот услуги на момент бронирования (для истории)
	ServiceID   *int64
	ServiceName *string
	Price       float64

	Date      time.Time // календарная дата, полночь UTC
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus
	Reason    *string

	// Флаг отправленного напоминания (единственная защита от повторной отправки)
	Notified bool

	// Предложение переноса, ожидающее ответа клиента
	SuggestedDate         *time.Time
	SuggestedStartTime    *types.TimeString
	IsRescheduleRequested bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// IsTerminal возвращает true для конечных статусов
// Подтверждённая запись не конечна: её ещё можно отменить.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCanceled || a.Status == StatusCompleted
}

// CanBeAccepted возвращает true, если запись можно подтвердить
func (a *Appointment) CanBeAccepted() bool {
	return a.Status == StatusPending
}

// CanBeDeclined возвращает true, если запись можно отклонить/отменить
func (a *Appointment) CanBeDeclined() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCompleted возвращает true, если запись можно завершить
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// HasPendingSuggestion возвращает true, если по записи есть
// неотвеченное предложение переноса
func (a *Appointment) HasPendingSuggestion() bool {
	return a.IsRescheduleRequested && a.SuggestedDate != nil && a.SuggestedStartTime != nil
}

// StartsAt возвращает момент начала встречи (дата + время суток, UTC)
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.At(a.Date)
}

// ProfessionalAppointmentsFilter фильтр для выборки записей специалиста
type ProfessionalAppointmentsFilter struct {
	ProfessionalID  int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}

// DateUTC нормализует произвольный time.Time к полуночи UTC той же календарной даты
func DateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
