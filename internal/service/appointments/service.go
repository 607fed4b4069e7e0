package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	appointmentRepo "github.com/promeet/booking-service/internal/infra/storage/appointment"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	"github.com/promeet/booking-service/pkg/types"
)

// Тексты уведомлений для клиента и специалиста
const (
	titleConfirmed          = "Запись подтверждена"
	titleDeclined           = "Запись отменена"
	titleSuggested          = "Предложено новое время"
	titleSuggestionAccepted = "Перенос согласован"
	titleSuggestionDeclined = "Перенос отклонен"
	titleCompleted          = "Консультация завершена"
)

// Service управляет жизненным циклом записей
// Каждый видимый клиенту переход статуса порождает ровно одно уведомление
// контрагенту; user_id специалиста всегда перечитывается из таблицы
// professionals, а не берется из полей записи.
type Service struct {
	appointments  AppointmentRepository
	professionals ProfessionalRepository
	notifier      Notifier
	logger        Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointments AppointmentRepository,
	professionals ProfessionalRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointments:  appointments,
		professionals: professionals,
		notifier:      notifier,
		logger:        logger,
	}
}

// Accept подтверждает ожидающую запись (pending -> confirmed)
// Операция доступна только специалисту, которому принадлежит запись.
func (s *Service) Accept(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, _, err := s.getOwnedByProfessional(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeAccepted() {
		s.logger.Warn("Accept: appointment=%d in status %s cannot be accepted", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.StatusConfirmed); err != nil {
		return nil, s.mapRepoError("Accept", err)
	}
	appt.Status = domain.StatusConfirmed

	s.logger.Info("Accept: appointment=%d confirmed by professional user=%d", appointmentID, actorUserID)

	s.notify(ctx, appt.ClientID, titleConfirmed,
		fmt.Sprintf("Специалист подтвердил вашу запись на %s в %s", appt.Date.Format(domain.DateFormat), appt.StartTime),
		appointmentID)

	return appt, nil
}

// Decline отменяет запись специалистом (pending|confirmed -> canceled)
// Причина опциональна и ограничена по длине.
func (s *Service) Decline(ctx context.Context, appointmentID, actorUserID int64, reason *string) (*domain.Appointment, error) {
	if reason != nil && len(*reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	appt, _, err := s.getOwnedByProfessional(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeDeclined() {
		s.logger.Warn("Decline: appointment=%d in status %s cannot be declined", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.appointments.Decline(ctx, appointmentID, reason); err != nil {
		return nil, s.mapRepoError("Decline", err)
	}
	appt.Status = domain.StatusCanceled
	appt.Reason = reason

	s.logger.Info("Decline: appointment=%d canceled by professional user=%d", appointmentID, actorUserID)

	message := fmt.Sprintf("Специалист отменил вашу запись на %s в %s", appt.Date.Format(domain.DateFormat), appt.StartTime)
	if reason != nil && *reason != "" {
		message = fmt.Sprintf("%s. Причина: %s", message, *reason)
	}
	s.notify(ctx, appt.ClientID, titleDeclined, message, appointmentID)

	return appt, nil
}

// SuggestNewTime сохраняет предложение переноса записи на другую дату и время
// Статус записи не меняется, пока клиент не ответит на предложение.
func (s *Service) SuggestNewTime(ctx context.Context, appointmentID, actorUserID int64, date time.Time, start types.TimeString) (*domain.Appointment, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid suggested time: %v", ErrInvalidInput, err)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: suggested date is required", ErrInvalidInput)
	}

	appt, _, err := s.getOwnedByProfessional(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if appt.IsTerminal() {
		s.logger.Warn("SuggestNewTime: appointment=%d in terminal status %s", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	day := domain.DateUTC(date)
	if err := s.appointments.SetSuggestion(ctx, appointmentID, day, start); err != nil {
		return nil, s.mapRepoError("SuggestNewTime", err)
	}
	appt.SuggestedDate = &day
	appt.SuggestedStartTime = &start
	appt.IsRescheduleRequested = true

	s.logger.Info("SuggestNewTime: appointment=%d, suggested %s %s", appointmentID, day.Format(domain.DateFormat), start)

	s.notify(ctx, appt.ClientID, titleSuggested,
		fmt.Sprintf("Специалист предложил перенести запись на %s в %s", day.Format(domain.DateFormat), start),
		appointmentID)

	return appt, nil
}

// AcceptSuggestion принимает предложение переноса от имени клиента
// Дата и время записи заменяются предложенными, запись подтверждается,
// предложение очищается. Занятый слот дает ErrSlotTaken.
func (s *Service) AcceptSuggestion(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, err := s.getOwnedByClient(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !appt.HasPendingSuggestion() {
		return nil, ErrNoSuggestionPending
	}

	start := *appt.SuggestedStartTime
	end, err := start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: AcceptSuggestion - compute end time: %v", ErrInvalidInput, err)
	}

	day := *appt.SuggestedDate
	if err := s.appointments.ApplySuggestion(ctx, appointmentID, day, start, end); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			s.logger.Warn("AcceptSuggestion: appointment=%d, suggested slot %s %s already taken", appointmentID, day.Format(domain.DateFormat), start)
			return nil, ErrSlotTaken
		}
		return nil, s.mapRepoError("AcceptSuggestion", err)
	}

	appt.Date = day
	appt.StartTime = start
	appt.EndTime = end
	appt.Status = domain.StatusConfirmed
	appt.SuggestedDate = nil
	appt.SuggestedStartTime = nil
	appt.IsRescheduleRequested = false

	s.logger.Info("AcceptSuggestion: appointment=%d rescheduled to %s %s", appointmentID, day.Format(domain.DateFormat), start)

	s.notifyProfessional(ctx, appt.ProfessionalID, titleSuggestionAccepted,
		fmt.Sprintf("Клиент согласился на перенос записи на %s в %s", day.Format(domain.DateFormat), start),
		appointmentID)

	return appt, nil
}

// DeclineSuggestion отклоняет предложение переноса от имени клиента
// Повторный вызов без ожидающего предложения считается успешным no-op.
func (s *Service) DeclineSuggestion(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, err := s.getOwnedByClient(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !appt.HasPendingSuggestion() {
		return appt, nil
	}

	if err := s.appointments.ClearSuggestion(ctx, appointmentID); err != nil {
		return nil, s.mapRepoError("DeclineSuggestion", err)
	}
	appt.SuggestedDate = nil
	appt.SuggestedStartTime = nil
	appt.IsRescheduleRequested = false

	s.logger.Info("DeclineSuggestion: appointment=%d, suggestion declined by client user=%d", appointmentID, actorUserID)

	s.notifyProfessional(ctx, appt.ProfessionalID, titleSuggestionDeclined,
		fmt.Sprintf("Клиент отклонил перенос записи на %s в %s", appt.Date.Format(domain.DateFormat), appt.StartTime),
		appointmentID)

	return appt, nil
}

// Complete переводит подтвержденную запись в completed
// Вызывается специалистом после оказания услуги.
func (s *Service) Complete(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, _, err := s.getOwnedByProfessional(ctx, appointmentID, actorUserID)
	if err != nil {
		return nil, err
	}

	if !appt.CanBeCompleted() {
		s.logger.Warn("Complete: appointment=%d in status %s cannot be completed", appointmentID, appt.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.StatusCompleted); err != nil {
		return nil, s.mapRepoError("Complete", err)
	}
	appt.Status = domain.StatusCompleted

	s.logger.Info("Complete: appointment=%d completed by professional user=%d", appointmentID, actorUserID)

	s.notify(ctx, appt.ClientID, titleCompleted,
		fmt.Sprintf("Консультация %s в %s завершена", appt.Date.Format(domain.DateFormat), appt.StartTime),
		appointmentID)

	return appt, nil
}

// GetByID возвращает запись по идентификатору
// Доступ только участникам: клиенту записи или ее специалисту.
func (s *Service) GetByID(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}

	if appt.ClientID == actorUserID {
		return appt, nil
	}

	prof, err := s.professionals.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: GetByID - resolve professional: %v", ErrInternal, err)
	}
	if prof.ID != appt.ProfessionalID {
		return nil, ErrAccessDenied
	}

	return appt, nil
}

// GetByClient возвращает записи клиента
// Клиент может смотреть только собственный список.
func (s *Service) GetByClient(ctx context.Context, clientID, actorUserID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if clientID != actorUserID {
		return nil, ErrAccessDenied
	}

	result, err := s.appointments.GetByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - repository error: %v", ErrInternal, err)
	}
	return result, nil
}

// GetByProfessional возвращает записи специалиста по фильтру
// Доступ только владельцу профиля специалиста.
func (s *Service) GetByProfessional(ctx context.Context, filter domain.ProfessionalAppointmentsFilter, actorUserID int64) ([]*domain.Appointment, error) {
	prof, err := s.professionals.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: GetByProfessional - resolve professional: %v", ErrInternal, err)
	}
	if prof.ID != filter.ProfessionalID {
		return nil, ErrAccessDenied
	}

	result, err := s.appointments.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - repository error: %v", ErrInternal, err)
	}
	return result, nil
}

// getOwnedByProfessional загружает запись и проверяет, что actorUserID
// является специалистом этой записи
func (s *Service) getOwnedByProfessional(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, *domain.Professional, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, nil, s.mapRepoError("getOwnedByProfessional", err)
	}

	prof, err := s.professionals.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return nil, nil, ErrAccessDenied
		}
		return nil, nil, fmt.Errorf("%w: getOwnedByProfessional - resolve professional: %v", ErrInternal, err)
	}
	if prof.ID != appt.ProfessionalID {
		return nil, nil, ErrAccessDenied
	}

	return appt, prof, nil
}

// getOwnedByClient загружает запись и проверяет, что actorUserID является ее клиентом
func (s *Service) getOwnedByClient(ctx context.Context, appointmentID, actorUserID int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, s.mapRepoError("getOwnedByClient", err)
	}
	if appt.ClientID != actorUserID {
		return nil, ErrAccessDenied
	}
	return appt, nil
}

// notify отправляет уведомление пользователю, проглатывая ошибку доставки
// Переход статуса уже зафиксирован, откатывать его из-за уведомления нельзя.
func (s *Service) notify(ctx context.Context, userID int64, title, message string, appointmentID int64) {
	relatedID := appointmentID
	if err := s.notifier.Send(ctx, userID, title, message, domain.NotificationAppointment, &relatedID); err != nil {
		s.logger.Warn("notify: failed to send notification to user=%d for appointment=%d: %v", userID, appointmentID, err)
	}
}

// notifyProfessional перечитывает user_id специалиста и отправляет ему уведомление
func (s *Service) notifyProfessional(ctx context.Context, professionalID int64, title, message string, appointmentID int64) {
	prof, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		s.logger.Warn("notifyProfessional: failed to resolve professional=%d for appointment=%d: %v", professionalID, appointmentID, err)
		return
	}
	s.notify(ctx, prof.UserID, title, message, appointmentID)
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(method string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return ErrAppointmentNotFound
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}
