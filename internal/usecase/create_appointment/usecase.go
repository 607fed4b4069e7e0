package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/promeet/booking-service/internal/domain"
	appointmentRepo "github.com/promeet/booking-service/internal/infra/storage/appointment"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
)

// Текст уведомления специалисту о новой заявке
const titleNewRequest = "Новая заявка на запись"

// UseCase use case для создания записи на консультацию
type UseCase struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	scheduleResolver ScheduleResolver
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	scheduleResolver ScheduleResolver,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		scheduleResolver: scheduleResolver,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка идут в сериализуемой транзакции, чтобы две
// конкурирующие заявки на один слот не прошли обе. Уникальный индекс по
// (professional_id, date, start_time) страхует на случай проигранной гонки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, professional=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	day := domain.DateUTC(req.Date)

	// 3. Получаем специалиста
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 4. Цена определяется на сервере: цена услуги, иначе базовая цена специалиста
	// Клиентское значение цены никогда не принимается.
	price := professional.Price
	var serviceName *string
	if req.ServiceID != nil {
		service, err := uc.professionalRepo.GetServiceByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		// Услуга другого специалиста недоступна для этой записи
		if service.ProfessionalID != professional.ID {
			uc.logger.Warn("CreateAppointment: service id=%d belongs to professional=%d, not %d",
				*req.ServiceID, service.ProfessionalID, professional.ID)
			return nil, ErrServiceNotFound
		}
		price = service.Price
		serviceName = &service.Name
	}

	// 5. Разрешаем окно доступности на дату
	window, err := uc.scheduleResolver.Resolve(ctx, req.ProfessionalID, day)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}
	if !window.Available {
		uc.logger.Warn("CreateAppointment: professional=%d is off on %s (source=%s)",
			req.ProfessionalID, day.Format(domain.DateFormat), window.Source)
		return nil, ErrDateUnavailable
	}

	// 6. Время должно лежать на часовой сетке окна
	if !window.ContainsSlot(req.StartTime) {
		uc.logger.Warn("CreateAppointment: time %s is not on the slot grid %s-%s",
			req.StartTime, window.Start, window.End)
		return nil, ErrInvalidTimeSlot
	}

	endTime, err := req.StartTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Считаем активные записи на этот слот с блокировкой (FOR UPDATE)
		count, err := uc.appointmentRepo.CountActiveAt(txCtx, req.ProfessionalID, day, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count active appointments: %v", err)
			// %w сохраняет цепочку до ошибки драйвера: serialization failure
			// внутри транзакции должен остаться retryable для менеджера
			return fmt.Errorf("%w: failed to count active appointments: %w", ErrInternal, err)
		}
		if count > 0 {
			uc.logger.Warn("CreateAppointment: slot %s %s already taken for professional=%d",
				day.Format(domain.DateFormat), req.StartTime, req.ProfessionalID)
			return ErrSlotTaken
		}

		// 7.2. Создаем запись со снапшотом услуги и цены
		appointment := &domain.Appointment{
			ClientID:       req.ClientID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			ServiceName:    serviceName,
			Price:          price,
			Date:           day,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusPending,
			Reason:         req.Reason,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: appointment id=%d created, price=%.2f", result.ID, result.Price)

	// 8. После коммита уведомляем специалиста, ошибка доставки не откатывает запись
	relatedID := result.ID
	message := fmt.Sprintf("Клиент хочет записаться на %s в %s", day.Format(domain.DateFormat), req.StartTime)
	if err := uc.notifier.Send(ctx, professional.UserID, titleNewRequest, message, domain.NotificationAppointment, &relatedID); err != nil {
		uc.logger.Warn("CreateAppointment: failed to notify professional user=%d: %v", professional.UserID, err)
	}

	return buildResponse(result), nil
}

// buildResponse преобразует доменную модель в модель ответа
func buildResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:             appt.ID,
		ClientID:       appt.ClientID,
		ProfessionalID: appt.ProfessionalID,
		ServiceID:      appt.ServiceID,
		ServiceName:    appt.ServiceName,
		Price:          appt.Price,
		Date:           appt.Date,
		StartTime:      appt.StartTime,
		EndTime:        appt.EndTime,
		Status:         string(appt.Status),
		Reason:         appt.Reason,
		CreatedAt:      appt.CreatedAt,
		UpdatedAt:      appt.UpdatedAt,
	}
}
