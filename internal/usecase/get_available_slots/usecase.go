package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/promeet/booking-service/internal/domain"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	"github.com/promeet/booking-service/pkg/types"
)

// UseCase use case для получения свободных слотов специалиста на дату
type UseCase struct {
	appointmentRepo  AppointmentRepository
	professionalRepo ProfessionalRepository
	scheduleResolver ScheduleResolver
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	professionalRepo ProfessionalRepository,
	scheduleResolver ScheduleResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		scheduleResolver: scheduleResolver,
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Сетка окна минус времена начала неотмененных записей на эту дату.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s",
		req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	day := domain.DateUTC(req.Date)

	// 2. Проверяем существование специалиста
	if _, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Разрешаем окно доступности на дату
	window, err := uc.scheduleResolver.Resolve(ctx, req.ProfessionalID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}

	// 4. Выходной день: пустой список слотов с явным признаком
	if !window.Available {
		uc.logger.Info("GetAvailableSlots: professional=%d is off on %s (source=%s)",
			req.ProfessionalID, day.Format(domain.DateFormat), window.Source)
		return &Response{
			ProfessionalID: req.ProfessionalID,
			Date:           day,
			DayOff:         true,
			Source:         window.Source,
			Slots:          []types.TimeString{},
		}, nil
	}

	// 5. Получаем активные записи на эту дату
	filter := domain.ProfessionalAppointmentsFilter{
		ProfessionalID:  req.ProfessionalID,
		Date:            &day,
		IncludeInactive: false, // Отмененные записи слот освобождают
	}

	appointments, err := uc.appointmentRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocked := make(map[types.TimeString]bool, len(appointments))
	for _, appt := range appointments {
		blocked[appt.StartTime] = true
	}

	// 6. Сетка окна минус занятые времена начала
	grid := window.SlotGrid()
	slots := make([]types.TimeString, 0, len(grid))
	for _, slot := range grid {
		if !blocked[slot] {
			slots = append(slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: professional=%d, date=%s, %d/%d slots free",
		req.ProfessionalID, day.Format(domain.DateFormat), len(slots), len(grid))

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           day,
		DayOff:         false,
		Source:         window.Source,
		Slots:          slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
