package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	"github.com/promeet/booking-service/pkg/types"
)

// Service управляет правилами расписания и разрешает дневные окна доступности
type Service struct {
	rules         ScheduleRepository
	professionals ProfessionalRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	rules ScheduleRepository,
	professionals ProfessionalRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		rules:         rules,
		professionals: professionals,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Resolve вычисляет окно доступности специалиста на дату
// Цепочка приоритетов: переопределение на дату > еженедельное правило > дефолт.
func (s *Service) Resolve(ctx context.Context, professionalID int64, date time.Time) (domain.DayWindow, error) {
	day := domain.DateUTC(date)

	override, err := s.rules.GetOverride(ctx, professionalID, day)
	if err != nil {
		return domain.DayWindow{}, fmt.Errorf("%w: Resolve - get override: %v", ErrInternal, err)
	}

	weekly, err := s.rules.GetWeekly(ctx, professionalID, int(day.Weekday()))
	if err != nil {
		return domain.DayWindow{}, fmt.Errorf("%w: Resolve - get weekly rule: %v", ErrInternal, err)
	}

	return domain.ResolveDayWindow(override, weekly, day), nil
}

// UpdateWeekly заменяет еженедельные правила специалиста батчевым upsert
// Операция доступна только владельцу профиля.
func (s *Service) UpdateWeekly(ctx context.Context, professionalID, actorUserID int64, rules []WeeklyRule) ([]*domain.ScheduleRule, error) {
	if err := s.checkOwnership(ctx, professionalID, actorUserID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(rules))
	for i := range rules {
		if err := validateWeeklyRule(&rules[i]); err != nil {
			return nil, err
		}
		if seen[rules[i].DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate rule for day of week %d", ErrInvalidInput, rules[i].DayOfWeek)
		}
		seen[rules[i].DayOfWeek] = true
	}

	saved := make([]*domain.ScheduleRule, 0, len(rules))
	for i := range rules {
		day := rules[i].DayOfWeek
		rule := &domain.ScheduleRule{
			ProfessionalID: professionalID,
			DayOfWeek:      &day,
			IsAvailable:    rules[i].IsAvailable,
			StartTime:      rules[i].StartTime,
			EndTime:        rules[i].EndTime,
		}

		stored, err := s.rules.UpsertWeekly(ctx, rule)
		if err != nil {
			return nil, fmt.Errorf("%w: UpdateWeekly - upsert day %d: %v", ErrInternal, day, err)
		}
		saved = append(saved, stored)
	}

	s.logger.Info("UpdateWeekly: professional=%d, %d rules saved", professionalID, len(saved))
	return saved, nil
}

// SaveDateOverride сохраняет переопределение доступности на конкретную дату
func (s *Service) SaveDateOverride(ctx context.Context, professionalID, actorUserID int64, override DateOverride) (*domain.ScheduleRule, error) {
	if err := s.checkOwnership(ctx, professionalID, actorUserID); err != nil {
		return nil, err
	}

	if override.Date.IsZero() {
		return nil, fmt.Errorf("%w: override date is required", ErrInvalidInput)
	}
	if err := validateWindow(override.IsAvailable, override.StartTime, override.EndTime); err != nil {
		return nil, err
	}

	day := domain.DateUTC(override.Date)
	rule := &domain.ScheduleRule{
		ProfessionalID: professionalID,
		Date:           &day,
		IsAvailable:    override.IsAvailable,
		StartTime:      override.StartTime,
		EndTime:        override.EndTime,
	}

	stored, err := s.rules.UpsertOverride(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("%w: SaveDateOverride - upsert: %v", ErrInternal, err)
	}

	s.logger.Info("SaveDateOverride: professional=%d, date=%s, available=%t",
		professionalID, day.Format(domain.DateFormat), override.IsAvailable)
	return stored, nil
}

// GetSchedule возвращает еженедельные правила и будущие переопределения специалиста
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) ([]*domain.ScheduleRule, []*domain.ScheduleRule, error) {
	if err := s.checkProfessionalExists(ctx, professionalID); err != nil {
		return nil, nil, err
	}

	weekly, err := s.rules.ListWeekly(ctx, professionalID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetSchedule - list weekly: %v", ErrInternal, err)
	}

	today := domain.DateUTC(s.timeProvider.Now())
	overrides, err := s.rules.ListOverridesFrom(ctx, professionalID, today, false)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetSchedule - list overrides: %v", ErrInternal, err)
	}

	return weekly, overrides, nil
}

// ListOffDays возвращает выходные дни недели и будущие закрытые даты
// Так клиент на странице записи сразу видит, какие дни выбирать бессмысленно.
func (s *Service) ListOffDays(ctx context.Context, professionalID int64) (*OffDays, error) {
	if err := s.checkProfessionalExists(ctx, professionalID); err != nil {
		return nil, err
	}

	weekly, err := s.rules.ListWeekly(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOffDays - list weekly: %v", ErrInternal, err)
	}

	off := &OffDays{
		Weekdays: make([]int, 0),
		Dates:    make([]time.Time, 0),
	}

	hasWeekly := make(map[int]bool, len(weekly))
	for _, rule := range weekly {
		if rule.DayOfWeek == nil {
			continue
		}
		hasWeekly[*rule.DayOfWeek] = true
		if !rule.IsAvailable {
			off.Weekdays = append(off.Weekdays, *rule.DayOfWeek)
		}
	}

	// Дни без еженедельного правила закрываются системным дефолтом
	for day := 0; day <= 6; day++ {
		if hasWeekly[day] {
			continue
		}
		if day == int(time.Sunday) || day == int(time.Saturday) {
			off.Weekdays = append(off.Weekdays, day)
		}
	}

	today := domain.DateUTC(s.timeProvider.Now())
	overrides, err := s.rules.ListOverridesFrom(ctx, professionalID, today, true)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOffDays - list overrides: %v", ErrInternal, err)
	}
	for _, rule := range overrides {
		if rule.Date != nil {
			off.Dates = append(off.Dates, *rule.Date)
		}
	}

	return off, nil
}

// checkProfessionalExists проверяет существование специалиста
func (s *Service) checkProfessionalExists(ctx context.Context, professionalID int64) error {
	if _, err := s.professionals.GetByID(ctx, professionalID); err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return ErrProfessionalNotFound
		}
		return fmt.Errorf("%w: failed to load professional: %v", ErrInternal, err)
	}
	return nil
}

// checkOwnership проверяет, что actorUserID владеет профилем professionalID
func (s *Service) checkOwnership(ctx context.Context, professionalID, actorUserID int64) error {
	prof, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			return ErrProfessionalNotFound
		}
		return fmt.Errorf("%w: failed to load professional: %v", ErrInternal, err)
	}
	if prof.UserID != actorUserID {
		return ErrAccessDenied
	}
	return nil
}

// validateWeeklyRule проверяет еженедельное правило
func validateWeeklyRule(rule *WeeklyRule) error {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be in [0,6], got %d", ErrInvalidInput, rule.DayOfWeek)
	}
	return validateWindow(rule.IsAvailable, rule.StartTime, rule.EndTime)
}

// validateWindow проверяет временное окно правила
// Для недоступного дня времена опциональны и игнорируются.
func validateWindow(isAvailable bool, start, end types.TimeString) error {
	if !isAvailable {
		return nil
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, start, end)
	}
	return nil
}
