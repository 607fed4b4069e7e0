package domain

import (
	"time"

	"github.com/promeet/booking-service/pkg/types"
)

// ScheduleRule правило доступности специалиста
// Ровно одно из полей DayOfWeek/Date заполнено:
// - DayOfWeek задан — еженедельное правило (0=воскресенье ... 6=суббота)
// - Date задана — переопределение на конкретную дату, имеет приоритет
// Инвариант: не больше одного еженедельного правила на (специалист, день недели)
// и не больше одного переопределения на (специалист, дата).
type ScheduleRule struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      *int       // 0-6, nil для переопределений
	Date           *time.Time // полночь UTC, nil для еженедельных правил
	IsAvailable    bool
	StartTime      types.TimeString
	EndTime        types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOverride возвращает true для правила-переопределения на дату
func (r *ScheduleRule) IsOverride() bool {
	return r.Date != nil
}

// WindowSource источник, из которого получено дневное окно доступности
type WindowSource string

const (
	SourceOverride WindowSource = "override" // переопределение на дату
	SourceWeekly   WindowSource = "weekly"   // еженедельное правило
	SourceDefault  WindowSource = "default"  // системный дефолт
)

// DayWindow разрешённое окно доступности специалиста на конкретную дату
type DayWindow struct {
	Source    WindowSource
	Available bool
	Start     types.TimeString
	End       types.TimeString
}

// ResolveDayWindow вычисляет окно доступности по трёхуровневой цепочке приоритетов:
// переопределение на дату > еженедельное правило > дефолт (будни 09:00-17:00).
// Переопределение побеждает всегда, независимо от значения IsAvailable —
// именно так выходной день и открывается, и закрывается точечно.
// Чистая функция: правила передаются снаружи, сама она ничего не читает.
func ResolveDayWindow(override *ScheduleRule, weekly *ScheduleRule, date time.Time) DayWindow {
	if override != nil {
		return DayWindow{
			Source:    SourceOverride,
			Available: override.IsAvailable,
			Start:     override.StartTime,
			End:       override.EndTime,
		}
	}

	if weekly != nil {
		return DayWindow{
			Source:    SourceWeekly,
			Available: weekly.IsAvailable,
			Start:     weekly.StartTime,
			End:       weekly.EndTime,
		}
	}

	weekday := date.Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday

	return DayWindow{
		Source:    SourceDefault,
		Available: !isWeekend,
		Start:     DefaultWorkdayStart,
		End:       DefaultWorkdayEnd,
	}
}

// SlotGrid разбивает окно на часовые слоты: t, t+1h, ... пока t+1h <= end.
// Пустое или вывернутое окно (start >= end) дает пустой список, это не ошибка.
func (w DayWindow) SlotGrid() []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !w.Available {
		return slots
	}

	current := w.Start
	for current.IsBefore(w.End) {
		slotEnd, err := current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(w.End) {
			break
		}
		slots = append(slots, current)

		current = slotEnd
	}

	return slots
}

// ContainsSlot возвращает true, если start лежит на часовой сетке окна
func (w DayWindow) ContainsSlot(start types.TimeString) bool {
	for _, slot := range w.SlotGrid() {
		if slot == start {
			return true
		}
	}
	return false
}
