package domain

import "github.com/promeet/booking-service/pkg/types"

// Форматы времени и даты
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Длительность слота фиксирована: один час
// Платформа продает консультации ровно по часу, конфигурируемая
// длительность намеренно не поддерживается.
const SlotDurationMinutes = 60

// Дефолтное расписание, применяемое при полном отсутствии правил:
// будни 09:00-17:00, суббота и воскресенье — выходные
const (
	DefaultWorkdayStart = types.TimeString("09:00")
	DefaultWorkdayEnd   = types.TimeString("17:00")
)

// Окно напоминаний: уведомляем клиента, если до начала встречи
// осталось не больше двух часов и она началась не раньше 15 минут назад
const (
	ReminderWindowMinutes = 120
	ReminderGraceMinutes  = 15
)

// Ограничения валидации
const (
	MaxReasonLength = 500
)

// ActiveStatuses статусы, при которых запись занимает слот
// Используется при фильтрации занятых слотов: отменённая запись слот освобождает.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
