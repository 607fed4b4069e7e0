package schedule

import (
	"time"

	"github.com/promeet/booking-service/pkg/types"
)

// WeeklyRule еженедельное правило, присылаемое специалистом
type WeeklyRule struct {
	DayOfWeek   int // 0=воскресенье ... 6=суббота
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString
}

// DateOverride переопределение доступности на конкретную дату
type DateOverride struct {
	Date        time.Time
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString
}

// OffDays выходные специалиста: дни недели из еженедельных правил
// плюс будущие даты, закрытые переопределениями
type OffDays struct {
	Weekdays []int
	Dates    []time.Time
}
