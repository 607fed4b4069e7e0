package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/pkg/types"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(DateFormat, value)
	require.NoError(t, err)
	return date
}

func weeklyRule(day int, available bool, start, end types.TimeString) *ScheduleRule {
	return &ScheduleRule{
		ProfessionalID: 1,
		DayOfWeek:      &day,
		IsAvailable:    available,
		StartTime:      start,
		EndTime:        end,
	}
}

func overrideRule(date time.Time, available bool, start, end types.TimeString) *ScheduleRule {
	return &ScheduleRule{
		ProfessionalID: 1,
		Date:           &date,
		IsAvailable:    available,
		StartTime:      start,
		EndTime:        end,
	}
}

func TestResolveDayWindow_DefaultWeekday(t *testing.T) {
	// 2026-03-18 — среда
	date := mustDate(t, "2026-03-18")

	window := ResolveDayWindow(nil, nil, date)

	assert.Equal(t, SourceDefault, window.Source)
	assert.True(t, window.Available)
	assert.Equal(t, DefaultWorkdayStart, window.Start)
	assert.Equal(t, DefaultWorkdayEnd, window.End)
}

func TestResolveDayWindow_DefaultWeekend(t *testing.T) {
	// 2026-03-21 — суббота, 2026-03-22 — воскресенье
	for _, value := range []string{"2026-03-21", "2026-03-22"} {
		window := ResolveDayWindow(nil, nil, mustDate(t, value))
		assert.Equal(t, SourceDefault, window.Source)
		assert.False(t, window.Available, "weekend %s must be off by default", value)
	}
}

func TestResolveDayWindow_WeeklyBeatsDefault(t *testing.T) {
	// Суббота открыта еженедельным правилом
	date := mustDate(t, "2026-03-21")
	weekly := weeklyRule(int(time.Saturday), true, "10:00", "14:00")

	window := ResolveDayWindow(nil, weekly, date)

	assert.Equal(t, SourceWeekly, window.Source)
	assert.True(t, window.Available)
	assert.Equal(t, types.TimeString("10:00"), window.Start)
	assert.Equal(t, types.TimeString("14:00"), window.End)
}

func TestResolveDayWindow_OverrideBeatsWeekly(t *testing.T) {
	date := mustDate(t, "2026-03-18")
	weekly := weeklyRule(int(time.Wednesday), true, "09:00", "17:00")

	// Закрывающее переопределение побеждает открытое еженедельное правило
	closed := overrideRule(date, false, "", "")
	window := ResolveDayWindow(closed, weekly, date)
	assert.Equal(t, SourceOverride, window.Source)
	assert.False(t, window.Available)

	// И наоборот: открывающее переопределение побеждает закрытый день
	off := weeklyRule(int(time.Wednesday), false, "", "")
	open := overrideRule(date, true, "12:00", "16:00")
	window = ResolveDayWindow(open, off, date)
	assert.Equal(t, SourceOverride, window.Source)
	assert.True(t, window.Available)
	assert.Equal(t, types.TimeString("12:00"), window.Start)
}

func TestSlotGrid_DefaultWindow(t *testing.T) {
	window := DayWindow{
		Source:    SourceDefault,
		Available: true,
		Start:     "09:00",
		End:       "17:00",
	}

	slots := window.SlotGrid()

	require.Len(t, slots, 8)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:00"), slots[7])
}

func TestSlotGrid_PartialLastHourExcluded(t *testing.T) {
	// 10:00-12:30 дает только 10:00 и 11:00, неполный час не слот
	window := DayWindow{Available: true, Start: "10:00", End: "12:30"}

	slots := window.SlotGrid()

	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slots)
}

func TestSlotGrid_InvertedWindow(t *testing.T) {
	window := DayWindow{Available: true, Start: "17:00", End: "09:00"}

	assert.Empty(t, window.SlotGrid())
}

func TestSlotGrid_Unavailable(t *testing.T) {
	window := DayWindow{Available: false, Start: "09:00", End: "17:00"}

	assert.Empty(t, window.SlotGrid())
}

func TestContainsSlot(t *testing.T) {
	window := DayWindow{Available: true, Start: "09:00", End: "17:00"}

	assert.True(t, window.ContainsSlot("09:00"))
	assert.True(t, window.ContainsSlot("16:00"))
	assert.False(t, window.ContainsSlot("17:00"))
	assert.False(t, window.ContainsSlot("09:30"))
	assert.False(t, window.ContainsSlot("08:00"))
}

func TestActiveStatuses_MatchIsActive(t *testing.T) {
	// Список для SQL-фильтров занятых слотов обязан совпадать с предикатом IsActive
	all := []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled}

	for _, status := range all {
		appt := &Appointment{Status: status}
		inList := false
		for _, active := range ActiveStatuses {
			if active == status {
				inList = true
			}
		}
		assert.Equal(t, appt.IsActive(), inList, "status %s", status)
	}
}

func TestAppointmentTransitions(t *testing.T) {
	pending := &Appointment{Status: StatusPending}
	confirmed := &Appointment{Status: StatusConfirmed}
	completed := &Appointment{Status: StatusCompleted}
	canceled := &Appointment{Status: StatusCanceled}

	assert.True(t, pending.CanBeAccepted())
	assert.False(t, confirmed.CanBeAccepted())

	assert.True(t, pending.CanBeDeclined())
	assert.True(t, confirmed.CanBeDeclined())
	assert.False(t, completed.CanBeDeclined())
	assert.False(t, canceled.CanBeDeclined())

	assert.True(t, confirmed.CanBeCompleted())
	assert.False(t, pending.CanBeCompleted())

	assert.True(t, completed.IsTerminal())
	assert.True(t, canceled.IsTerminal())
	assert.False(t, pending.IsTerminal())

	// Отмененная запись освобождает слот
	assert.False(t, canceled.IsActive())
	assert.True(t, completed.IsActive())
}
