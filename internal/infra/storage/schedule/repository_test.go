package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/internal/domain"
)

// Арбитры ON CONFLICT должны дословно совпадать с предикатами частичных
// индексов из миграции (idx_schedule_rules_weekly / idx_schedule_rules_override),
// иначе Postgres не выведет подходящий индекс и upsert упадет на планировании.

func TestBuildUpsertWeeklyQuery_ArbiterMatchesIndex(t *testing.T) {
	day := 3
	rule := &domain.ScheduleRule{
		ProfessionalID: 5,
		DayOfWeek:      &day,
		IsAvailable:    true,
		StartTime:      "09:00",
		EndTime:        "17:00",
	}

	query, args, err := buildUpsertWeeklyQuery(rule)
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT (professional_id, day_of_week) WHERE date IS NULL DO UPDATE")
	assert.Contains(t, query, "RETURNING id, created_at, updated_at")
	assert.Len(t, args, 5)
}

func TestBuildUpsertOverrideQuery_ArbiterMatchesIndex(t *testing.T) {
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	rule := &domain.ScheduleRule{
		ProfessionalID: 5,
		Date:           &date,
		IsAvailable:    false,
	}

	query, args, err := buildUpsertOverrideQuery(rule)
	require.NoError(t, err)

	// Предикат именно по date: условие по другой колонке (day_of_week IS NULL)
	// Postgres при выводе арбитра не принимает, CHECK-констрейнты не учитываются
	assert.Contains(t, query, "ON CONFLICT (professional_id, date) WHERE date IS NOT NULL DO UPDATE")
	assert.NotContains(t, query, "day_of_week IS NULL DO UPDATE")
	assert.Len(t, args, 5)
}
