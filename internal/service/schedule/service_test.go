package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/internal/domain"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	"github.com/promeet/booking-service/pkg/types"
)

type mockScheduleRepo struct {
	override  *domain.ScheduleRule
	weeklyOne *domain.ScheduleRule
	weekly    []*domain.ScheduleRule
	overrides []*domain.ScheduleRule

	upserted             []*domain.ScheduleRule
	lastUnavailableOnly  bool
	lastOverridesFromDay time.Time
}

func (m *mockScheduleRepo) UpsertWeekly(_ context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	m.upserted = append(m.upserted, rule)
	return rule, nil
}

func (m *mockScheduleRepo) UpsertOverride(_ context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	m.upserted = append(m.upserted, rule)
	return rule, nil
}

func (m *mockScheduleRepo) GetOverride(_ context.Context, _ int64, _ time.Time) (*domain.ScheduleRule, error) {
	return m.override, nil
}

func (m *mockScheduleRepo) GetWeekly(_ context.Context, _ int64, _ int) (*domain.ScheduleRule, error) {
	return m.weeklyOne, nil
}

func (m *mockScheduleRepo) ListWeekly(_ context.Context, _ int64) ([]*domain.ScheduleRule, error) {
	return m.weekly, nil
}

func (m *mockScheduleRepo) ListOverridesFrom(_ context.Context, _ int64, from time.Time, unavailableOnly bool) ([]*domain.ScheduleRule, error) {
	m.lastOverridesFromDay = from
	m.lastUnavailableOnly = unavailableOnly
	return m.overrides, nil
}

type mockProfessionalRepo struct {
	professional *domain.Professional
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if m.professional == nil || m.professional.ID != id {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return m.professional, nil
}

func (m *mockProfessionalRepo) GetByUserID(_ context.Context, userID int64) (*domain.Professional, error) {
	if m.professional == nil || m.professional.UserID != userID {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return m.professional, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

const (
	profID     = int64(5)
	profUserID = int64(42)
)

func newTestService(repo *mockScheduleRepo) *Service {
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: profID, UserID: profUserID},
	}
	tp := &fakeTimeProvider{now: time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)}
	return NewService(repo, profRepo, tp, &noopLogger{})
}

func intPtr(v int) *int { return &v }

func TestResolve_OverrideWins(t *testing.T) {
	repo := &mockScheduleRepo{
		override: &domain.ScheduleRule{
			ProfessionalID: profID,
			IsAvailable:    false,
		},
		weeklyOne: &domain.ScheduleRule{
			ProfessionalID: profID,
			DayOfWeek:      intPtr(3),
			IsAvailable:    true,
			StartTime:      "09:00",
			EndTime:        "17:00",
		},
	}
	svc := newTestService(repo)

	window, err := svc.Resolve(context.Background(), profID, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceOverride, window.Source)
	assert.False(t, window.Available)
}

func TestResolve_DefaultWhenNoRules(t *testing.T) {
	svc := newTestService(&mockScheduleRepo{})

	// Среда
	window, err := svc.Resolve(context.Background(), profID, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceDefault, window.Source)
	assert.True(t, window.Available)
	assert.Equal(t, types.TimeString("09:00"), window.Start)
	assert.Equal(t, types.TimeString("17:00"), window.End)
}

func TestUpdateWeekly(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newTestService(repo)

	rules := []WeeklyRule{
		{DayOfWeek: 1, IsAvailable: true, StartTime: "10:00", EndTime: "18:00"},
		{DayOfWeek: 2, IsAvailable: false},
	}

	saved, err := svc.UpdateWeekly(context.Background(), profID, profUserID, rules)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Len(t, repo.upserted, 2)

	require.NotNil(t, repo.upserted[0].DayOfWeek)
	assert.Equal(t, 1, *repo.upserted[0].DayOfWeek)
	assert.Nil(t, repo.upserted[0].Date)
}

func TestUpdateWeekly_DuplicateDay(t *testing.T) {
	svc := newTestService(&mockScheduleRepo{})

	rules := []WeeklyRule{
		{DayOfWeek: 1, IsAvailable: true, StartTime: "10:00", EndTime: "18:00"},
		{DayOfWeek: 1, IsAvailable: false},
	}

	_, err := svc.UpdateWeekly(context.Background(), profID, profUserID, rules)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateWeekly_NotOwner(t *testing.T) {
	svc := newTestService(&mockScheduleRepo{})

	_, err := svc.UpdateWeekly(context.Background(), profID, 999, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSaveDateOverride(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newTestService(repo)

	override := DateOverride{
		Date:        time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC),
		IsAvailable: true,
		StartTime:   "12:00",
		EndTime:     "16:00",
	}

	saved, err := svc.SaveDateOverride(context.Background(), profID, profUserID, override)
	require.NoError(t, err)

	// Дата нормализуется к полуночи UTC
	require.NotNil(t, saved.Date)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), *saved.Date)
	assert.Nil(t, saved.DayOfWeek)
}

func TestSaveDateOverride_InvertedWindow(t *testing.T) {
	svc := newTestService(&mockScheduleRepo{})

	override := DateOverride{
		Date:        time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		IsAvailable: true,
		StartTime:   "16:00",
		EndTime:     "12:00",
	}

	_, err := svc.SaveDateOverride(context.Background(), profID, profUserID, override)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveDateOverride_UnavailableSkipsTimes(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newTestService(repo)

	override := DateOverride{
		Date:        time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		IsAvailable: false,
	}

	_, err := svc.SaveDateOverride(context.Background(), profID, profUserID, override)
	assert.NoError(t, err)
}

func TestListOffDays(t *testing.T) {
	closed := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)
	repo := &mockScheduleRepo{
		weekly: []*domain.ScheduleRule{
			{DayOfWeek: intPtr(1), IsAvailable: false},
			{DayOfWeek: intPtr(6), IsAvailable: true, StartTime: "10:00", EndTime: "14:00"},
		},
		overrides: []*domain.ScheduleRule{
			{Date: &closed, IsAvailable: false},
		},
	}
	svc := newTestService(repo)

	off, err := svc.ListOffDays(context.Background(), profID)
	require.NoError(t, err)

	// Понедельник закрыт правилом, воскресенье дефолтом; суббота открыта правилом
	assert.ElementsMatch(t, []int{0, 1}, off.Weekdays)
	assert.Equal(t, []time.Time{closed}, off.Dates)

	// Запрашиваются только закрытые переопределения начиная с сегодня
	assert.True(t, repo.lastUnavailableOnly)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), repo.lastOverridesFromDay)
}

func TestGetSchedule(t *testing.T) {
	repo := &mockScheduleRepo{
		weekly: []*domain.ScheduleRule{
			{DayOfWeek: intPtr(1), IsAvailable: true, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	svc := newTestService(repo)

	weekly, overrides, err := svc.GetSchedule(context.Background(), profID)
	require.NoError(t, err)
	assert.Len(t, weekly, 1)
	assert.Empty(t, overrides)
	assert.False(t, repo.lastUnavailableOnly)
}

func TestResolve_ProfessionalAgnostic(t *testing.T) {
	// Resolve не проверяет существование специалиста, это делают вызывающие
	svc := newTestService(&mockScheduleRepo{})

	_, err := svc.Resolve(context.Background(), 999, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
}
