package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/types"
)

type mockAppointmentRepo struct {
	candidates []*domain.Appointment
	claimOK    bool

	claimedIDs []int64
}

func (m *mockAppointmentRepo) GetConfirmedUnnotified(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return m.candidates, nil
}

func (m *mockAppointmentRepo) ClaimReminder(_ context.Context, id int64) (bool, error) {
	m.claimedIDs = append(m.claimedIDs, id)
	return m.claimOK, nil
}

type mockNotifier struct {
	sent []sentNotification
}

type sentNotification struct {
	userID int64
	title  string
}

func (m *mockNotifier) Send(_ context.Context, userID int64, title, _ string, _ domain.NotificationType, _ *int64) error {
	m.sent = append(m.sent, sentNotification{userID: userID, title: title})
	return nil
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

// now = 2026-03-18 10:00 UTC для всех тестов
func testNow() time.Time {
	return time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)
}

func confirmedAt(id int64, start types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:        id,
		ClientID:  10,
		Date:      time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		Status:    domain.StatusConfirmed,
	}
}

func newTestWorker(repo *mockAppointmentRepo, notifier *mockNotifier) *Worker {
	w := NewWorker(repo, notifier, time.Minute, nil, &noopLogger{})
	w.timeProvider = &fakeTimeProvider{now: testNow()}
	return w
}

func TestTick_SendsReminderInWindow(t *testing.T) {
	// Старт через полтора часа, попадает в двухчасовое окно
	repo := &mockAppointmentRepo{
		candidates: []*domain.Appointment{confirmedAt(1, "11:30")},
		claimOK:    true,
	}
	notifier := &mockNotifier{}
	w := newTestWorker(repo, notifier)

	require.NoError(t, w.tick(context.Background()))

	assert.Equal(t, []int64{1}, repo.claimedIDs)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(10), notifier.sent[0].userID)
	assert.Equal(t, titleReminder, notifier.sent[0].title)
}

func TestTick_TooEarlyAndTooLate(t *testing.T) {
	repo := &mockAppointmentRepo{
		candidates: []*domain.Appointment{
			confirmedAt(1, "13:00"), // через 3 часа, еще рано
			confirmedAt(2, "09:30"), // началась 30 минут назад, уже поздно
		},
		claimOK: true,
	}
	notifier := &mockNotifier{}
	w := newTestWorker(repo, notifier)

	require.NoError(t, w.tick(context.Background()))

	// Записи вне окна не захватываются и остаются кандидатами на будущее
	assert.Empty(t, repo.claimedIDs)
	assert.Empty(t, notifier.sent)
}

func TestTick_ClaimLostNoSend(t *testing.T) {
	repo := &mockAppointmentRepo{
		candidates: []*domain.Appointment{confirmedAt(1, "11:00")},
		claimOK:    false,
	}
	notifier := &mockNotifier{}
	w := newTestWorker(repo, notifier)

	require.NoError(t, w.tick(context.Background()))

	assert.Equal(t, []int64{1}, repo.claimedIDs)
	assert.Empty(t, notifier.sent)
}

func TestInReminderWindow_Boundaries(t *testing.T) {
	now := testNow()

	// Ровно два часа до старта включается в окно
	assert.True(t, inReminderWindow(now.Add(2*time.Hour), now))
	assert.False(t, inReminderWindow(now.Add(2*time.Hour+time.Minute), now))

	// Началась 14 минут назад еще напоминаем, ровно 15 уже нет
	assert.True(t, inReminderWindow(now.Add(-14*time.Minute), now))
	assert.False(t, inReminderWindow(now.Add(-15*time.Minute), now))
}

func TestNewWorker_DefaultInterval(t *testing.T) {
	w := NewWorker(&mockAppointmentRepo{}, &mockNotifier{}, 0, nil, &noopLogger{})
	assert.Equal(t, time.Minute, w.interval)
}
