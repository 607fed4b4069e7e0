package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/internal/domain"
	appointmentRepo "github.com/promeet/booking-service/internal/infra/storage/appointment"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	"github.com/promeet/booking-service/pkg/types"
)

// --- моки ---

type mockAppointmentRepo struct {
	appt *domain.Appointment

	applyErr error

	updateStatusCalls []domain.AppointmentStatus
	declineReason     *string
	declineCalled     bool
	setSuggestionDate *time.Time
	applyCalled       bool
	clearCalled       bool
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if m.appt == nil || m.appt.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	// Сервис мутирует возвращенную запись, отдаем копию как это делает репозиторий
	appt := *m.appt
	return &appt, nil
}

func (m *mockAppointmentRepo) GetByClientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return []*domain.Appointment{m.appt}, nil
}

func (m *mockAppointmentRepo) GetByProfessionalWithFilter(_ context.Context, _ domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	return []*domain.Appointment{m.appt}, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	m.updateStatusCalls = append(m.updateStatusCalls, status)
	return nil
}

func (m *mockAppointmentRepo) Decline(_ context.Context, _ int64, reason *string) error {
	m.declineCalled = true
	m.declineReason = reason
	return nil
}

func (m *mockAppointmentRepo) SetSuggestion(_ context.Context, _ int64, date time.Time, _ types.TimeString) error {
	m.setSuggestionDate = &date
	return nil
}

func (m *mockAppointmentRepo) ApplySuggestion(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applyCalled = true
	return nil
}

func (m *mockAppointmentRepo) ClearSuggestion(_ context.Context, _ int64) error {
	m.clearCalled = true
	return nil
}

type mockProfessionalRepo struct {
	professionals []*domain.Professional
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	for _, p := range m.professionals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, professionalRepo.ErrProfessionalNotFound
}

func (m *mockProfessionalRepo) GetByUserID(_ context.Context, userID int64) (*domain.Professional, error) {
	for _, p := range m.professionals {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, professionalRepo.ErrProfessionalNotFound
}

type mockNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	userID int64
	title  string
}

func (m *mockNotifier) Send(_ context.Context, userID int64, title, _ string, _ domain.NotificationType, _ *int64) error {
	m.calls = append(m.calls, notifyCall{userID: userID, title: title})
	return nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

const (
	clientUserID = int64(10)
	profUserID   = int64(42)
	profID       = int64(5)
	apptID       = int64(101)
)

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:             apptID,
		ClientID:       clientUserID,
		ProfessionalID: profID,
		Date:           time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "11:00",
		Status:         domain.StatusPending,
	}
}

func newTestService(repo *mockAppointmentRepo, notifier *mockNotifier) *Service {
	profRepo := &mockProfessionalRepo{
		professionals: []*domain.Professional{{ID: profID, UserID: profUserID}},
	}
	return NewService(repo, profRepo, notifier, &noopLogger{})
}

// --- тесты ---

func TestAccept(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	appt, err := svc.Accept(context.Background(), apptID, profUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.updateStatusCalls)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, clientUserID, notifier.calls[0].userID)
	assert.Equal(t, titleConfirmed, notifier.calls[0].title)
}

func TestAccept_WrongStatus(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &mockAppointmentRepo{appt: appt}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Accept(context.Background(), apptID, profUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.updateStatusCalls)
	assert.Empty(t, notifier.calls)
}

func TestAccept_ForeignProfessional(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := NewService(repo, &mockProfessionalRepo{
		professionals: []*domain.Professional{{ID: 99, UserID: 77}},
	}, &mockNotifier{}, &noopLogger{})

	_, err := svc.Accept(context.Background(), apptID, 77)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAccept_NotFound(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{}, &mockNotifier{})

	_, err := svc.Accept(context.Background(), apptID, profUserID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDecline_WithReason(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	reason := "болезнь"
	appt, err := svc.Decline(context.Background(), apptID, profUserID, &reason)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCanceled, appt.Status)
	assert.True(t, repo.declineCalled)
	require.NotNil(t, repo.declineReason)
	assert.Equal(t, reason, *repo.declineReason)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, titleDeclined, notifier.calls[0].title)
}

func TestDecline_ReasonTooLong(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	svc := newTestService(repo, &mockNotifier{})

	long := make([]byte, domain.MaxReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}
	reason := string(long)

	_, err := svc.Decline(context.Background(), apptID, profUserID, &reason)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, repo.declineCalled)
}

func TestSuggestNewTime(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &mockAppointmentRepo{appt: appt}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	date := time.Date(2026, 3, 20, 15, 30, 0, 0, time.UTC)
	result, err := svc.SuggestNewTime(context.Background(), apptID, profUserID, date, "12:00")
	require.NoError(t, err)

	// Статус не меняется, пока клиент не ответил
	assert.Equal(t, domain.StatusConfirmed, result.Status)
	assert.True(t, result.IsRescheduleRequested)
	require.NotNil(t, result.SuggestedDate)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), *result.SuggestedDate)

	// В репозиторий уходит нормализованная дата
	require.NotNil(t, repo.setSuggestionDate)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), *repo.setSuggestionDate)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, clientUserID, notifier.calls[0].userID)
	assert.Equal(t, titleSuggested, notifier.calls[0].title)
}

func TestSuggestNewTime_TerminalStatus(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCompleted
	svc := newTestService(&mockAppointmentRepo{appt: appt}, &mockNotifier{})

	_, err := svc.SuggestNewTime(context.Background(), apptID, profUserID,
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), "12:00")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func suggestedAppointment() *domain.Appointment {
	appt := pendingAppointment()
	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	start := types.TimeString("12:00")
	appt.SuggestedDate = &date
	appt.SuggestedStartTime = &start
	appt.IsRescheduleRequested = true
	return appt
}

func TestAcceptSuggestion(t *testing.T) {
	repo := &mockAppointmentRepo{appt: suggestedAppointment()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	appt, err := svc.AcceptSuggestion(context.Background(), apptID, clientUserID)
	require.NoError(t, err)

	assert.True(t, repo.applyCalled)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), appt.Date)
	assert.Equal(t, types.TimeString("12:00"), appt.StartTime)
	assert.Equal(t, types.TimeString("13:00"), appt.EndTime)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Nil(t, appt.SuggestedDate)
	assert.Nil(t, appt.SuggestedStartTime)
	assert.False(t, appt.IsRescheduleRequested)

	// Уведомление уходит на user_id владельца профиля специалиста
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, profUserID, notifier.calls[0].userID)
	assert.Equal(t, titleSuggestionAccepted, notifier.calls[0].title)
}

func TestAcceptSuggestion_SlotTaken(t *testing.T) {
	repo := &mockAppointmentRepo{appt: suggestedAppointment(), applyErr: appointmentRepo.ErrSlotTaken}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.AcceptSuggestion(context.Background(), apptID, clientUserID)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, notifier.calls)
}

func TestAcceptSuggestion_NoPending(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: pendingAppointment()}, &mockNotifier{})

	_, err := svc.AcceptSuggestion(context.Background(), apptID, clientUserID)
	assert.ErrorIs(t, err, ErrNoSuggestionPending)
}

func TestAcceptSuggestion_NotClient(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: suggestedAppointment()}, &mockNotifier{})

	_, err := svc.AcceptSuggestion(context.Background(), apptID, profUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeclineSuggestion(t *testing.T) {
	repo := &mockAppointmentRepo{appt: suggestedAppointment()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	appt, err := svc.DeclineSuggestion(context.Background(), apptID, clientUserID)
	require.NoError(t, err)

	assert.True(t, repo.clearCalled)
	assert.False(t, appt.IsRescheduleRequested)
	// Исходные дата и время не тронуты
	assert.Equal(t, types.TimeString("10:00"), appt.StartTime)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, profUserID, notifier.calls[0].userID)
	assert.Equal(t, titleSuggestionDeclined, notifier.calls[0].title)
}

func TestDeclineSuggestion_NoPendingIsNoop(t *testing.T) {
	repo := &mockAppointmentRepo{appt: pendingAppointment()}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	appt, err := svc.DeclineSuggestion(context.Background(), apptID, clientUserID)
	require.NoError(t, err)

	assert.Equal(t, apptID, appt.ID)
	assert.False(t, repo.clearCalled)
	assert.Empty(t, notifier.calls)
}

func TestComplete(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &mockAppointmentRepo{appt: appt}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	result, err := svc.Complete(context.Background(), apptID, profUserID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, titleCompleted, notifier.calls[0].title)
}

func TestComplete_PendingRejected(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: pendingAppointment()}, &mockNotifier{})

	_, err := svc.Complete(context.Background(), apptID, profUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetByID_Access(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: pendingAppointment()}, &mockNotifier{})

	// Клиент записи
	_, err := svc.GetByID(context.Background(), apptID, clientUserID)
	assert.NoError(t, err)

	// Специалист записи
	_, err = svc.GetByID(context.Background(), apptID, profUserID)
	assert.NoError(t, err)

	// Посторонний пользователь
	_, err = svc.GetByID(context.Background(), apptID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByClient_OwnListOnly(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: pendingAppointment()}, &mockNotifier{})

	result, err := svc.GetByClient(context.Background(), clientUserID, clientUserID, nil)
	require.NoError(t, err)
	assert.Len(t, result, 1)

	_, err = svc.GetByClient(context.Background(), clientUserID, 999, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByProfessional_OwnerOnly(t *testing.T) {
	svc := newTestService(&mockAppointmentRepo{appt: pendingAppointment()}, &mockNotifier{})

	filter := domain.ProfessionalAppointmentsFilter{ProfessionalID: profID}
	result, err := svc.GetByProfessional(context.Background(), filter, profUserID)
	require.NoError(t, err)
	assert.Len(t, result, 1)

	_, err = svc.GetByProfessional(context.Background(), filter, clientUserID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
