package create_appointment

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
	activeCount int
	countErr    error
	createErr   error
	created     *domain.Appointment
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	result := *appt
	result.ID = 101
	result.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	result.UpdatedAt = result.CreatedAt
	m.created = &result
	return &result, nil
}

func (m *mockAppointmentRepo) CountActiveAt(_ context.Context, _ int64, _ time.Time, _ types.TimeString) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.activeCount, nil
}

type mockProfessionalRepo struct {
	professional *domain.Professional
	service      *domain.Service
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if m.professional == nil || m.professional.ID != id {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return m.professional, nil
}

func (m *mockProfessionalRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	if m.service == nil || m.service.ID != id {
		return nil, professionalRepo.ErrServiceNotFound
	}
	return m.service, nil
}

type mockScheduleResolver struct {
	window domain.DayWindow
	err    error
}

func (m *mockScheduleResolver) Resolve(_ context.Context, _ int64, _ time.Time) (domain.DayWindow, error) {
	return m.window, m.err
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

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// --- фикстуры ---

func openWindow() domain.DayWindow {
	return domain.DayWindow{
		Source:    domain.SourceWeekly,
		Available: true,
		Start:     "09:00",
		End:       "17:00",
	}
}

func newTestUseCase(
	apptRepo *mockAppointmentRepo,
	profRepo *mockProfessionalRepo,
	resolver *mockScheduleResolver,
	notifier *mockNotifier,
) *UseCase {
	uc := NewUseCase(apptRepo, profRepo, resolver, notifier, &mockTxManager{}, &noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:       1,
		ProfessionalID: 5,
		Date:           time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	notifier := &mockNotifier{}
	uc := newTestUseCase(apptRepo, profRepo, &mockScheduleResolver{window: openWindow()}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 100.0, resp.Price)

	// Уведомление уходит на user_id специалиста, не на его professional_id
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, int64(42), notifier.calls[0].userID)
}

func TestExecute_ServicePriceOverridesBase(t *testing.T) {
	serviceID := int64(7)
	apptRepo := &mockAppointmentRepo{}
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
		service:      &domain.Service{ID: 7, ProfessionalID: 5, Name: "Консультация", Price: 75},
	}
	uc := newTestUseCase(apptRepo, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	req := validRequest()
	req.ServiceID = &serviceID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 75.0, resp.Price)
	require.NotNil(t, resp.ServiceName)
	assert.Equal(t, "Консультация", *resp.ServiceName)
}

func TestExecute_ForeignServiceRejected(t *testing.T) {
	serviceID := int64(7)
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
		service:      &domain.Service{ID: 7, ProfessionalID: 99, Price: 75},
	}
	uc := newTestUseCase(&mockAppointmentRepo{}, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	req := validRequest()
	req.ServiceID = &serviceID

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{}, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	uc := newTestUseCase(&mockAppointmentRepo{}, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	req := validRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateUnavailable(t *testing.T) {
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	resolver := &mockScheduleResolver{window: domain.DayWindow{Source: domain.SourceOverride, Available: false}}
	uc := newTestUseCase(&mockAppointmentRepo{}, profRepo, resolver, &mockNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	uc := newTestUseCase(&mockAppointmentRepo{}, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	req := validRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotTakenByCount(t *testing.T) {
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	notifier := &mockNotifier{}
	uc := newTestUseCase(&mockAppointmentRepo{activeCount: 1}, profRepo, &mockScheduleResolver{window: openWindow()}, notifier)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, notifier.calls)
}

func TestExecute_SlotTakenOnInsert(t *testing.T) {
	// Гонка проиграна после проверки count, уникальный индекс вернул конфликт
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	repo := &mockAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc := newTestUseCase(repo, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ReasonPersisted(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	profRepo := &mockProfessionalRepo{
		professional: &domain.Professional{ID: 5, UserID: 42, Price: 100},
	}
	uc := newTestUseCase(apptRepo, profRepo, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	reason := "Первичная консультация"
	req := validRequest()
	req.Reason = &reason

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, apptRepo.created.Reason)
	assert.Equal(t, reason, *apptRepo.created.Reason)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, reason, *resp.Reason)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{}, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	long := make([]byte, domain.MaxReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}
	reason := string(long)

	req := validRequest()
	req.Reason = &reason

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{}, &mockScheduleResolver{window: openWindow()}, &mockNotifier{})

	req := validRequest()
	req.ClientID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
