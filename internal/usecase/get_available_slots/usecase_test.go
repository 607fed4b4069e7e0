package get_available_slots

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

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.ProfessionalAppointmentsFilter
}

func (m *mockAppointmentRepo) GetByProfessionalWithFilter(_ context.Context, filter domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	return m.appointments, nil
}

type mockProfessionalRepo struct {
	exists bool
}

func (m *mockProfessionalRepo) GetByID(_ context.Context, id int64) (*domain.Professional, error) {
	if !m.exists {
		return nil, professionalRepo.ErrProfessionalNotFound
	}
	return &domain.Professional{ID: id, UserID: 42}, nil
}

type mockScheduleResolver struct {
	window domain.DayWindow
}

func (m *mockScheduleResolver) Resolve(_ context.Context, _ int64, _ time.Time) (domain.DayWindow, error) {
	return m.window, nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
}

func TestExecute_BookedSlotsExcluded(t *testing.T) {
	apptRepo := &mockAppointmentRepo{
		appointments: []*domain.Appointment{
			{StartTime: "10:00", Status: domain.StatusConfirmed},
			{StartTime: "14:00", Status: domain.StatusPending},
		},
	}
	resolver := &mockScheduleResolver{window: domain.DayWindow{
		Source:    domain.SourceDefault,
		Available: true,
		Start:     "09:00",
		End:       "17:00",
	}}
	uc := NewUseCase(apptRepo, &mockProfessionalRepo{exists: true}, resolver, &noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 5, Date: testDate()})
	require.NoError(t, err)

	assert.False(t, resp.DayOff)
	assert.Equal(t, domain.SourceDefault, resp.Source)
	assert.Equal(t, []types.TimeString{"09:00", "11:00", "12:00", "13:00", "15:00", "16:00"}, resp.Slots)

	// Отмененные записи не должны запрашиваться, они слот не держат
	assert.False(t, apptRepo.lastFilter.IncludeInactive)
	require.NotNil(t, apptRepo.lastFilter.Date)
	assert.Equal(t, testDate(), *apptRepo.lastFilter.Date)
}

func TestExecute_DayOff(t *testing.T) {
	resolver := &mockScheduleResolver{window: domain.DayWindow{
		Source:    domain.SourceOverride,
		Available: false,
	}}
	uc := NewUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{exists: true}, resolver, &noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProfessionalID: 5, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.DayOff)
	assert.Equal(t, domain.SourceOverride, resp.Source)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	resolver := &mockScheduleResolver{window: domain.DayWindow{Available: true, Start: "09:00", End: "17:00"}}
	uc := NewUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{}, resolver, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 5, Date: testDate()})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&mockAppointmentRepo{}, &mockProfessionalRepo{exists: true}, &mockScheduleResolver{}, &noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProfessionalID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProfessionalID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
