package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promeet/booking-service/internal/domain"
	notificationRepo "github.com/promeet/booking-service/internal/infra/storage/notification"
)

type mockNotificationRepo struct {
	createErr   error
	markReadErr error

	created *domain.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = n
	return n, nil
}

func (m *mockNotificationRepo) GetByUserID(_ context.Context, _ int64, _ bool) ([]*domain.Notification, error) {
	return []*domain.Notification{m.created}, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, _ uuid.UUID, _ int64) error {
	return m.markReadErr
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, _ int64) (int64, error) {
	return 3, nil
}

type mockPushClient struct {
	pushErr error
	pushed  int
}

func (m *mockPushClient) Push(_ context.Context, _ uuid.UUID, _ int64, _ string) error {
	m.pushed++
	return m.pushErr
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func TestSend(t *testing.T) {
	repo := &mockNotificationRepo{}
	push := &mockPushClient{}
	svc := NewService(repo, push, &noopLogger{})

	relatedID := int64(101)
	err := svc.Send(context.Background(), 10, "Запись подтверждена", "текст", domain.NotificationAppointment, &relatedID)
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.NotEqual(t, uuid.Nil, repo.created.ID)
	assert.Equal(t, int64(10), repo.created.UserID)
	assert.Equal(t, domain.NotificationAppointment, repo.created.Type)
	assert.Equal(t, 1, push.pushed)
}

func TestSend_PushFailureSwallowed(t *testing.T) {
	repo := &mockNotificationRepo{}
	push := &mockPushClient{pushErr: errors.New("gateway down")}
	svc := NewService(repo, push, &noopLogger{})

	// Уведомление сохранено, сбой доставки не всплывает
	err := svc.Send(context.Background(), 10, "t", "m", domain.NotificationGeneral, nil)
	assert.NoError(t, err)
	assert.NotNil(t, repo.created)
}

func TestSend_PersistFailure(t *testing.T) {
	repo := &mockNotificationRepo{createErr: errors.New("db down")}
	push := &mockPushClient{}
	svc := NewService(repo, push, &noopLogger{})

	err := svc.Send(context.Background(), 10, "t", "m", domain.NotificationGeneral, nil)
	assert.ErrorIs(t, err, ErrInternal)
	// Без персистентности push не отправляется
	assert.Zero(t, push.pushed)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo := &mockNotificationRepo{markReadErr: notificationRepo.ErrNotificationNotFound}
	svc := NewService(repo, &mockPushClient{}, &noopLogger{})

	err := svc.MarkRead(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc := NewService(&mockNotificationRepo{}, &mockPushClient{}, &noopLogger{})

	updated, err := svc.MarkAllRead(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}
