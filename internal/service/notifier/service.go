package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/promeet/booking-service/internal/domain"
	notificationRepo "github.com/promeet/booking-service/internal/infra/storage/notification"
)

// Service сервис уведомлений (Notification Sink)
// Сохраняет уведомление в БД и отправляет push в канал пользователя.
// Push строго best effort: его сбой логируется и проглатывается, чтобы
// никогда не откатывать уже зафиксированный переход статуса записи.
type Service struct {
	repo   NotificationRepository
	push   PushClient
	logger Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, push PushClient, logger Logger) *Service {
	return &Service{
		repo:   repo,
		push:   push,
		logger: logger,
	}
}

// Send создает уведомление и пытается доставить его в realtime-канал
// Ошибка возвращается только при сбое персистентности; ошибка push — нет.
func (s *Service) Send(ctx context.Context, userID int64, title, message string, nType domain.NotificationType, relatedID *int64) error {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      nType,
		RelatedID: relatedID,
	}

	if _, err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Send: failed to persist notification for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Send - persist notification: %v", ErrInternal, err)
	}

	// Персистентность уже состоялась; сбой доставки не всплывает наверх
	if err := s.push.Push(ctx, n.ID, userID, message); err != nil {
		s.logger.Warn("Send: push delivery failed for user=%d, notification=%s: %v", userID, n.ID, err)
	}

	s.logger.Info("Send: notification %s created for user=%d, type=%s", n.ID, userID, nType)
	return nil
}

// GetUserNotifications возвращает уведомления пользователя
func (s *Service) GetUserNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*domain.Notification, error) {
	notifications, err := s.repo.GetByUserID(ctx, userID, unreadOnly)
	if err != nil {
		s.logger.Error("GetUserNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserNotifications - repository error: %v", ErrInternal, err)
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, userID int64) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification %s not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: marked %d notifications read for user=%d", updated, userID)
	return updated, nil
}
