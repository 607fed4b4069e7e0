package reminder

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/metrics"
)

// Текст напоминания клиенту
const titleReminder = "Напоминание о консультации"

// Worker периодически рассылает напоминания о предстоящих консультациях
// Флаг notified захватывается условным UPDATE до отправки, поэтому при
// нескольких кандидатах на один тик каждая запись обрабатывается не более
// одного раза. Потерянный после захвата push не повторяется.
type Worker struct {
	appointments AppointmentRepository
	notifier     Notifier
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger

	interval time.Duration
	inFlight atomic.Bool
}

// NewWorker создает новый экземпляр воркера напоминаний
// metrics может быть nil, если метрики выключены.
func NewWorker(
	appointments AppointmentRepository,
	notifier Notifier,
	interval time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		appointments: appointments,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
		interval:     interval,
	}
}

// Run запускает цикл воркера и блокируется до отмены контекста
// Тики не накладываются: если предыдущий еще идет, очередной пропускается.
// Ошибка тика логируется, цикл продолжает работу.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("reminder worker started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			if !w.inFlight.CompareAndSwap(false, true) {
				w.logger.Warn("reminder tick skipped, previous tick still running")
				if w.metrics != nil {
					w.metrics.ReminderSkippedOverlap.Inc()
				}
				continue
			}

			if w.metrics != nil {
				w.metrics.ReminderTicksTotal.Inc()
			}
			if err := w.tick(ctx); err != nil {
				w.logger.Error("reminder tick failed: %v", err)
				if w.metrics != nil {
					w.metrics.ReminderTickErrors.Inc()
				}
			}

			w.inFlight.Store(false)
		}
	}
}

// tick обрабатывает подтвержденные записи на сегодня без отправленного напоминания
func (w *Worker) tick(ctx context.Context) error {
	now := w.timeProvider.Now()
	today := domain.DateUTC(now)

	candidates, err := w.appointments.GetConfirmedUnnotified(ctx, today)
	if err != nil {
		return fmt.Errorf("fetch candidates: %w", err)
	}

	for _, appt := range candidates {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.process(ctx, appt, now); err != nil {
			w.logger.Error("reminder: appointment=%d: %v", appt.ID, err)
		}
	}

	return nil
}

// process отправляет напоминание по одной записи, если она попадает в окно
func (w *Worker) process(ctx context.Context, appt *domain.Appointment, now time.Time) error {
	startsAt, err := appt.StartsAt()
	if err != nil {
		return fmt.Errorf("compute start: %w", err)
	}

	if !inReminderWindow(startsAt, now) {
		return nil
	}

	// Захватываем флаг до отправки: проигравший гонку тик просто молчит
	claimed, err := w.appointments.ClaimReminder(ctx, appt.ID)
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	if !claimed {
		return nil
	}

	relatedID := appt.ID
	message := fmt.Sprintf("Ваша консультация начнется в %s", appt.StartTime)
	if err := w.notifier.Send(ctx, appt.ClientID, titleReminder, message, domain.NotificationAppointment, &relatedID); err != nil {
		// Флаг уже взведен, повторной попытки не будет
		return fmt.Errorf("send after claim: %w", err)
	}

	if w.metrics != nil {
		w.metrics.ReminderSentTotal.Inc()
	}
	w.logger.Info("reminder sent: appointment=%d, client=%d, starts at %s",
		appt.ID, appt.ClientID, startsAt.Format(time.RFC3339))
	return nil
}

// inReminderWindow проверяет попадание старта в окно напоминаний:
// до начала осталось не больше двух часов, либо встреча началась
// не раньше пятнадцати минут назад
func inReminderWindow(startsAt, now time.Time) bool {
	delta := startsAt.Sub(now)
	return delta > -time.Duration(domain.ReminderGraceMinutes)*time.Minute &&
		delta <= time.Duration(domain.ReminderWindowMinutes)*time.Minute
}
