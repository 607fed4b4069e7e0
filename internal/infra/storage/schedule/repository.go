package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/dbmetrics"
	"github.com/promeet/booking-service/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"professional_id",
	"day_of_week",
	"date",
	"is_available",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// buildUpsertWeeklyQuery строит upsert еженедельного правила
// Арбитр ON CONFLICT обязан дословно повторять предикат частичного индекса
// idx_schedule_rules_weekly, иначе Postgres не подберет индекс и запрос
// упадет на этапе планирования.
func buildUpsertWeeklyQuery(rule *domain.ScheduleRule) (string, []interface{}, error) {
	return psqlbuilder.Insert("schedule_rules").
		Columns(
			"professional_id",
			"day_of_week",
			"is_available",
			"start_time",
			"end_time",
		).
		Values(
			rule.ProfessionalID,
			rule.DayOfWeek,
			rule.IsAvailable,
			rule.StartTime,
			rule.EndTime,
		).
		Suffix(`ON CONFLICT (professional_id, day_of_week) WHERE date IS NULL DO UPDATE
			SET is_available = EXCLUDED.is_available,
			    start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
}

// buildUpsertOverrideQuery строит upsert переопределения на дату
// Арбитр повторяет предикат индекса idx_schedule_rules_override.
func buildUpsertOverrideQuery(rule *domain.ScheduleRule) (string, []interface{}, error) {
	return psqlbuilder.Insert("schedule_rules").
		Columns(
			"professional_id",
			"date",
			"is_available",
			"start_time",
			"end_time",
		).
		Values(
			rule.ProfessionalID,
			rule.Date,
			rule.IsAvailable,
			rule.StartTime,
			rule.EndTime,
		).
		Suffix(`ON CONFLICT (professional_id, date) WHERE date IS NOT NULL DO UPDATE
			SET is_available = EXCLUDED.is_available,
			    start_time = EXCLUDED.start_time,
			    end_time = EXCLUDED.end_time,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
}

// UpsertWeekly создает или обновляет еженедельное правило
// Инвариант "одно правило на (специалист, день недели)" держится на
// частичном уникальном индексе, поэтому upsert через ON CONFLICT.
func (r *Repository) UpsertWeekly(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertWeeklyQuery(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeekly - execute upsert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// UpsertOverride создает или обновляет переопределение на конкретную дату
func (r *Repository) UpsertOverride(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertOverrideQuery(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetOverride получает переопределение на точную дату
// Возвращает (nil, nil), если переопределения нет — отсутствие правила
// для резолвера не ошибка.
func (r *Repository) GetOverride(ctx context.Context, professionalID int64, date time.Time) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"professional_id": professionalID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetWeekly получает еженедельное правило на день недели
// Возвращает (nil, nil), если правила нет.
func (r *Repository) GetWeekly(ctx context.Context, professionalID int64, dayOfWeek int) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"professional_id": professionalID, "day_of_week": dayOfWeek}).
		Where("date IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListWeekly получает все еженедельные правила специалиста
func (r *Repository) ListWeekly(ctx context.Context, professionalID int64) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where("date IS NULL").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// ListOverridesFrom получает переопределения начиная с указанной даты
// unavailableOnly=true оставляет только закрытые дни (для подсказок календаря).
func (r *Repository) ListOverridesFrom(ctx context.Context, professionalID int64, from time.Time, unavailableOnly bool) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("schedule_rules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where("date IS NOT NULL").
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC")

	if unavailableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverridesFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// DeleteOverridesBefore удаляет устаревшие переопределения до указанной даты
// Хук для будущей чистки: по умолчанию переопределения хранятся бессрочно,
// на таймер это нигде не повешено.
func (r *Repository) DeleteOverridesBefore(ctx context.Context, professionalID int64, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_rules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where("date IS NOT NULL").
		Where(squirrel.Lt{"date": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOverridesBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует одну строку в модель правила
func (r *Repository) scanRule(row rowScanner) (*domain.ScheduleRule, error) {
	var rule domain.ScheduleRule
	var dayOfWeek sql.NullInt64
	var date sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.ProfessionalID,
		&dayOfWeek,
		&date,
		&rule.IsAvailable,
		&rule.StartTime,
		&rule.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dayOfWeek.Valid {
		d := int(dayOfWeek.Int64)
		rule.DayOfWeek = &d
	}
	if date.Valid {
		d := date.Time
		rule.Date = &d
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// scanRules сканирует результаты запроса в слайс правил
func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.ScheduleRule, error) {
	rules := make([]*domain.ScheduleRule, 0)

	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
