package professional

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/dbmetrics"
	"github.com/promeet/booking-service/pkg/psqlbuilder"
)

var professionalColumns = []string{
	"id",
	"user_id",
	"name",
	"job_title",
	"consultation_type",
	"price",
	"rating",
	"profile_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения профилей специалистов и их услуг
// CRUD профилей живет в другом сервисе; здесь только чтение, которое нужно
// ядру бронирования: цены и маршрутизация уведомлений.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста по ID
// Уведомления маршрутизируются через UserID из этой свежей строки,
// а не через снапшоты внутри записи.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	pro, err := r.scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	return pro, nil
}

// GetByUserID получает специалиста по ID владеющего пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	pro, err := r.scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan professional: %v", ErrScanRow, err)
	}

	return pro, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"name",
		"description",
		"price",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.ProfessionalID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanProfessional(row rowScanner) (*domain.Professional, error) {
	var pro domain.Professional
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&pro.ID,
		&pro.UserID,
		&pro.Name,
		&pro.JobTitle,
		&pro.ConsultationType,
		&pro.Price,
		&pro.Rating,
		&pro.ProfileActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	pro.CreatedAt = createdAt.Time
	pro.UpdatedAt = updatedAt.Time

	return &pro, nil
}
