package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "resource_ratings"

// Repository репозиторий оценок ресурсов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет оценку; повторная оценка того же пользователя перезаписывает её
func (r *Repository) Upsert(ctx context.Context, rating *domain.Rating) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("resource_id", "user_id", "rating", "updated_at").
		Values(rating.ResourceID, rating.UserID, rating.Value, rating.UpdatedAt.UTC()).
		Suffix("ON CONFLICT (resource_id, user_id) DO UPDATE SET rating = EXCLUDED.rating, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}
	return nil
}

// GetUserRating возвращает оценку пользователя или ErrRatingNotFound
func (r *Repository) GetUserRating(ctx context.Context, resourceID, userID string) (*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "updated_at").
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserRating - build select query: %v", ErrBuildQuery, err)
	}

	rating := &domain.Rating{ResourceID: resourceID, UserID: userID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating.Value, &rating.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: resource=%s user=%s", ErrRatingNotFound, resourceID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserRating - scan: %w", ErrScanRow, err)
	}
	return rating, nil
}

// GetStats считает среднее и количество оценок ресурса
func (r *Repository) GetStats(ctx context.Context, resourceID string) (domain.RatingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(rating), 0)", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()
	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	var sum, count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum, &count); err != nil {
		return domain.RatingStats{}, fmt.Errorf("%w: GetStats - scan: %w", ErrScanRow, err)
	}
	return domain.NewRatingStats(sum, count), nil
}
