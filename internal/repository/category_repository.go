package repository

import (
	"context"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context, from, size int) ([]*model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &CategoryRepositoryImpl{
		pool: pool,
	}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`
	err := r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		WHERE id = $1
	`

	var category model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context, from, size int) ([]*model.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY id ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, from, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2
		RETURNING id, name
	`

	err := r.pool.QueryRow(ctx, query, category.Name, category.ID).Scan(&category.ID, &category.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
