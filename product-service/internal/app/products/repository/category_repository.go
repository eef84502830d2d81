package repository

import (
	"context"
	"errors"
	"fmt"

	"demostore/pkg/metrics"
	"demostore/product-service/internal/app/products/entity"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый шлюз категорий
func NewCategoryRepository(db *gorm.DB) CategoryGateway {
	return &categoryRepository{db: db}
}

// Create вставляет новую категорию, идентификатор назначает база
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "categories")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(category)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create category: %w", result.Error)
	}

	return nil
}

// GetByID получает категорию по ID
func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var category entity.Category
	result := r.db.WithContext(ctx).First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get category: %w", result.Error)
	}

	return &category, nil
}

// GetAll получает все категории
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")
	defer timer.ObserveDuration()

	var categories []entity.Category
	result := r.db.WithContext(ctx).Find(&categories)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get categories: %w", result.Error)
	}

	return categories, nil
}

// Update полностью заменяет строку категории.
// Ноль затронутых строк перепроверяется через Exists, как и для товаров.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "categories")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name": category.Name,
		})

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, category.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}

	return nil
}

// Delete удаляет категорию по ID.
// Ссылочную целостность с товарами обеспечивает FK constraint в базе.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "categories")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists проверяет наличие строки с данным ID
func (r *categoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Category{}).Where("id = ?", id).Count(&count)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return false, fmt.Errorf("failed to check category existence: %w", result.Error)
	}

	return count > 0, nil
}
