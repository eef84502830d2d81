package repository

import (
	"context"
	"errors"
	"fmt"

	"demostore/pkg/metrics"
	"demostore/product-service/internal/app/products/entity"

	"gorm.io/gorm"
)

const serviceName = "product-service"

type productRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewProductRepository создает новый шлюз товаров
func NewProductRepository(db *gorm.DB) ProductGateway {
	return &productRepository{db: db}
}

// Create вставляет новый товар, идентификатор назначает база
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "products")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Omit("Category").Create(product)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create product: %w", result.Error)
	}

	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get product: %w", result.Error)
	}

	return &product, nil
}

// GetAll получает все товары без фильтрации и пагинации
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var products []entity.Product
	result := r.db.WithContext(ctx).Find(&products)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get products: %w", result.Error)
	}

	return products, nil
}

// GetByCategory получает товары указанной категории
func (r *productRepository) GetByCategory(ctx context.Context, categoryID uint) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var products []entity.Product
	result := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&products)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get products by category: %w", result.Error)
	}

	return products, nil
}

// Update полностью заменяет строку товара (PUT-семантика).
// Если база сообщила о нуле затронутых строк, перепроверяем существование:
// строки нет - ErrNotFound, строка есть - ErrConflict (конкурентная запись).
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"category_id":    product.CategoryID,
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"stock_quantity": product.StockQuantity,
			"image_url":      product.ImageURL,
		})

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, product.ID)
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

// Delete удаляет товар по ID
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "products")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists проверяет наличие строки с данным ID
func (r *productRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", id).Count(&count)

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return false, fmt.Errorf("failed to check product existence: %w", result.Error)
	}

	return count > 0, nil
}
