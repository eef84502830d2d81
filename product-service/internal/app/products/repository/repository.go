package repository

import (
	"context"
	"errors"

	"demostore/product-service/internal/app/products/entity"
)

var (
	// Стандартные ошибки шлюза для обработки в handler layer
	ErrNotFound = errors.New("not found")
	// ErrConflict возвращается, когда update столкнулся с конкурентной
	// модификацией существующей строки. Повторять запись молча небезопасно.
	ErrConflict = errors.New("concurrency conflict")
)

// Gateway описывает операции хранения для одного типа сущности.
// Единственный компонент, читающий и пишущий таблицу этой сущности.
type Gateway[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// ProductGateway расширяет Gateway выборкой товаров категории.
// Обратная коллекция Category.Products не хранится, а вычисляется запросом.
type ProductGateway interface {
	Gateway[entity.Product]
	GetByCategory(ctx context.Context, categoryID uint) ([]entity.Product, error)
}

// CategoryGateway операции хранения категорий
type CategoryGateway interface {
	Gateway[entity.Category]
}
