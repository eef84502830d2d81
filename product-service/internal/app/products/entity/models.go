package entity

import (
	"github.com/shopspring/decimal"
)

// Category представляет категорию товаров
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар в каталоге
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CategoryID    uint            `json:"categoryId" gorm:"not null" validate:"required"`
	Category      *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"` // Навигационная ссылка, не владение
	Name          string          `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description   string          `json:"description,omitempty" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"` // Цена в базовой валюте (USD)
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty" gorm:"column:image_url"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// ResourceID возвращает идентификатор, назначенный хранилищем
func (c *Category) ResourceID() uint { return c.ID }

// SetResourceID устанавливает идентификатор (0 перед вставкой)
func (c *Category) SetResourceID(id uint) { c.ID = id }

// ResourceID возвращает идентификатор, назначенный хранилищем
func (p *Product) ResourceID() uint { return p.ID }

// SetResourceID устанавливает идентификатор (0 перед вставкой)
func (p *Product) SetResourceID(id uint) { p.ID = id }

// Resource реализуется сущностями с системным идентификатором
type Resource interface {
	ResourceID() uint
	SetResourceID(id uint)
}
