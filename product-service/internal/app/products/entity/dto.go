package entity

import "github.com/shopspring/decimal"

// Транспортные формы без навигационного цикла Product<->Category.
// Ни один live handler их не использует; контракт за пределами
// объявленных полей не определен.

type ProductDTO struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

type CategoryDTO struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Products []ProductDTO `json:"products"`
}

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
