package handler

import (
	"net/http"
	"strconv"

	"demostore/product-service/internal/app/products/entity"
	"demostore/product-service/internal/app/products/repository"

	"github.com/gin-gonic/gin"
)

// CategoryProductsHandler отдает товары категории.
// Обратная коллекция не хранится в Category, а вычисляется запросом по FK.
type CategoryProductsHandler struct {
	categories repository.CategoryGateway
	products   repository.ProductGateway
}

// NewCategoryProductsHandler создает обработчик списка товаров категории
func NewCategoryProductsHandler(categories repository.CategoryGateway, products repository.ProductGateway) *CategoryProductsHandler {
	return &CategoryProductsHandler{
		categories: categories,
		products:   products,
	}
}

// List обрабатывает GET /api/categories/{id}/products
func (h *CategoryProductsHandler) List(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	exists, err := h.categories.Exists(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get category")
		return
	}
	if !exists {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	products, err := h.products.GetByCategory(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list category products")
		return
	}

	if products == nil {
		products = []entity.Product{}
	}

	c.JSON(http.StatusOK, products)
}
