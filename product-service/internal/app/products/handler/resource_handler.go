package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"demostore/product-service/internal/app/products/entity"
	"demostore/product-service/internal/app/products/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ResourceHandler отображает HTTP глаголы на вызовы шлюза хранения
// для одного типа сущности. Оба ресурса каталога обслуживаются одной
// параметризованной реализацией.
type ResourceHandler[T any, P interface {
	*T
	entity.Resource
}] struct {
	gateway   repository.Gateway[T]
	name      string // имя сущности для сообщений об ошибках
	basePath  string // базовый путь ресурса для Location header
	validator *validator.Validate
}

// NewResourceHandler создает обработчик ресурса поверх шлюза хранения
func NewResourceHandler[T any, P interface {
	*T
	entity.Resource
}](gateway repository.Gateway[T], name, basePath string) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{
		gateway:   gateway,
		name:      name,
		basePath:  basePath,
		validator: validator.New(),
	}
}

// List обрабатывает GET /api/{resource}
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	items, err := h.gateway.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list "+h.name+"s")
		return
	}

	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, items)
}

// Get обрабатывает GET /api/{resource}/{id}
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.gateway.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, capitalized(h.name)+" not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get "+h.name)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create обрабатывает POST /api/{resource}.
// Присланный клиентом id игнорируется, идентификатор назначает хранилище.
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(&item); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	P(&item).SetResourceID(0)

	if err := h.gateway.Create(c.Request.Context(), &item); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create "+h.name)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", h.basePath, P(&item).ResourceID()))
	c.JSON(http.StatusCreated, item)
}

// Update обрабатывает PUT /api/{resource}/{id}.
// Полная замена строки: id в теле обязан совпадать с id в пути.
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if P(&item).ResourceID() != id {
		respondError(c, http.StatusBadRequest, capitalized(h.name)+" ID in body does not match ID in path")
		return
	}

	if err := h.validator.Struct(&item); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	if err := h.gateway.Update(c.Request.Context(), &item); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, capitalized(h.name)+" not found")
		case errors.Is(err, repository.ErrConflict):
			respondError(c, http.StatusConflict, capitalized(h.name)+" was modified concurrently, refetch and retry")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update "+h.name)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete обрабатывает DELETE /api/{resource}/{id}
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.gateway.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, capitalized(h.name)+" not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete "+h.name)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID извлекает числовой идентификатор из пути
func (h *ResourceHandler[T, P]) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+h.name+" ID")
		return 0, false
	}
	return uint(id), true
}

// === HELPER FUNCTIONS ===

// respondError отправляет ответ об ошибке
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Field() + " validation failed"
	}
	return "Validation failed"
}

func capitalized(name string) string {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return name
	}
	return string(name[0]-'a'+'A') + name[1:]
}
