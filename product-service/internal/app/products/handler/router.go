package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"demostore/pkg/logger"
	"demostore/pkg/metrics"
	"demostore/product-service/internal/app/products/config"
	"demostore/product-service/internal/app/products/entity"
)

// ProductHandler обработчик ресурса товаров
type ProductHandler = ResourceHandler[entity.Product, *entity.Product]

// CategoryHandler обработчик ресурса категорий
type CategoryHandler = ResourceHandler[entity.Category, *entity.Category]

// SetupRoutes настраивает все маршруты Product Service с использованием Gin
func SetupRoutes(
	products *ProductHandler,
	categories *CategoryHandler,
	categoryProducts *CategoryProductsHandler,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("product-service"))

	// CORS настройки
	router.Use(corsMiddleware(cfg))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "product-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Products endpoints
	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", products.List)          // Список всех товаров
		productRoutes.GET("/:id", products.Get)       // Товар по ID
		productRoutes.POST("", products.Create)       // Создать товар
		productRoutes.PUT("/:id", products.Update)    // Полная замена товара
		productRoutes.DELETE("/:id", products.Delete) // Удалить товар
	}

	// Categories endpoints
	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("", categories.List)
		categoryRoutes.GET("/:id", categories.Get)
		categoryRoutes.POST("", categories.Create)
		categoryRoutes.PUT("/:id", categories.Update)
		categoryRoutes.DELETE("/:id", categories.Delete)

		// Товары категории вычисляются запросом по foreign key
		categoryRoutes.GET("/:id/products", categoryProducts.List)
	}

	return router
}

// corsMiddleware строит CORS политику из конфигурации.
// Без настроенных origins: в development разрешаем все,
// в production устанавливаем явный deny-all.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders: []string{"Link", "Location"},
		MaxAge:        300,
	}

	switch {
	case len(cfg.CORS.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		corsConfig.AllowCredentials = true
	case cfg.IsProduction():
		logger.Warn().Msg("CORS: no allowed origins configured, denying all cross-origin requests")
		corsConfig.AllowOriginFunc = func(origin string) bool { return false }
	default:
		logger.Warn().Msg("CORS: no allowed origins configured, allowing any origin in development")
		corsConfig.AllowAllOrigins = true
	}

	return cors.New(corsConfig)
}
