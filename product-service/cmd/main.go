package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"demostore/pkg/logger"
	"demostore/pkg/metrics"
	"demostore/product-service/internal/app/products/config"
	"demostore/product-service/internal/app/products/entity"
	"demostore/product-service/internal/app/products/handler"
	"demostore/product-service/internal/app/products/repository"
)

func main() {
	// .env для локальной разработки, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("product-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("product-service", cfg.Log.Level)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Цены сериализуются как JSON числа, а не строки
	decimal.MarshalJSONWithoutQuotes = true

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	// Схема делегирована хранилищу
	if err := db.AutoMigrate(&entity.Category{}, &entity.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get database handle")
	}
	defer sqlDB.Close()

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// === ИНИЦИАЛИЗАЦИЯ ШЛЮЗОВ ХРАНЕНИЯ ===
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	// Каждый обработчик конструируется с явно внедренным шлюзом
	productHandler := handler.NewResourceHandler[entity.Product, *entity.Product](
		productRepo, "product", "/api/products",
	)
	categoryHandler := handler.NewResourceHandler[entity.Category, *entity.Category](
		categoryRepo, "category", "/api/categories",
	)
	categoryProductsHandler := handler.NewCategoryProductsHandler(categoryRepo, productRepo)

	router := handler.SetupRoutes(productHandler, categoryHandler, categoryProductsHandler, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Публикуем состояние пула соединений, пока сервис жив
	poolStatsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := sqlDB.Stats()
				metrics.RecordDbConnections("product-service", stats.Idle, stats.InUse)
			case <-poolStatsDone:
				return
			}
		}
	}()

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Product Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Product Service...")
	close(poolStatsDone)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Product Service stopped gracefully")
}

// connectDB открывает GORM соединение с PostgreSQL.
// Повторяет попытки при старте в Docker, когда база может быть еще не готова.
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			return db, nil
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
