package repository

import (
	"context"
	"testing"

	"demostore/product-service/internal/app/products/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Поведенческие тесты шлюзов поверх реальной in-memory SQLite базы.

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Одно соединение, иначе каждый коннект пула получает свою in-memory базу
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Category{}, &entity.Product{}))

	return db
}

func TestCategoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	first := &entity.Category{Name: "Widgets"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, uint(1), first.ID)

	second := &entity.Category{Name: "Gadgets"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, uint(2), second.ID)
}

func TestCategoryRepository_GetByIDRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Widgets"}
	require.NoError(t, repo.Create(ctx, category))

	fetched, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, fetched.ID)
	assert.Equal(t, "Widgets", fetched.Name)
}

func TestCategoryRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	fetched, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, fetched)
}

func TestCategoryRepository_GetAllReturnsExactSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	categories, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "Widgets"}))
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "Gadgets"}))

	categories, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	names := map[string]int{}
	for _, c := range categories {
		names[c.Name]++
	}
	assert.Equal(t, map[string]int{"Widgets": 1, "Gadgets": 1}, names)
}

func TestCategoryRepository_UpdateReplacesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Widgets"}
	require.NoError(t, repo.Create(ctx, category))

	category.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, category))

	fetched, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
}

func TestCategoryRepository_UpdateMissingReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	err := repo.Update(context.Background(), &entity.Category{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_DeleteThenNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Widgets"}
	require.NoError(t, repo.Create(ctx, category))

	require.NoError(t, repo.Delete(ctx, category.ID))

	// Повторное удаление и чтение сообщают об отсутствии строки
	assert.ErrorIs(t, repo.Delete(ctx, category.ID), ErrNotFound)
	_, err := repo.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Widgets"}
	require.NoError(t, repo.Create(ctx, category))

	exists, err := repo.Exists(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

// Полная замена товара: опущенные клиентом поля записываются своими
// нулевыми значениями, PUT-семантика без слияния.

func TestProductRepository_UpdateIsFullReplacement(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Widgets"}
	require.NoError(t, categories.Create(ctx, category))

	product := &entity.Product{
		CategoryID:    category.ID,
		Name:          "Sprocket",
		Description:   "Standard steel sprocket",
		Price:         decimal.NewFromFloat(9.99),
		StockQuantity: 10,
		ImageURL:      "https://cdn.example.com/sprocket.png",
	}
	require.NoError(t, products.Create(ctx, product))

	replacement := &entity.Product{
		ID:         product.ID,
		CategoryID: category.ID,
		Name:       "Sprocket",
		Price:      decimal.NewFromFloat(12.50),
		// Description, StockQuantity и ImageURL намеренно опущены
	}
	require.NoError(t, products.Update(ctx, replacement))

	fetched, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(12.50).Equal(fetched.Price))
	assert.Empty(t, fetched.Description)
	assert.Zero(t, fetched.StockQuantity)
	assert.Empty(t, fetched.ImageURL)
}

func TestProductRepository_GetByCategoryQuery(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	widgets := &entity.Category{Name: "Widgets"}
	gadgets := &entity.Category{Name: "Gadgets"}
	require.NoError(t, categories.Create(ctx, widgets))
	require.NoError(t, categories.Create(ctx, gadgets))

	require.NoError(t, products.Create(ctx, &entity.Product{
		CategoryID: widgets.ID, Name: "Sprocket", Price: decimal.NewFromFloat(9.99),
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		CategoryID: gadgets.ID, Name: "Doohickey", Price: decimal.NewFromFloat(3.00),
	}))

	found, err := products.GetByCategory(ctx, widgets.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sprocket", found[0].Name)

	found, err = products.GetByCategory(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, found)
}
