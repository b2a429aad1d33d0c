package services

import (
	"testing"

	"github.com/jdu211109/UniLunch/config"
	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points config.DB at a fresh in-memory database. A single
// connection is enforced so every query sees the same :memory: instance.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	t.Setenv("JWT_SECRET", "test-secret")
}

func createTestUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: "Test User", Email: email, Password: hash, Role: role}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestMeal(t *testing.T, name string, price float64) *models.Meal {
	t.Helper()
	meal := &models.Meal{
		Name:        name,
		Price:       price,
		Category:    "main",
		ImageURL:    "https://cdn.example.com/" + name + ".jpg",
		IsAvailable: true,
	}
	if err := config.DB.Create(meal).Error; err != nil {
		t.Fatalf("create meal: %v", err)
	}
	return meal
}
