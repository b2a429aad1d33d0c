package config

import (
	"fmt"
	"log"
	"os"

	"github.com/jdu211109/UniLunch/models"
	"github.com/jdu211109/UniLunch/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := SeedUsers(DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Order{},
		&models.AccessToken{},
		&models.PasswordResetToken{},
	)
}

// SeedUsers creates the default admin and a regular test user if absent.
func SeedUsers(db *gorm.DB) error {
	seeds := []models.User{
		{Name: "Admin User", Email: "admin@unilunch.com", Role: models.RoleAdmin},
		{Name: "Regular User", Email: "user@unilunch.com", Role: models.RoleUser},
	}
	for _, seed := range seeds {
		hashed, err := utils.HashPassword("password123")
		if err != nil {
			return err
		}
		seed.Password = hashed
		if err := db.Where(models.User{Email: seed.Email}).
			Attrs(seed).
			FirstOrCreate(&models.User{}).Error; err != nil {
			return err
		}
	}
	return nil
}
