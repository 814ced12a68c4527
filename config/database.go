package config

import (
	"fmt"
	"log"
	"os"

	"barnearbeid/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database handle.
var DB *gorm.DB

// ConnectDB opens the PostgreSQL connection and runs migrations.
func ConnectDB() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Message{},
		&models.Rating{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	DB = db
}
