package utils

import (
	"fmt"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserRole{},
		&models.Course{},
		&models.CourseEnrollment{},
		&models.UserStreak{},
		&models.Event{},
		&models.EventRegistration{},
		&models.Internship{},
		&models.InternshipApplication{},
	)
}
