package database

import (
	"log"

	"github.com/ucampus/campus-events-api/internal/config"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

// Migrate runs the schema migrations; shared with tests which open
// their own in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventDetail{},
		&models.EventRequirement{},
		&models.Registration{},
		&models.Payment{},
		&models.RequirementDocument{},
		&models.CourseMaterial{},
		&models.Grade{},
		&models.Attendance{},
		&models.APIKey{},
	)
}
