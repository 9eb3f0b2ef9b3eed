package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sahar-naoui/version2/config"
	"github.com/sahar-naoui/version2/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate keeps the schema in sync. Split out so tests can run it against
// their own connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Vehicle{},
		&models.WorkSchedule{},
		&models.ParkingEntry{},
		&models.Alert{},
		&models.Absence{},
		&models.Complaint{},
		&models.Sanction{},
	)
}
