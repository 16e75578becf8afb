package database

import (
	"github.com/jointventure/jointventure-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.TripStop{},
		&models.TripParticipant{},
		&models.TripMessage{},
	)
	if err != nil {
		return err
	}

	// Participant status is constrained at the database level as well: the
	// workflow only ever writes these three values, but the check keeps a
	// stray manual update from inventing a fourth state.
	if db.Migrator().HasTable(&models.TripParticipant{}) {
		db.Exec(`ALTER TABLE trip_participants DROP CONSTRAINT IF EXISTS trip_participants_status_check`)
		if err := db.Exec(`ALTER TABLE trip_participants ADD CONSTRAINT trip_participants_status_check CHECK (status IN ('Pending', 'Approved', 'Rejected'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Trip{}) {
		db.Exec(`ALTER TABLE trips DROP CONSTRAINT IF EXISTS trips_visibility_check`)
		if err := db.Exec(`ALTER TABLE trips ADD CONSTRAINT trips_visibility_check CHECK (visibility IN ('Public', 'Limited'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
