package model

import "gorm.io/gorm"

// AutoMigrate migrates every entity of the appointment core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Appointment{},
		&Event{},
	)
}
