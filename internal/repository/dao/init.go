package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Horse{},
		&Lesson{},
		&Event{},
		&EventParticipant{},
		&EventWaitlist{},
		&Equipment{},
		&Payment{},
	)
}
