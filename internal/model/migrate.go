package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей каталога исполнителей.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ServiceProvider{},
		&Skill{},
		&AvailabilityRange{},
		&Review{},
	)
}
