package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"gera-relatorio-backend/internal/store"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&store.DocumentRow{},
		&store.DefaultRow{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
