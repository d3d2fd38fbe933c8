// Package gormdb provides the relational persistence layer behind the
// repository ports, backed by GORM over SQLite.
package gormdb

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/httptim/clientportal/internal/core/domain"
)

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every portal entity.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Project{},
		&domain.Task{},
		&domain.Invoice{},
		&domain.LineItem{},
		&domain.Payment{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Testimonial{},
		&domain.PortfolioProject{},
		&domain.SiteConfiguration{},
		&domain.ContactSubmission{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
