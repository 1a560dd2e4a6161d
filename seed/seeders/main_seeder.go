package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	demoSeeder := NewDemoSeeder(s.db)
	if err := demoSeeder.SeedDemoUser(); err != nil {
		log.Printf("Demo user seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}
