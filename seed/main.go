package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, demo")
		dbPath   = flag.String("db", "", "SQLite database path (overrides DB_NAME env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Ledger{},
		&model.MoodEntry{},
		&model.Todo{},
		&model.DailyAdvice{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all", "demo":
		err = seeder.SeedAll()
	default:
		log.Fatalf("Unknown seed type: %s", *seedType)
	}

	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func openDatabase(dbPath string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	}

	if os.Getenv("DB_DRIVER") == "postgres" && dbPath == "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"), os.Getenv("DB_SSLMODE"))
		return gorm.Open(postgres.Open(dsn), config)
	}

	if dbPath == "" {
		dbPath = os.Getenv("DB_NAME")
		if dbPath == "" {
			dbPath = "purrday.db"
		}
	}
	return gorm.Open(sqlite.Open(dbPath), config)
}

func showHelp() {
	fmt.Println("Usage: seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -type string   Type of seeding: all, demo (default \"all\")")
	fmt.Println("  -db string     SQLite database path (overrides DB_NAME env var)")
	fmt.Println("  -help          Show this help message")
}
