package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/services/repositories"
)

type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string

	users   *repositories.UserRepository
	ledgers *repositories.LedgerRepository
	todos   *repositories.TodoRepository
	advice  *repositories.AdviceRepository
}

const SQL_SVC = "sql_svc"

func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to raw db handle
func (ds *SqlService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqlService) Users() *repositories.UserRepository {
	return ds.users
}

func (ds *SqlService) Ledgers() *repositories.LedgerRepository {
	return ds.ledgers
}

func (ds *SqlService) Todos() *repositories.TodoRepository {
	return ds.todos
}

func (ds *SqlService) Advice() *repositories.AdviceRepository {
	return ds.advice
}

func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "postgres"
	}

	switch ds.driver {
	case "sqlite":
		ds.dsn = os.Getenv("DB_DATABASE")
		if ds.dsn == "" {
			ds.dsn = "purrday.db"
		}
	default:
		ds.dsn = os.Getenv("DATABASE_URL")
		if ds.dsn == "" {
			host := os.Getenv("DB_HOST")
			if host == "" {
				host = "localhost"
			}
			port := os.Getenv("DB_PORT")
			if port == "" {
				port = "5432"
			}
			user := os.Getenv("DB_USER")
			if user == "" {
				user = "postgres"
			}
			password := os.Getenv("DB_PASSWORD")
			if password == "" {
				password = "postgres"
			}
			dbname := os.Getenv("DB_NAME")
			if dbname == "" {
				dbname = "purrday_api"
			}
			sslmode := os.Getenv("DB_SSLMODE")
			if sslmode == "" {
				sslmode = "disable"
			}

			ds.dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
				host, user, password, dbname, port, sslmode)
		}
	}

	return ds.DefaultService.Configure(ctx)
}

// Start opens the connection, migrates any tables that have changed since
// last runtime and wires the repositories.
func (ds *SqlService) Start() (err error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	}

	if ds.driver == "sqlite" {
		ds.db, err = gorm.Open(sqlite.Open(ds.dsn), cfg)
		if err != nil {
			return err
		}
	} else {
		if err = ds.connectPostgres(cfg); err != nil {
			return err
		}
	}

	if err = ds.migrate(); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.initRepos()

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) connectPostgres(cfg *gorm.Config) error {
	maxRetries := 10
	retryDelay := time.Second

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ds.db, err = gorm.Open(postgres.Open(ds.dsn), cfg)
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					return nil
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}
	return err
}

func (ds *SqlService) migrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Ledger{},
		&model.MoodEntry{},
		&model.Todo{},
		&model.DailyAdvice{},
	)
}

func (ds *SqlService) initRepos() {
	ds.users = repositories.NewUserRepository(ds.db)
	ds.ledgers = repositories.NewLedgerRepository(ds.db)
	ds.todos = repositories.NewTodoRepository(ds.db)
	ds.advice = repositories.NewAdviceRepository(ds.db)
}

func (ds *SqlService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable // 503
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
