package postgres

import (
	"Wordrush/logger"
	"Wordrush/models/postgres"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN builds the connection string from the POSTGRES_* variables
func DSN() string {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")

	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, database, sslMode())
}

func sslMode() string {
	if mode := os.Getenv("POSTGRES_SSLMODE"); mode != "" {
		return mode
	}
	return "disable"
}

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	return Open(DSN(), os.Getenv("VERBOSE_POSTGRES") == "true")
}

// Open connects to the given DSN through lib/pq and wraps it in GORM
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL connection: %w", err)
	}

	gormConfig := &gorm.Config{}
	if verbose {
		gormConfig.Logger = gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL with GORM: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging PostgreSQL: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Infof("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: needs postgres driver v1.4.0, see https://github.com/pilinux/gorest/issues/167#issuecomment-1947114560
	err := db.AutoMigrate(
		postgres.Room{},
		postgres.RoomPlayer{},
		postgres.RoundHistory{},
		postgres.UsedWord{})
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logger.Infof("PostgreSQL database migrated successfully")
	return nil
}
