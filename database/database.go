package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDatabase() {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=kwikwork TimeZone=Africa/Johannesburg",
		host, user, password, dbname, port, sslmode,
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Millisecond * 500,
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
		},
	)

	// TranslateError is required so the postgres driver maps unique
	// violations to gorm.ErrDuplicatedKey; the application duplicate
	// guard depends on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		PrepareStmt:    true,
		TranslateError: true,
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	DB = db
}

func MonitorDBConnections() {
	ticker := time.NewTicker(10 * time.Second)
	go func() {
		for range ticker.C {
			sqlDB, err := DB.DB()
			if err != nil {
				log.Printf("Failed to get database connection for monitoring: %v", err)
				continue
			}
			stats := sqlDB.Stats()
			if stats.WaitCount > 0 || stats.OpenConnections > 80 {
				log.Printf("DB pool: open=%d in_use=%d idle=%d wait_count=%d wait_duration=%v",
					stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount, stats.WaitDuration)
			}
		}
	}()
}
