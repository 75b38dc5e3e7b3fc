package database

import (
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB connects, tunes the pool and migrates the schema. Any
// failure is fatal.
func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates the tables and the constraints gorm tags cannot express.
// It is safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Amenity{},
		&models.Place{},
		&models.PlacePhoto{},
		&models.Review{},
		&models.Booking{},
		&models.BookingEvent{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}

var constraints = []string{
	// Two confirmed stays of one place can never share a night.
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_confirmed_overlap') THEN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_confirmed_overlap
				EXCLUDE USING gist (place_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
				WHERE (status = 'confirmed');
		END IF;
	END
	$$`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_place_photos_one_primary
		ON place_photos (place_id) WHERE is_primary`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_place
		ON reviews (user_id, place_id)`,
}
