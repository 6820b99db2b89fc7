package database

import (
	"log"

	"github.com/Team-FBI/WPS/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.Trip{},
		&models.TripSchedule{},
		&models.TripReservation{},
		&models.Wishlist{},
		&models.WishlistRoom{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial index covering the overlap query: only active rows block dates.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_room_active
		ON reservations (room_id, start_date, end_date)
		WHERE status = 'active'
	`)

	// At most one live claim per user on a trip schedule.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_trip_reservation_live
		ON trip_reservations (schedule_id, user_id)
		WHERE status IN ('pending', 'active')
	`)

	return db
}
