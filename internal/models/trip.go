package models

import "time"

// Trip is a host-led experience booked per schedule rather than per date
// range. RatingScore is derived by the rating recompute, like room ratings.
type Trip struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	HostID        uint    `gorm:"not null;index" json:"host_id"`
	Name          string  `gorm:"not null" json:"name"`
	Category      string  `gorm:"index" json:"category,omitempty"`
	State         string  `gorm:"index" json:"state,omitempty"`
	DurationHours int     `gorm:"not null;default:2" json:"duration_hours"`
	MaxGuests     int     `gorm:"not null;default:4" json:"max_guests"`
	Price         int     `gorm:"not null" json:"price"`
	Description   string  `json:"description,omitempty"`
	RatingScore   float64 `gorm:"default:0" json:"rating_score"`

	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Host *User `gorm:"foreignKey:HostID" json:"host,omitempty"`
}

// TripSchedule is one run of a trip. GuestCount is maintained under a row
// lock by the booking transaction and never exceeds Capacity.
type TripSchedule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripID     uint      `gorm:"not null;index" json:"trip_id"`
	StartAt    time.Time `gorm:"not null" json:"start_at"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	GuestCount int       `gorm:"not null;default:0" json:"guest_count"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Trip *Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}

// TripReservation claims seats on a schedule. It shares the reservation
// status machine and review scoring with room reservations.
type TripReservation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ScheduleID uint              `gorm:"not null;index" json:"schedule_id"`
	TripID     uint              `gorm:"not null;index" json:"trip_id"`
	UserID     uint              `gorm:"not null;index" json:"user_id"`
	Guests     int               `gorm:"not null;default:1" json:"guests"`
	Status     ReservationStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	ReviewScores
	ScoreAverage float64 `gorm:"default:0" json:"score_average"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Schedule *TripSchedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	Trip     *Trip         `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
