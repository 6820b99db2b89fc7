package models

import "time"

// Message is one chat line between the guest and the host of a
// reservation. Delivery is best-effort over the broker; the row here is
// the source of truth for history.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"not null;index" json:"reservation_id"`
	AuthorID      uint      `gorm:"not null" json:"author_id"`
	IsHost        bool      `gorm:"default:false" json:"is_host"`
	Text          string    `gorm:"not null" json:"text"`
	CreatedAt     time.Time `json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
