package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an inbox row written by the broker consumer when a
// reservation or review event lands.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Kind      string         `gorm:"type:varchar(40);not null" json:"kind"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	Read      bool           `gorm:"default:false" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}
