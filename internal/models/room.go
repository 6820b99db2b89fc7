package models

import (
	"time"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomTypeApartment RoomType = "apartment"
	RoomTypeHouse     RoomType = "house"
	RoomTypeBNB       RoomType = "bnb"
	RoomTypeVilla     RoomType = "villa"
	RoomTypeCaravan   RoomType = "caravan"
)

// Room is a bookable stay. MinStay/MaxStay are whole-night bounds on a
// single reservation; MaxStay 0 means unlimited. The rating fields are
// derived from reviewed reservations and are only ever written by the
// rating recompute; handlers must never set them directly.
type Room struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HostID   uint   `gorm:"not null;index" json:"host_id"`
	Title    string `gorm:"not null" json:"title"`
	Slug     string `gorm:"index" json:"slug"`
	Address  string `json:"address,omitempty"`
	State    string `gorm:"index" json:"state,omitempty"`

	Price     int            `gorm:"not null" json:"price"`
	Capacity  int            `gorm:"not null;default:2" json:"capacity"`
	RoomType  RoomType       `gorm:"type:varchar(20);not null;default:'apartment'" json:"room_type"`
	MinStay   int            `gorm:"not null;default:1" json:"min_stay"`
	MaxStay   int            `gorm:"not null;default:0" json:"max_stay"`
	Bedrooms  int            `gorm:"default:1" json:"bedrooms"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`

	Description string `json:"description,omitempty"`

	AccuracyRating      float64 `gorm:"default:0" json:"accuracy_rating"`
	LocationRating      float64 `gorm:"default:0" json:"location_rating"`
	CommunicationRating float64 `gorm:"default:0" json:"communication_rating"`
	CheckinRating       float64 `gorm:"default:0" json:"checkin_rating"`
	CleanRating         float64 `gorm:"default:0" json:"clean_rating"`
	ValueRating         float64 `gorm:"default:0" json:"value_rating"`
	TotalRating         float64 `gorm:"default:0" json:"total_rating"`

	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Host *User `gorm:"foreignKey:HostID" json:"host,omitempty"`
}

// RatingSummary is the derived rating block written back onto a room
// after each review, and onto a trip's RatingScore via Total.
type RatingSummary struct {
	Accuracy      float64 `json:"accuracy"`
	Location      float64 `json:"location"`
	Communication float64 `json:"communication"`
	Checkin       float64 `json:"checkin"`
	Clean         float64 `json:"clean"`
	Value         float64 `json:"value"`
	Total         float64 `json:"total"`
}
