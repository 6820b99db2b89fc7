package models

import "time"

// Wishlist is a saved room collection with an optional planned stay
// (check-in/out window and party size) used to filter member rooms
// through the availability checker.
type Wishlist struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Title    string `gorm:"not null" json:"title"`
	IsPublic bool   `gorm:"default:true" json:"is_public"`

	CheckIn  *time.Time `gorm:"type:date" json:"check_in,omitempty"`
	CheckOut *time.Time `gorm:"type:date" json:"check_out,omitempty"`
	Adults   int        `gorm:"not null;default:1" json:"adults"`
	Kids     int        `gorm:"not null;default:0" json:"kids"`
	Infants  int        `gorm:"not null;default:0" json:"infants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Rooms []WishlistRoom `gorm:"foreignKey:WishlistID" json:"rooms,omitempty"`
}

// GuestCount is the party size that counts against room capacity.
// Infants do not take a berth.
func (w Wishlist) GuestCount() int {
	return w.Adults + w.Kids
}

type WishlistRoom struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WishlistID uint      `gorm:"not null;index:idx_wishlist_room,unique" json:"wishlist_id"`
	RoomID     uint      `gorm:"not null;index:idx_wishlist_room,unique" json:"room_id"`
	CreatedAt  time.Time `json:"created_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
