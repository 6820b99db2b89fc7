package dto

import (
	"fmt"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
)

const dateLayout = "2006-01-02"

// ParseDate parses the wire date format used for stay boundaries.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

type CreateReservationRequest struct {
	UserID      uint   `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Guests      int    `json:"guests"`
	Description string `json:"description"`
}

type SubmitReviewRequest struct {
	UserID        uint `json:"user_id"`
	Accuracy      int  `json:"accuracy"`
	Location      int  `json:"location"`
	Communication int  `json:"communication"`
	Checkin       int  `json:"checkin"`
	Clean         int  `json:"clean"`
	Value         int  `json:"value"`
}

type CreateRoomRequest struct {
	HostID      uint            `json:"host_id"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	State       string          `json:"state"`
	Price       int             `json:"price"`
	Capacity    int             `json:"capacity"`
	RoomType    models.RoomType `json:"room_type"`
	MinStay     int             `json:"min_stay"`
	MaxStay     int             `json:"max_stay"`
	Bedrooms    int             `json:"bedrooms"`
	Amenities   []string        `json:"amenities"`
	Description string          `json:"description"`
}

type CreateTripRequest struct {
	HostID        uint   `json:"host_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	State         string `json:"state"`
	DurationHours int    `json:"duration_hours"`
	MaxGuests     int    `json:"max_guests"`
	Price         int    `json:"price"`
	Description   string `json:"description"`
}

type CreateScheduleRequest struct {
	HostID   uint      `json:"host_id"`
	StartAt  time.Time `json:"start_at"`
	Capacity int       `json:"capacity"`
}

type ReserveSeatsRequest struct {
	UserID uint `json:"user_id"`
	Guests int  `json:"guests"`
}

type CreateWishlistRequest struct {
	AuthorID uint   `json:"author_id"`
	Title    string `json:"title"`
	IsPublic *bool  `json:"is_public"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Kids     int    `json:"kids"`
	Infants  int    `json:"infants"`
}

type PostMessageRequest struct {
	AuthorID uint   `json:"author_id"`
	Text     string `json:"text"`
}

type RegisterUserRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
