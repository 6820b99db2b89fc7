package dto

import (
	"time"

	"github.com/Team-FBI/WPS/internal/models"
)

type ReservationResponse struct {
	ID            uint                     `json:"id"`
	RoomID        uint                     `json:"room_id"`
	UserID        uint                     `json:"user_id"`
	ReferenceCode string                   `json:"reference_code"`
	StartDate     string                   `json:"start_date"`
	EndDate       string                   `json:"end_date"`
	Nights        int                      `json:"nights"`
	Guests        int                      `json:"guests"`
	Description   string                   `json:"description,omitempty"`
	Status        models.ReservationStatus `json:"status"`
	ScoreAverage  float64                  `json:"score_average"`
	CreatedAt     time.Time                `json:"created_at"`
}

type RatingResponse struct {
	Accuracy      float64 `json:"accuracy"`
	Location      float64 `json:"location"`
	Communication float64 `json:"communication"`
	Checkin       float64 `json:"checkin"`
	Clean         float64 `json:"clean"`
	Value         float64 `json:"value"`
	Total         float64 `json:"total"`
}

type RoomResponse struct {
	ID          uint            `json:"id"`
	HostID      uint            `json:"host_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Address     string          `json:"address,omitempty"`
	State       string          `json:"state,omitempty"`
	Price       int             `json:"price"`
	Capacity    int             `json:"capacity"`
	RoomType    models.RoomType `json:"room_type"`
	MinStay     int             `json:"min_stay"`
	MaxStay     int             `json:"max_stay"`
	Bedrooms    int             `json:"bedrooms"`
	Description string          `json:"description,omitempty"`
	Rating      RatingResponse  `json:"rating"`
	Active      bool            `json:"active"`
}

type TripResponse struct {
	ID            uint    `json:"id"`
	HostID        uint    `json:"host_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	State         string  `json:"state,omitempty"`
	DurationHours int     `json:"duration_hours"`
	MaxGuests     int     `json:"max_guests"`
	Price         int     `json:"price"`
	Description   string  `json:"description,omitempty"`
	RatingScore   float64 `json:"rating_score"`
	Active        bool    `json:"active"`
}

type ScheduleResponse struct {
	ID             uint      `json:"id"`
	TripID         uint      `json:"trip_id"`
	StartAt        time.Time `json:"start_at"`
	Capacity       int       `json:"capacity"`
	GuestCount     int       `json:"guest_count"`
	SeatsAvailable int       `json:"seats_available"`
	Active         bool      `json:"active"`
}

type TripReservationResponse struct {
	ID           uint                     `json:"id"`
	ScheduleID   uint                     `json:"schedule_id"`
	TripID       uint                     `json:"trip_id"`
	UserID       uint                     `json:"user_id"`
	Guests       int                      `json:"guests"`
	Status       models.ReservationStatus `json:"status"`
	ScoreAverage float64                  `json:"score_average"`
	CreatedAt    time.Time                `json:"created_at"`
}

type WishlistResponse struct {
	ID       uint   `json:"id"`
	AuthorID uint   `json:"author_id"`
	Title    string `json:"title"`
	IsPublic bool   `json:"is_public"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Adults   int    `json:"adults"`
	Kids     int    `json:"kids"`
	Infants  int    `json:"infants"`
	RoomIDs  []uint `json:"room_ids"`
}

type MessageResponse struct {
	ID            uint      `json:"id"`
	ReservationID uint      `json:"reservation_id"`
	AuthorID      uint      `json:"author_id"`
	IsHost        bool      `json:"is_host"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Superhost bool   `json:"superhost"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewResultResponse struct {
	ReservationID uint    `json:"reservation_id"`
	RoomRating    float64 `json:"room_rating"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	nights := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	return ReservationResponse{
		ID:            r.ID,
		RoomID:        r.RoomID,
		UserID:        r.UserID,
		ReferenceCode: r.ReferenceCode,
		StartDate:     r.StartDate.Format(dateLayout),
		EndDate:       r.EndDate.Format(dateLayout),
		Nights:        nights,
		Guests:        r.Guests,
		Description:   r.Description,
		Status:        r.Status,
		ScoreAverage:  r.ScoreAverage,
		CreatedAt:     r.CreatedAt,
	}
}

func ToRatingResponse(s models.RatingSummary) RatingResponse {
	return RatingResponse(s)
}

func ToRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		HostID:      r.HostID,
		Title:       r.Title,
		Slug:        r.Slug,
		Address:     r.Address,
		State:       r.State,
		Price:       r.Price,
		Capacity:    r.Capacity,
		RoomType:    r.RoomType,
		MinStay:     r.MinStay,
		MaxStay:     r.MaxStay,
		Bedrooms:    r.Bedrooms,
		Description: r.Description,
		Rating: RatingResponse{
			Accuracy:      r.AccuracyRating,
			Location:      r.LocationRating,
			Communication: r.CommunicationRating,
			Checkin:       r.CheckinRating,
			Clean:         r.CleanRating,
			Value:         r.ValueRating,
			Total:         r.TotalRating,
		},
		Active: r.Active,
	}
}

func ToTripResponse(t *models.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		HostID:        t.HostID,
		Name:          t.Name,
		Category:      t.Category,
		State:         t.State,
		DurationHours: t.DurationHours,
		MaxGuests:     t.MaxGuests,
		Price:         t.Price,
		Description:   t.Description,
		RatingScore:   t.RatingScore,
		Active:        t.Active,
	}
}

func ToScheduleResponse(s *models.TripSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID,
		TripID:         s.TripID,
		StartAt:        s.StartAt,
		Capacity:       s.Capacity,
		GuestCount:     s.GuestCount,
		SeatsAvailable: s.Capacity - s.GuestCount,
		Active:         s.Active,
	}
}

func ToTripReservationResponse(r *models.TripReservation) TripReservationResponse {
	return TripReservationResponse{
		ID:           r.ID,
		ScheduleID:   r.ScheduleID,
		TripID:       r.TripID,
		UserID:       r.UserID,
		Guests:       r.Guests,
		Status:       r.Status,
		ScoreAverage: r.ScoreAverage,
		CreatedAt:    r.CreatedAt,
	}
}

func ToWishlistResponse(w *models.Wishlist) WishlistResponse {
	resp := WishlistResponse{
		ID:       w.ID,
		AuthorID: w.AuthorID,
		Title:    w.Title,
		IsPublic: w.IsPublic,
		Adults:   w.Adults,
		Kids:     w.Kids,
		Infants:  w.Infants,
		RoomIDs:  make([]uint, 0, len(w.Rooms)),
	}
	if w.CheckIn != nil {
		resp.CheckIn = w.CheckIn.Format(dateLayout)
	}
	if w.CheckOut != nil {
		resp.CheckOut = w.CheckOut.Format(dateLayout)
	}
	for _, room := range w.Rooms {
		resp.RoomIDs = append(resp.RoomIDs, room.RoomID)
	}
	return resp
}

func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		AuthorID:      m.AuthorID,
		IsHost:        m.IsHost,
		Text:          m.Text,
		CreatedAt:     m.CreatedAt,
	}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Superhost: u.Superhost,
	}
}

func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Payload:   string(n.Payload),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
