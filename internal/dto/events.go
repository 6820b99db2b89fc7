package dto

// ReservationEvent is the broker payload for reservation lifecycle and
// review events. HostID addresses the notification; dates are ISO-8601.
type ReservationEvent struct {
	ReservationID uint    `json:"reservation_id"`
	RoomID        uint    `json:"room_id,omitempty"`
	TripID        uint    `json:"trip_id,omitempty"`
	HostID        uint    `json:"host_id"`
	GuestID       uint    `json:"guest_id"`
	ReferenceCode string  `json:"reference_code,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
}

// ChatEvent is the broker payload fanned out for each persisted chat
// message. Delivery is best-effort; history lives in the messages table.
type ChatEvent struct {
	MessageID     uint   `json:"message_id"`
	ReservationID uint   `json:"reservation_id"`
	AuthorID      uint   `json:"author_id"`
	IsHost        bool   `json:"is_host"`
	Text          string `json:"text"`
	SentAt        string `json:"sent_at"`
}
