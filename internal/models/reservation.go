package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusActive    ReservationStatus = "active"
	StatusReviewed  ReservationStatus = "reviewed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusArchived  ReservationStatus = "archived"
)

// ReviewScores holds the six post-stay category scores, each in [0,5].
// All fields are nil until the guest submits a review.
type ReviewScores struct {
	AccuracyScore      *int `json:"accuracy_score,omitempty"`
	LocationScore      *int `json:"location_score,omitempty"`
	CommunicationScore *int `json:"communication_score,omitempty"`
	CheckinScore       *int `json:"checkin_score,omitempty"`
	CleanScore         *int `json:"clean_score,omitempty"`
	ValueScore         *int `json:"value_score,omitempty"`
}

// Scored reports whether at least one category score has been submitted.
func (s ReviewScores) Scored() bool {
	for _, v := range s.pointers() {
		if v != nil {
			return true
		}
	}
	return false
}

func (s ReviewScores) pointers() [6]*int {
	return [6]*int{
		s.AccuracyScore,
		s.LocationScore,
		s.CommunicationScore,
		s.CheckinScore,
		s.CleanScore,
		s.ValueScore,
	}
}

// Values returns the six scores in category order. ok[i] is false where
// the category was never scored.
func (s ReviewScores) Values() (vals [6]int, ok [6]bool) {
	for i, p := range s.pointers() {
		if p != nil {
			vals[i] = *p
			ok[i] = true
		}
	}
	return vals, ok
}

// Reservation is a guest's claim on a room for the half-open date range
// [StartDate, EndDate). Only rows in the active status participate in
// availability conflict checks; cancelled rows free the dates immediately.
type Reservation struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	RoomID        uint              `gorm:"not null;index" json:"room_id"`
	UserID        uint              `gorm:"not null;index" json:"user_id"`
	ReferenceCode string            `gorm:"type:varchar(36);uniqueIndex" json:"reference_code"`
	StartDate     time.Time         `gorm:"not null;type:date" json:"start_date"`
	EndDate       time.Time         `gorm:"not null;type:date" json:"end_date"`
	Guests        int               `gorm:"not null;default:1" json:"guests"`
	Description   string            `json:"description,omitempty"`
	Status        ReservationStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	ReviewScores
	// ScoreAverage is the flat mean of this reservation's six scores,
	// set when the review is submitted.
	ScoreAverage float64 `gorm:"default:0" json:"score_average"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
