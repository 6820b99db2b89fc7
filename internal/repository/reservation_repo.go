package repository

import (
	"context"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) (*models.Reservation, error)
	FindScoredByRoom(ctx context.Context, tx *gorm.DB, roomID uint) ([]models.Reservation, error)
	FindByRoomID(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	SaveReview(ctx context.Context, tx *gorm.DB, id uint, scores models.ReviewScores, average float64) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Preload("Room").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindOverlapping returns the first active reservation whose half-open
// [start_date, end_date) range intersects the candidate [start, end).
// gorm.ErrRecordNotFound means the dates are free.
func (r *reservationRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, start, end time.Time) (*models.Reservation, error) {
	var reservation models.Reservation
	err := tx.WithContext(ctx).
		Where("room_id = ? AND status = ? AND start_date < ? AND end_date > ?",
			roomID, models.StatusActive, end, start).
		Order("start_date ASC").
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindScoredByRoom returns every reservation on the room that carries
// review scores; archived rows keep counting toward the rating.
func (r *reservationRepository) FindScoredByRoom(ctx context.Context, tx *gorm.DB, roomID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := tx.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID,
			[]models.ReservationStatus{models.StatusReviewed, models.StatusArchived}).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByRoomID(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("start_date ASC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *reservationRepository) SaveReview(ctx context.Context, tx *gorm.DB, id uint, scores models.ReviewScores, average float64) error {
	return tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"accuracy_score":      scores.AccuracyScore,
			"location_score":      scores.LocationScore,
			"communication_score": scores.CommunicationScore,
			"checkin_score":       scores.CheckinScore,
			"clean_score":         scores.CleanScore,
			"value_score":         scores.ValueScore,
			"score_average":       average,
			"status":              models.StatusReviewed,
		}).Error
}
