package repository

import (
	"context"

	"github.com/Team-FBI/WPS/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	FindByID(ctx context.Context, id uint) (*models.Trip, error)
	FindTripForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Trip, error)
	FindAll(ctx context.Context, state, category string) ([]models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	UpdateRating(ctx context.Context, tx *gorm.DB, tripID uint, rating float64) error

	CreateSchedule(ctx context.Context, schedule *models.TripSchedule) error
	FindScheduleByID(ctx context.Context, id uint) (*models.TripSchedule, error)
	FindScheduleForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TripSchedule, error)
	FindSchedulesByTrip(ctx context.Context, tripID uint) ([]models.TripSchedule, error)
	SetScheduleGuestCount(ctx context.Context, tx *gorm.DB, id uint, count int) error

	CreateReservation(ctx context.Context, tx *gorm.DB, reservation *models.TripReservation) error
	FindReservationByID(ctx context.Context, id uint) (*models.TripReservation, error)
	FindReservationForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TripReservation, error)
	FindLiveReservation(ctx context.Context, tx *gorm.DB, scheduleID, userID uint) (*models.TripReservation, error)
	FindScoredByTrip(ctx context.Context, tx *gorm.DB, tripID uint) ([]models.TripReservation, error)
	UpdateReservationStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error
	SaveReview(ctx context.Context, tx *gorm.DB, id uint, scores models.ReviewScores, average float64) error

	GetDB() *gorm.DB
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindTripForUpdate locks the trip row. Rating recomputes for a trip
// serialize on this lock, the same way room ratings serialize on the
// room row.
func (r *tripRepository) FindTripForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&trip, id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) FindAll(ctx context.Context, state, category string) ([]models.Trip, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if state != "" {
		q = q.Where("state = ?", state)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var trips []models.Trip
	if err := q.Order("rating_score DESC, id ASC").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Save(trip).Error
}

func (r *tripRepository) UpdateRating(ctx context.Context, tx *gorm.DB, tripID uint, rating float64) error {
	return tx.WithContext(ctx).
		Model(&models.Trip{}).
		Where("id = ?", tripID).
		Update("rating_score", rating).Error
}

func (r *tripRepository) CreateSchedule(ctx context.Context, schedule *models.TripSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *tripRepository) FindScheduleByID(ctx context.Context, id uint) (*models.TripSchedule, error) {
	var schedule models.TripSchedule
	if err := r.db.WithContext(ctx).Preload("Trip").First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindScheduleForUpdate locks the schedule row; seat accounting for a
// schedule happens strictly under this lock.
func (r *tripRepository) FindScheduleForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TripSchedule, error) {
	var schedule models.TripSchedule
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *tripRepository) FindSchedulesByTrip(ctx context.Context, tripID uint) ([]models.TripSchedule, error) {
	var schedules []models.TripSchedule
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND active = ?", tripID, true).
		Order("start_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *tripRepository) SetScheduleGuestCount(ctx context.Context, tx *gorm.DB, id uint, count int) error {
	return tx.WithContext(ctx).
		Model(&models.TripSchedule{}).
		Where("id = ?", id).
		Update("guest_count", count).Error
}

func (r *tripRepository) CreateReservation(ctx context.Context, tx *gorm.DB, reservation *models.TripReservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *tripRepository) FindReservationByID(ctx context.Context, id uint) (*models.TripReservation, error) {
	var reservation models.TripReservation
	if err := r.db.WithContext(ctx).Preload("Schedule").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindReservationForUpdate locks the reservation row so state
// transitions (cancel, review) cannot race each other.
func (r *tripRepository) FindReservationForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TripReservation, error) {
	var reservation models.TripReservation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *tripRepository) FindLiveReservation(ctx context.Context, tx *gorm.DB, scheduleID, userID uint) (*models.TripReservation, error) {
	var reservation models.TripReservation
	err := tx.WithContext(ctx).
		Where("schedule_id = ? AND user_id = ? AND status IN ?", scheduleID, userID,
			[]models.ReservationStatus{models.StatusPending, models.StatusActive}).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *tripRepository) FindScoredByTrip(ctx context.Context, tx *gorm.DB, tripID uint) ([]models.TripReservation, error) {
	var reservations []models.TripReservation
	err := tx.WithContext(ctx).
		Where("trip_id = ? AND status IN ?", tripID,
			[]models.ReservationStatus{models.StatusReviewed, models.StatusArchived}).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *tripRepository) UpdateReservationStatus(ctx context.Context, tx *gorm.DB, id uint, status models.ReservationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.TripReservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *tripRepository) SaveReview(ctx context.Context, tx *gorm.DB, id uint, scores models.ReviewScores, average float64) error {
	return tx.WithContext(ctx).
		Model(&models.TripReservation{}).
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
