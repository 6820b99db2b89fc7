package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"github.com/Team-FBI/WPS/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrScheduleNotFound = errors.New("trip schedule not found")
	ErrScheduleClosed   = errors.New("trip schedule is closed for booking")
	ErrScheduleFull     = errors.New("trip schedule has no seats left")
	ErrAlreadyBooked    = errors.New("user already has a live reservation on this schedule")
	ErrTripNotStarted   = errors.New("trip has not taken place yet")
	ErrNotTripHost      = errors.New("user is not the host of this trip")
)

type TripService interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, id uint) (*models.Trip, error)
	ListTrips(ctx context.Context, state, category string) ([]models.Trip, error)
	CreateSchedule(ctx context.Context, hostID uint, schedule *models.TripSchedule) error
	ListSchedules(ctx context.Context, tripID uint) ([]models.TripSchedule, error)
	ReserveSeats(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error)
	CancelReservation(ctx context.Context, reservationID, userID uint) (*models.TripReservation, error)
	SubmitReview(ctx context.Context, reservationID, userID uint, in ReviewInput) (float64, error)
}

type tripService struct {
	tripRepo  repository.TripRepository
	publisher EventPublisher
}

func NewTripService(tripRepo repository.TripRepository, publisher EventPublisher) TripService {
	return &tripService{tripRepo: tripRepo, publisher: publisher}
}

func (s *tripService) CreateTrip(ctx context.Context, trip *models.Trip) error {
	trip.Active = true
	trip.RatingScore = 0
	return s.tripRepo.Create(ctx, trip)
}

func (s *tripService) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *tripService) ListTrips(ctx context.Context, state, category string) ([]models.Trip, error) {
	return s.tripRepo.FindAll(ctx, state, category)
}

func (s *tripService) CreateSchedule(ctx context.Context, hostID uint, schedule *models.TripSchedule) error {
	trip, err := s.GetTrip(ctx, schedule.TripID)
	if err != nil {
		return err
	}
	if trip.HostID != hostID {
		return ErrNotTripHost
	}
	if schedule.Capacity <= 0 {
		schedule.Capacity = trip.MaxGuests
	}
	schedule.GuestCount = 0
	schedule.Active = true
	return s.tripRepo.CreateSchedule(ctx, schedule)
}

func (s *tripService) ListSchedules(ctx context.Context, tripID uint) ([]models.TripSchedule, error) {
	return s.tripRepo.FindSchedulesByTrip(ctx, tripID)
}

// ReserveSeats claims seats on a schedule. The seat count check and the
// increment run under a row lock on the schedule, the seat-count analogue
// of the date-overlap transaction on rooms.
func (s *tripService) ReserveSeats(ctx context.Context, scheduleID, userID uint, guests int) (*models.TripReservation, error) {
	if guests < 1 {
		guests = 1
	}

	var result *models.TripReservation
	var hostID uint

	err := s.tripRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		schedule, err := s.tripRepo.FindScheduleForUpdate(ctx, tx, scheduleID)
		if err != nil {
			return ErrScheduleNotFound
		}
		if !schedule.Active || !schedule.StartAt.After(time.Now()) {
			return ErrScheduleClosed
		}

		trip, err := s.tripRepo.FindByID(ctx, schedule.TripID)
		if err != nil {
			return ErrTripNotFound
		}
		hostID = trip.HostID

		if err := ValidateGuests(guests, trip.MaxGuests); err != nil {
			return err
		}
		if schedule.GuestCount+guests > schedule.Capacity {
			return ErrScheduleFull
		}

		_, err = s.tripRepo.FindLiveReservation(ctx, tx, schedule.ID, userID)
		if err == nil {
			return ErrAlreadyBooked
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reservation := &models.TripReservation{
			ScheduleID: schedule.ID,
			TripID:     schedule.TripID,
			UserID:     userID,
			Guests:     guests,
			Status:     models.StatusActive,
		}
		if err := s.tripRepo.CreateReservation(ctx, tx, reservation); err != nil {
			return err
		}
		if err := s.tripRepo.SetScheduleGuestCount(ctx, tx, schedule.ID, schedule.GuestCount+guests); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyReservationCreated, dto.ReservationEvent{
		ReservationID: result.ID,
		TripID:        result.TripID,
		HostID:        hostID,
		GuestID:       result.UserID,
	})

	return result, nil
}

func (s *tripService) CancelReservation(ctx context.Context, reservationID, userID uint) (*models.TripReservation, error) {
	var result *models.TripReservation
	var hostID uint

	err := s.tripRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation, err := s.tripRepo.FindReservationForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.UserID != userID {
			return ErrNotReservationOwner
		}
		if reservation.Status != models.StatusPending && reservation.Status != models.StatusActive {
			return ErrReservationState
		}

		schedule, err := s.tripRepo.FindScheduleForUpdate(ctx, tx, reservation.ScheduleID)
		if err != nil {
			return err
		}

		if err := s.tripRepo.UpdateReservationStatus(ctx, tx, reservation.ID, models.StatusCancelled); err != nil {
			return err
		}
		count := schedule.GuestCount - reservation.Guests
		if count < 0 {
			count = 0
		}
		if err := s.tripRepo.SetScheduleGuestCount(ctx, tx, schedule.ID, count); err != nil {
			return err
		}

		reservation.Status = models.StatusCancelled
		result = reservation

		if trip, err := s.tripRepo.FindByID(ctx, reservation.TripID); err == nil {
			hostID = trip.HostID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyReservationCancelled, dto.ReservationEvent{
		ReservationID: result.ID,
		TripID:        result.TripID,
		HostID:        hostID,
		GuestID:       result.UserID,
	})

	return result, nil
}

// SubmitReview scores a trip reservation once the schedule has run and
// refreshes the trip's rating from all of its scored reservations.
func (s *tripService) SubmitReview(ctx context.Context, reservationID, userID uint, in ReviewInput) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var rating float64
	var reservation *models.TripReservation
	var hostID uint

	err := s.tripRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.tripRepo.FindReservationForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.UserID != userID {
			return ErrNotReservationOwner
		}
		if res.Status != models.StatusActive {
			return ErrReservationState
		}

		schedule, err := s.tripRepo.FindScheduleForUpdate(ctx, tx, res.ScheduleID)
		if err != nil {
			return err
		}
		if schedule.StartAt.After(time.Now()) {
			return ErrTripNotStarted
		}

		// Lock order is reservation, then schedule, then trip. The
		// trip row lock serializes rating recomputes across all of the
		// trip's reservations.
		trip, err := s.tripRepo.FindTripForUpdate(ctx, tx, res.TripID)
		if err != nil {
			return ErrTripNotFound
		}
		hostID = trip.HostID

		if err := s.tripRepo.SaveReview(ctx, tx, res.ID, in.Scores(), in.Average()); err != nil {
			return err
		}

		scored, err := s.tripRepo.FindScoredByTrip(ctx, tx, trip.ID)
		if err != nil {
			return err
		}
		scores := make([]models.ReviewScores, len(scored))
		for i, r := range scored {
			scores[i] = r.ReviewScores
		}
		summary := AggregateScores(scores)
		if err := s.tripRepo.UpdateRating(ctx, tx, trip.ID, summary.Total); err != nil {
			return err
		}

		rating = summary.Total
		reservation = res
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(rabbitmq.KeyReviewSubmitted, dto.ReservationEvent{
		ReservationID: reservation.ID,
		TripID:        reservation.TripID,
		HostID:        hostID,
		GuestID:       reservation.UserID,
		Rating:        rating,
	})

	return rating, nil
}

func (s *tripService) publish(key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(key, payload); err != nil {
		log.Printf("[TripService] publish %s failed: %v", key, err)
	}
}
