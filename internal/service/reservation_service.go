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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotReservationOwner = errors.New("only the reservation's guest may do this")
	ErrReservationState    = errors.New("reservation is not in a state that allows this")
	ErrStayNotStarted      = errors.New("stay has not started yet")
)

// EventPublisher fans out lifecycle events. A nil publisher disables
// publishing; reservation writes never fail on broker trouble.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// ReservationInput is a validated-and-parsed booking request. Dates are
// date-only; the half-open range [StartDate, EndDate) is claimed.
type ReservationInput struct {
	RoomID      uint
	UserID      uint
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
	Description string
}

type ReservationService interface {
	CreateReservation(ctx context.Context, in ReservationInput) (*models.Reservation, error)
	SubmitReview(ctx context.Context, reservationID, userID uint, in ReviewInput) (float64, error)
	CancelReservation(ctx context.Context, reservationID, userID uint) (*models.Reservation, error)
	ArchiveReservation(ctx context.Context, reservationID uint) (*models.Reservation, error)
	RecomputeRoomRating(ctx context.Context, roomID uint) (models.RatingSummary, error)
	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)
	ListByRoom(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	roomRepo        repository.RoomRepository
	publisher       EventPublisher
}

func NewReservationService(reservationRepo repository.ReservationRepository, roomRepo repository.RoomRepository, publisher EventPublisher) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		publisher:       publisher,
	}
}

// CreateReservation validates and claims a date range on a room. The
// availability check and the insert run in one transaction under a row
// lock on the room, so two concurrent requests for the same room cannot
// both pass the check before either writes.
func (s *reservationService) CreateReservation(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	start := toDate(in.StartDate)
	end := toDate(in.EndDate)
	guests := in.Guests
	if guests < 1 {
		guests = 1
	}

	var result *models.Reservation
	var hostID uint

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room row, serializing concurrent booking attempts.
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, in.RoomID)
		if err != nil {
			return ErrRoomNotFound
		}
		if !room.Active {
			return ErrRoomNotFound
		}
		hostID = room.HostID

		// 2. Date order, stay length, party size.
		if err := ValidateStayDates(start, end); err != nil {
			return err
		}
		if err := ValidateStayLength(StayNights(start, end), room.MinStay, room.MaxStay); err != nil {
			return err
		}
		if err := ValidateGuests(guests, room.Capacity); err != nil {
			return err
		}

		// 3. Overlap check against active reservations. First conflict fails
		// the whole request.
		_, err = s.reservationRepo.FindOverlapping(ctx, tx, room.ID, start, end)
		if err == nil {
			return ErrDateConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 4. Claim the dates.
		reservation := &models.Reservation{
			RoomID:        room.ID,
			UserID:        in.UserID,
			ReferenceCode: uuid.NewString(),
			StartDate:     start,
			EndDate:       end,
			Guests:        guests,
			Description:   in.Description,
			Status:        models.StatusActive,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
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
		RoomID:        result.RoomID,
		HostID:        hostID,
		GuestID:       result.UserID,
		ReferenceCode: result.ReferenceCode,
		StartDate:     result.StartDate.Format("2006-01-02"),
		EndDate:       result.EndDate.Format("2006-01-02"),
	})

	return result, nil
}

// SubmitReview attaches the six category scores to an active reservation
// whose stay has started, transitions it to reviewed, and recomputes the
// room's rating inside the same transaction. Returns the new total rating.
func (s *reservationService) SubmitReview(ctx context.Context, reservationID, userID uint, in ReviewInput) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var rating float64
	var reservation *models.Reservation
	var hostID uint

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
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
		if !res.StartDate.Before(today()) {
			return ErrStayNotStarted
		}

		// Lock the room: the rating recompute must not interleave with
		// another review of the same room.
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, res.RoomID)
		if err != nil {
			return err
		}
		hostID = room.HostID

		if err := s.reservationRepo.SaveReview(ctx, tx, res.ID, in.Scores(), in.Average()); err != nil {
			return err
		}

		scored, err := s.reservationRepo.FindScoredByRoom(ctx, tx, room.ID)
		if err != nil {
			return err
		}
		summary := AggregateScores(reviewScoresOf(scored))
		if err := s.roomRepo.UpdateRatings(ctx, tx, room.ID, summary); err != nil {
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
		RoomID:        reservation.RoomID,
		HostID:        hostID,
		GuestID:       reservation.UserID,
		Rating:        rating,
	})

	return rating, nil
}

// CancelReservation moves a pending or active reservation to cancelled.
// Cancelled rows stop blocking availability immediately and can never be
// reviewed.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID, userID uint) (*models.Reservation, error) {
	var result *models.Reservation
	var hostID uint

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.UserID != userID {
			return ErrNotReservationOwner
		}
		if res.Status != models.StatusPending && res.Status != models.StatusActive {
			return ErrReservationState
		}

		if err := s.reservationRepo.UpdateStatus(ctx, tx, res.ID, models.StatusCancelled); err != nil {
			return err
		}
		res.Status = models.StatusCancelled
		result = res

		if room, err := s.roomRepo.FindByID(ctx, res.RoomID); err == nil {
			hostID = room.HostID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyReservationCancelled, dto.ReservationEvent{
		ReservationID: result.ID,
		RoomID:        result.RoomID,
		HostID:        hostID,
		GuestID:       result.UserID,
		ReferenceCode: result.ReferenceCode,
	})

	return result, nil
}

// ArchiveReservation retires a reviewed reservation. Archived rows keep
// their scores and keep counting toward the room rating.
func (s *reservationService) ArchiveReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if res.Status != models.StatusReviewed {
			return ErrReservationState
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, res.ID, models.StatusArchived); err != nil {
			return err
		}
		res.Status = models.StatusArchived
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecomputeRoomRating rebuilds a room's rating from its scored
// reservations. Calling it with no new data is a no-op on the stored
// values; with no scored reservations it resets the rating to 0.
func (s *reservationService) RecomputeRoomRating(ctx context.Context, roomID uint) (models.RatingSummary, error) {
	var summary models.RatingSummary

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			return ErrRoomNotFound
		}
		scored, err := s.reservationRepo.FindScoredByRoom(ctx, tx, room.ID)
		if err != nil {
			return err
		}
		summary = AggregateScores(reviewScoresOf(scored))
		return s.roomRepo.UpdateRatings(ctx, tx, room.ID, summary)
	})
	if err != nil {
		return models.RatingSummary{}, err
	}
	return summary, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListByRoom(ctx context.Context, roomID uint, status *models.ReservationStatus) ([]models.Reservation, error) {
	return s.reservationRepo.FindByRoomID(ctx, roomID, status)
}

func (s *reservationService) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.reservationRepo.FindByUserID(ctx, userID)
}

func (s *reservationService) publish(key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(key, payload); err != nil {
		log.Printf("[ReservationService] publish %s failed: %v", key, err)
	}
}

func reviewScoresOf(reservations []models.Reservation) []models.ReviewScores {
	scores := make([]models.ReviewScores, len(reservations))
	for i, r := range reservations {
		scores[i] = r.ReviewScores
	}
	return scores
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	return toDate(time.Now().UTC())
}
