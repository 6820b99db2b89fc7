package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"gorm.io/gorm"
)

var ErrNotRoomHost = errors.New("only the room's host may do this")

// RoomSearchInput mirrors the public search filters. StartDate/EndDate
// must be given together; when present only rooms free for the whole
// window and whose stay policy admits it are returned.
type RoomSearchInput struct {
	Guests    int
	MinPrice  int
	MaxPrice  *int
	MinRating float64
	State     string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

type RoomService interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	UpdateRoom(ctx context.Context, hostID uint, room *models.Room) error
	DeactivateRoom(ctx context.Context, hostID, roomID uint) error
	Search(ctx context.Context, in RoomSearchInput) ([]models.Room, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) CreateRoom(ctx context.Context, room *models.Room) error {
	room.Slug = slugify(room.Title)
	room.Active = true
	// Derived fields are never accepted from the caller.
	room.AccuracyRating = 0
	room.LocationRating = 0
	room.CommunicationRating = 0
	room.CheckinRating = 0
	room.CleanRating = 0
	room.ValueRating = 0
	room.TotalRating = 0
	return s.roomRepo.Create(ctx, room)
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, hostID uint, room *models.Room) error {
	existing, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		return err
	}
	if existing.HostID != hostID {
		return ErrNotRoomHost
	}

	room.HostID = existing.HostID
	room.Slug = slugify(room.Title)
	// Ratings stay whatever the aggregator last wrote.
	room.AccuracyRating = existing.AccuracyRating
	room.LocationRating = existing.LocationRating
	room.CommunicationRating = existing.CommunicationRating
	room.CheckinRating = existing.CheckinRating
	room.CleanRating = existing.CleanRating
	room.ValueRating = existing.ValueRating
	room.TotalRating = existing.TotalRating
	room.CreatedAt = existing.CreatedAt
	return s.roomRepo.Update(ctx, room)
}

func (s *roomService) DeactivateRoom(ctx context.Context, hostID, roomID uint) error {
	existing, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if existing.HostID != hostID {
		return ErrNotRoomHost
	}
	return s.roomRepo.Deactivate(ctx, roomID)
}

func (s *roomService) Search(ctx context.Context, in RoomSearchInput) ([]models.Room, error) {
	params := repository.RoomSearchParams{
		Guests:    in.Guests,
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		MinRating: in.MinRating,
		State:     in.State,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}

	if in.StartDate != nil && in.EndDate != nil {
		start := toDate(*in.StartDate)
		end := toDate(*in.EndDate)
		if err := ValidateStayDates(start, end); err != nil {
			return nil, err
		}
		params.StartDate = &start
		params.EndDate = &end
		params.Nights = StayNights(start, end)
	} else if in.StartDate != nil || in.EndDate != nil {
		return nil, ErrDateOrder
	}

	return s.roomRepo.Search(ctx, params)
}

func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Join(strings.Fields(s), "-")
	return s
}
