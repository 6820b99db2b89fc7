package service

import (
	"context"
	"errors"

	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrWishlistPrivate  = errors.New("wishlist is private")
	ErrNotWishlistOwner = errors.New("only the wishlist's author may do this")
)

type WishlistService interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	Get(ctx context.Context, id, requesterID uint) (*models.Wishlist, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Wishlist, error)
	Update(ctx context.Context, requesterID uint, wishlist *models.Wishlist) error
	Delete(ctx context.Context, id, requesterID uint) error
	AddRoom(ctx context.Context, wishlistID, requesterID, roomID uint) error
	RemoveRoom(ctx context.Context, wishlistID, requesterID, roomID uint) error
	ValidRooms(ctx context.Context, wishlistID, requesterID uint) ([]models.Room, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	roomRepo     repository.RoomRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, roomRepo repository.RoomRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, roomRepo: roomRepo}
}

func (s *wishlistService) Create(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist.CheckIn != nil && wishlist.CheckOut != nil {
		if err := ValidateStayDates(*wishlist.CheckIn, *wishlist.CheckOut); err != nil {
			return err
		}
	}
	if wishlist.Adults < 1 {
		wishlist.Adults = 1
	}
	return s.wishlistRepo.Create(ctx, wishlist)
}

func (s *wishlistService) Get(ctx context.Context, id, requesterID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	if !wishlist.IsPublic && wishlist.AuthorID != requesterID {
		return nil, ErrWishlistPrivate
	}
	return wishlist, nil
}

func (s *wishlistService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Wishlist, error) {
	return s.wishlistRepo.FindByAuthor(ctx, authorID)
}

func (s *wishlistService) Update(ctx context.Context, requesterID uint, wishlist *models.Wishlist) error {
	existing, err := s.ownedWishlist(ctx, wishlist.ID, requesterID)
	if err != nil {
		return err
	}
	if wishlist.CheckIn != nil && wishlist.CheckOut != nil {
		if err := ValidateStayDates(*wishlist.CheckIn, *wishlist.CheckOut); err != nil {
			return err
		}
	}
	wishlist.AuthorID = existing.AuthorID
	wishlist.CreatedAt = existing.CreatedAt
	return s.wishlistRepo.Update(ctx, wishlist)
}

func (s *wishlistService) Delete(ctx context.Context, id, requesterID uint) error {
	if _, err := s.ownedWishlist(ctx, id, requesterID); err != nil {
		return err
	}
	return s.wishlistRepo.Delete(ctx, id)
}

func (s *wishlistService) AddRoom(ctx context.Context, wishlistID, requesterID, roomID uint) error {
	if _, err := s.ownedWishlist(ctx, wishlistID, requesterID); err != nil {
		return err
	}
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return s.wishlistRepo.AddRoom(ctx, wishlistID, roomID)
}

func (s *wishlistService) RemoveRoom(ctx context.Context, wishlistID, requesterID, roomID uint) error {
	if _, err := s.ownedWishlist(ctx, wishlistID, requesterID); err != nil {
		return err
	}
	return s.wishlistRepo.RemoveRoom(ctx, wishlistID, roomID)
}

// ValidRooms filters the wishlist's rooms through the availability
// checker for the planned stay. With no check-in/out window every member
// room is valid.
func (s *wishlistService) ValidRooms(ctx context.Context, wishlistID, requesterID uint) ([]models.Room, error) {
	wishlist, err := s.Get(ctx, wishlistID, requesterID)
	if err != nil {
		return nil, err
	}

	if wishlist.CheckIn == nil || wishlist.CheckOut == nil {
		return s.wishlistRepo.MemberRooms(ctx, wishlistID)
	}

	start := toDate(*wishlist.CheckIn)
	end := toDate(*wishlist.CheckOut)
	if err := ValidateStayDates(start, end); err != nil {
		return nil, err
	}
	wishlist.CheckIn = &start
	wishlist.CheckOut = &end

	return s.wishlistRepo.ValidRooms(ctx, wishlistID, wishlist.GuestCount(), StayNights(start, end), wishlist)
}

func (s *wishlistService) ownedWishlist(ctx context.Context, id, requesterID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	if wishlist.AuthorID != requesterID {
		return nil, ErrNotWishlistOwner
	}
	return wishlist, nil
}
