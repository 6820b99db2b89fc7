package repository

import (
	"context"

	"github.com/Team-FBI/WPS/internal/models"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	FindByID(ctx context.Context, id uint) (*models.Wishlist, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.Wishlist, error)
	Update(ctx context.Context, wishlist *models.Wishlist) error
	Delete(ctx context.Context, id uint) error
	AddRoom(ctx context.Context, wishlistID, roomID uint) error
	RemoveRoom(ctx context.Context, wishlistID, roomID uint) error
	MemberRooms(ctx context.Context, wishlistID uint) ([]models.Room, error)
	ValidRooms(ctx context.Context, wishlistID uint, guests, nights int, w *models.Wishlist) ([]models.Room, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(wishlist).Error
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Rooms.Room").
		First(&wishlist, id).Error
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&wishlists).Error
	if err != nil {
		return nil, err
	}
	return wishlists, nil
}

func (r *wishlistRepository) Update(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Save(wishlist).Error
}

func (r *wishlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&models.WishlistRoom{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Wishlist{}, id).Error
	})
}

func (r *wishlistRepository) AddRoom(ctx context.Context, wishlistID, roomID uint) error {
	return r.db.WithContext(ctx).Create(&models.WishlistRoom{
		WishlistID: wishlistID,
		RoomID:     roomID,
	}).Error
}

func (r *wishlistRepository) RemoveRoom(ctx context.Context, wishlistID, roomID uint) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND room_id = ?", wishlistID, roomID).
		Delete(&models.WishlistRoom{}).Error
}

func (r *wishlistRepository) MemberRooms(ctx context.Context, wishlistID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN wishlist_rooms ON wishlist_rooms.room_id = rooms.id").
		Where("wishlist_rooms.wishlist_id = ?", wishlistID).
		Order("rooms.id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ValidRooms returns member rooms that can host the wishlist's planned
// stay: party fits, stay length within policy, and no active reservation
// overlapping the check-in/out window.
func (r *wishlistRepository) ValidRooms(ctx context.Context, wishlistID uint, guests, nights int, w *models.Wishlist) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN wishlist_rooms ON wishlist_rooms.room_id = rooms.id").
		Where("wishlist_rooms.wishlist_id = ?", wishlistID).
		Where("rooms.active = ?", true).
		Where("(rooms.capacity = 0 OR rooms.capacity >= ?)", guests).
		Where("rooms.min_stay <= ? AND (rooms.max_stay = 0 OR rooms.max_stay >= ?)", nights, nights).
		Where(
			`NOT EXISTS (
				SELECT 1 FROM reservations res
				WHERE res.room_id = rooms.id
				  AND res.status = ?
				  AND res.start_date < ?
				  AND res.end_date > ?
			)`,
			models.StatusActive, *w.CheckOut, *w.CheckIn,
		).
		Order("rooms.id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
