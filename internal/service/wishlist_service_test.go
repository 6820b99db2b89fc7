package service

import (
	"context"
	"testing"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeWishlistRepo struct {
	wishlists map[uint]*models.Wishlist

	memberCalled bool
	validCalled  bool
	validGuests  int
	validNights  int
}

func (f *fakeWishlistRepo) Create(ctx context.Context, w *models.Wishlist) error { return nil }
func (f *fakeWishlistRepo) FindByID(ctx context.Context, id uint) (*models.Wishlist, error) {
	w, ok := f.wishlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}
func (f *fakeWishlistRepo) FindByAuthor(ctx context.Context, authorID uint) ([]models.Wishlist, error) {
	return nil, nil
}
func (f *fakeWishlistRepo) Update(ctx context.Context, w *models.Wishlist) error { return nil }
func (f *fakeWishlistRepo) Delete(ctx context.Context, id uint) error            { return nil }
func (f *fakeWishlistRepo) AddRoom(ctx context.Context, wishlistID, roomID uint) error {
	return nil
}
func (f *fakeWishlistRepo) RemoveRoom(ctx context.Context, wishlistID, roomID uint) error {
	return nil
}
func (f *fakeWishlistRepo) MemberRooms(ctx context.Context, wishlistID uint) ([]models.Room, error) {
	f.memberCalled = true
	return []models.Room{{ID: 1}}, nil
}
func (f *fakeWishlistRepo) ValidRooms(ctx context.Context, wishlistID uint, guests, nights int, w *models.Wishlist) ([]models.Room, error) {
	f.validCalled = true
	f.validGuests = guests
	f.validNights = nights
	return []models.Room{{ID: 2}}, nil
}

var _ repository.WishlistRepository = (*fakeWishlistRepo)(nil)

func TestWishlistGetPrivacy(t *testing.T) {
	repo := &fakeWishlistRepo{wishlists: map[uint]*models.Wishlist{
		1: {ID: 1, AuthorID: 4, IsPublic: false},
		2: {ID: 2, AuthorID: 4, IsPublic: true},
	}}
	svc := NewWishlistService(repo, nil)

	_, err := svc.Get(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrWishlistPrivate)

	// The author sees their private list.
	w, err := svc.Get(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), w.ID)

	// Anyone sees a public list.
	_, err = svc.Get(context.Background(), 2, 9)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 99, 4)
	assert.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestWishlistValidRoomsNoWindow(t *testing.T) {
	repo := &fakeWishlistRepo{wishlists: map[uint]*models.Wishlist{
		1: {ID: 1, AuthorID: 4, IsPublic: true, Adults: 2},
	}}
	svc := NewWishlistService(repo, nil)

	rooms, err := svc.ValidRooms(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.True(t, repo.memberCalled, "without a stay window every member room is valid")
	assert.False(t, repo.validCalled)
}

func TestWishlistValidRoomsWithWindow(t *testing.T) {
	checkIn := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	repo := &fakeWishlistRepo{wishlists: map[uint]*models.Wishlist{
		1: {ID: 1, AuthorID: 4, IsPublic: true, Adults: 2, Kids: 1, Infants: 1, CheckIn: &checkIn, CheckOut: &checkOut},
	}}
	svc := NewWishlistService(repo, nil)

	rooms, err := svc.ValidRooms(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.True(t, repo.validCalled)
	// Infants do not take a berth.
	assert.Equal(t, 3, repo.validGuests)
	assert.Equal(t, 4, repo.validNights)
}

func TestWishlistValidRoomsBadWindow(t *testing.T) {
	checkIn := time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWishlistRepo{wishlists: map[uint]*models.Wishlist{
		1: {ID: 1, AuthorID: 4, IsPublic: true, CheckIn: &checkIn, CheckOut: &checkOut},
	}}
	svc := NewWishlistService(repo, nil)

	_, err := svc.ValidRooms(context.Background(), 1, 4)
	assert.ErrorIs(t, err, ErrDateOrder)
}
