package repository

import (
	"context"
	"time"

	"github.com/Team-FBI/WPS/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomSearchParams narrows a room search. StartDate/EndDate are either
// both set or both nil; when set, Nights carries the validated stay
// length so the stay-policy filter can run in SQL.
type RoomSearchParams struct {
	Guests    int
	MinPrice  int
	MaxPrice  *int
	MinRating float64
	State     string
	StartDate *time.Time
	EndDate   *time.Time
	Nights    int
	Limit     int
	Offset    int
}

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, id uint) error
	Search(ctx context.Context, p RoomSearchParams) ([]models.Room, error)
	UpdateRatings(ctx context.Context, tx *gorm.DB, roomID uint, r models.RatingSummary) error
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Every booking and review mutation locks the room first, so
// concurrent writes against the same room serialize at the store.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *roomRepository) Search(ctx context.Context, p RoomSearchParams) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{}).Where("active = ?", true)

	if p.Guests > 0 {
		q = q.Where("(capacity = 0 OR capacity >= ?)", p.Guests)
	}
	if p.MinPrice > 0 {
		q = q.Where("price >= ?", p.MinPrice)
	}
	if p.MaxPrice != nil {
		q = q.Where("price <= ?", *p.MaxPrice)
	}
	if p.MinRating > 0 {
		q = q.Where("total_rating >= ?", p.MinRating)
	}
	if p.State != "" {
		q = q.Where("state = ?", p.State)
	}
	if p.StartDate != nil && p.EndDate != nil {
		q = q.Where("min_stay <= ? AND (max_stay = 0 OR max_stay >= ?)", p.Nights, p.Nights)
		q = q.Where(
			`NOT EXISTS (
				SELECT 1 FROM reservations res
				WHERE res.room_id = rooms.id
				  AND res.status = ?
				  AND res.start_date < ?
				  AND res.end_date > ?
			)`,
			models.StatusActive, *p.EndDate, *p.StartDate,
		)
	}

	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}

	var rooms []models.Room
	if err := q.Order("total_rating DESC, id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) UpdateRatings(ctx context.Context, tx *gorm.DB, roomID uint, ratings models.RatingSummary) error {
	return tx.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"accuracy_rating":      ratings.Accuracy,
			"location_rating":      ratings.Location,
			"communication_rating": ratings.Communication,
			"checkin_rating":       ratings.Checkin,
			"clean_rating":         ratings.Clean,
			"value_rating":         ratings.Value,
			"total_rating":         ratings.Total,
		}).Error
}
