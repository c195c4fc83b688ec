package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
)

// BookingRepository methods that take tx run on it; pass GetDB() outside a transaction.
type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID string, stay models.Stay, excludeID string) ([]models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

// Delete returns gorm.ErrRecordNotFound when no row was removed.
func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := tx.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlapping is the only place the overlap predicate lives. Stays are
// half-open, so a booking that checks out on stay.CheckIn does not overlap.
// A non-empty excludeID leaves that booking out of the result.
func (r *bookingRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID string, stay models.Stay, excludeID string) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("check_in < ? AND check_out > ?", stay.CheckOut, stay.CheckIn)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("check_in ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
