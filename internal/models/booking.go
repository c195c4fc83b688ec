package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking reserves one room for one guest over a half-open stay [CheckIn, CheckOut).
type Booking struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	RoomID        string    `gorm:"type:varchar(64);not null;index:idx_bookings_room_stay,priority:1" json:"roomId"`
	CheckIn       time.Time `gorm:"not null;index:idx_bookings_room_stay,priority:2" json:"checkInDate"`
	CheckOut      time.Time `gorm:"not null;index:idx_bookings_room_stay,priority:3" json:"checkOutDate"`
	GuestCount    int       `gorm:"not null" json:"numberOfGuests"`
	TotalPrice    float64   `gorm:"not null" json:"totalPrice"`
	GuestFullName string    `gorm:"not null" json:"fullName"`
	GuestEmail    string    `gorm:"not null" json:"email"`
	GuestPhone    string    `gorm:"not null" json:"phone"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}
