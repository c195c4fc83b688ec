package dto

import (
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
)

type BookingResponse struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	RoomID         string       `json:"roomId"`
	CheckInDate    string       `json:"checkInDate"`
	CheckOutDate   string       `json:"checkOutDate"`
	Nights         int          `json:"nights"`
	NumberOfGuests int          `json:"numberOfGuests"`
	TotalPrice     float64      `json:"totalPrice"`
	FullName       string       `json:"fullName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	User           *UserSummary `json:"user,omitempty"`
	Room           *RoomSummary `json:"room,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RoomSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AvailabilityResponse struct {
	IsAvailable         bool              `json:"isAvailable"`
	ConflictingBookings []BookingResponse `json:"conflictingBookings"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
}

type ErrorResponse struct {
	Message             string   `json:"message"`
	ConflictingBookings []string `json:"conflictingBookings,omitempty"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		CheckInDate:    b.CheckIn.UTC().Format(models.DateLayout),
		CheckOutDate:   b.CheckOut.UTC().Format(models.DateLayout),
		Nights:         b.Stay().Nights(),
		NumberOfGuests: b.GuestCount,
		TotalPrice:     b.TotalPrice,
		FullName:       b.GuestFullName,
		Email:          b.GuestEmail,
		Phone:          b.GuestPhone,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func ToBookingViewResponse(v *service.BookingView) BookingResponse {
	resp := ToBookingResponse(&v.Booking)
	if v.User != nil {
		resp.User = &UserSummary{ID: v.User.ID, Name: v.User.Name, Email: v.User.Email}
	}
	if v.Room != nil {
		resp.Room = &RoomSummary{ID: v.Room.ID, Name: v.Room.Name, Price: v.Room.Price}
	}
	return resp
}

func ToAvailabilityResponse(a *service.Availability) AvailabilityResponse {
	conflicts := make([]BookingResponse, len(a.Conflicts))
	for i := range a.Conflicts {
		conflicts[i] = ToBookingResponse(&a.Conflicts[i])
	}
	return AvailabilityResponse{IsAvailable: a.IsAvailable, ConflictingBookings: conflicts}
}

func ToRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
	}
}
