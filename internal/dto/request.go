package dto

import (
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
)

type CreateBookingRequest struct {
	RoomID         string   `json:"room" validate:"required"`
	CheckInDate    string   `json:"checkInDate" validate:"required"`
	CheckOutDate   string   `json:"checkOutDate" validate:"required"`
	NumberOfGuests int      `json:"numberOfGuests" validate:"required,gt=0"`
	TotalPrice     *float64 `json:"totalPrice" validate:"required,gte=0"`
	FullName       string   `json:"fullName" validate:"required"`
	Email          string   `json:"email" validate:"required"`
	Phone          string   `json:"phone" validate:"required"`
}

func (r *CreateBookingRequest) Stay() (models.Stay, error) {
	checkIn, err := models.ParseDate(r.CheckInDate)
	if err != nil {
		return models.Stay{}, err
	}
	checkOut, err := models.ParseDate(r.CheckOutDate)
	if err != nil {
		return models.Stay{}, err
	}
	return models.NewStay(checkIn, checkOut), nil
}

// UpdateBookingRequest is a partial update; absent fields keep their value.
type UpdateBookingRequest struct {
	RoomID         *string  `json:"room" validate:"omitempty,min=1"`
	CheckInDate    *string  `json:"checkInDate"`
	CheckOutDate   *string  `json:"checkOutDate"`
	NumberOfGuests *int     `json:"numberOfGuests" validate:"omitempty,gt=0"`
	TotalPrice     *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
	FullName       *string  `json:"fullName" validate:"omitempty,min=1"`
	Email          *string  `json:"email" validate:"omitempty,min=1"`
	Phone          *string  `json:"phone" validate:"omitempty,min=1"`
}

// Dates parses whichever of the two dates is present.
func (r *UpdateBookingRequest) Dates() (checkIn, checkOut *time.Time, err error) {
	if r.CheckInDate != nil {
		t, err := models.ParseDate(*r.CheckInDate)
		if err != nil {
			return nil, nil, err
		}
		checkIn = &t
	}
	if r.CheckOutDate != nil {
		t, err := models.ParseDate(*r.CheckOutDate)
		if err != nil {
			return nil, nil, err
		}
		checkOut = &t
	}
	return checkIn, checkOut, nil
}

type AvailabilityQuery struct {
	RoomID       string `query:"roomId" validate:"required"`
	CheckInDate  string `query:"checkInDate" validate:"required"`
	CheckOutDate string `query:"checkOutDate" validate:"required"`
}

func (q *AvailabilityQuery) Stay() (models.Stay, error) {
	req := CreateBookingRequest{CheckInDate: q.CheckInDate, CheckOutDate: q.CheckOutDate}
	return req.Stay()
}
