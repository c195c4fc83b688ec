package dto

import (
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_Stay(t *testing.T) {
	req := CreateBookingRequest{CheckInDate: "2025-03-10", CheckOutDate: "2025-03-12T23:30:00+07:00"}

	stay, err := req.Stay()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), stay.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), stay.CheckOut)

	req.CheckInDate = "March 10"
	_, err = req.Stay()
	assert.Error(t, err)
}

func TestUpdateBookingRequest_Dates(t *testing.T) {
	out := "2025-03-15"
	req := UpdateBookingRequest{CheckOutDate: &out}

	checkIn, checkOut, err := req.Dates()
	require.NoError(t, err)
	assert.Nil(t, checkIn)
	require.NotNil(t, checkOut)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *checkOut)

	bad := "soon"
	req.CheckInDate = &bad
	_, _, err = req.Dates()
	assert.Error(t, err)
}

func TestToBookingViewResponse(t *testing.T) {
	view := &service.BookingView{
		Booking: models.Booking{
			ID:       "b-1",
			UserID:   "user-1",
			RoomID:   "room-1",
			CheckIn:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
		Room: &models.Room{ID: "room-1", Name: "Deluxe King", Price: 120},
	}

	resp := ToBookingViewResponse(view)
	assert.Equal(t, "2025-03-10", resp.CheckInDate)
	assert.Equal(t, "2025-03-13", resp.CheckOutDate)
	assert.Equal(t, 3, resp.Nights)
	require.NotNil(t, resp.Room)
	assert.Equal(t, "Deluxe King", resp.Room.Name)
	assert.Nil(t, resp.User)
}

func TestToAvailabilityResponse_NeverNull(t *testing.T) {
	resp := ToAvailabilityResponse(&service.Availability{IsAvailable: true})
	assert.True(t, resp.IsAvailable)
	assert.NotNil(t, resp.ConflictingBookings)
	assert.Empty(t, resp.ConflictingBookings)
}
