package service

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
)

// BookingView is a booking joined at read time with the guest account and
// room it references. User and Room are nil when the reference is dangling.
type BookingView struct {
	models.Booking
	User *models.User
	Room *models.Room
}

type BookingEnricher interface {
	Enrich(ctx context.Context, bookings []models.Booking) ([]BookingView, error)
	EnrichOne(ctx context.Context, booking *models.Booking) (*BookingView, error)
}

type Enricher struct {
	rooms repository.RoomRepository
	users repository.UserRepository
}

func NewEnricher(rooms repository.RoomRepository, users repository.UserRepository) *Enricher {
	return &Enricher{rooms: rooms, users: users}
}

// Enrich resolves all references with one lookup per table and keeps the order of bookings.
func (e *Enricher) Enrich(ctx context.Context, bookings []models.Booking) ([]BookingView, error) {
	roomIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	seenRoom := make(map[string]bool)
	seenUser := make(map[string]bool)
	for _, b := range bookings {
		if !seenRoom[b.RoomID] {
			seenRoom[b.RoomID] = true
			roomIDs = append(roomIDs, b.RoomID)
		}
		if !seenUser[b.UserID] {
			seenUser[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}

	rooms, err := e.rooms.FindByIDs(ctx, roomIDs)
	if err != nil {
		return nil, persistence("load rooms", err)
	}
	users, err := e.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, persistence("load users", err)
	}

	roomByID := make(map[string]*models.Room, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = &rooms[i]
	}
	userByID := make(map[string]*models.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = BookingView{Booking: b, Room: roomByID[b.RoomID], User: userByID[b.UserID]}
	}
	return views, nil
}

func (e *Enricher) EnrichOne(ctx context.Context, booking *models.Booking) (*BookingView, error) {
	views, err := e.Enrich(ctx, []models.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
