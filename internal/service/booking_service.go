package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"gorm.io/gorm"
)

// Notifier is told about every booking that was committed by CreateBooking.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
}

type NewBooking struct {
	UserID     string
	RoomID     string
	Stay       models.Stay
	GuestCount int
	TotalPrice float64
	FullName   string
	Email      string
	Phone      string
}

// BookingChanges holds the fields of a partial update; nil leaves a field as is.
type BookingChanges struct {
	RoomID     *string
	CheckIn    *time.Time
	CheckOut   *time.Time
	GuestCount *int
	TotalPrice *float64
	FullName   *string
	Email      *string
	Phone      *string
}

type Availability struct {
	IsAvailable bool
	Conflicts   []models.Booking
}

type BookingService interface {
	CreateBooking(ctx context.Context, nb NewBooking) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id string, changes BookingChanges) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, roomID string, stay models.Stay) (*Availability, error)
}

// maxRelockAttempts bounds how often an update or delete re-acquires room
// locks after the booking was moved to another room under its feet.
const maxRelockAttempts = 3

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	notifier    Notifier
	locks       *roomLocks
}

func NewBookingService(bookingRepo repository.BookingRepository, roomRepo repository.RoomRepository, notifier Notifier) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		notifier:    notifier,
		locks:       newRoomLocks(),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, nb NewBooking) (*models.Booking, error) {
	stay := models.NewStay(nb.Stay.CheckIn, nb.Stay.CheckOut)
	booking := &models.Booking{
		UserID:        strings.TrimSpace(nb.UserID),
		RoomID:        strings.TrimSpace(nb.RoomID),
		CheckIn:       stay.CheckIn,
		CheckOut:      stay.CheckOut,
		GuestCount:    nb.GuestCount,
		TotalPrice:    nb.TotalPrice,
		GuestFullName: strings.TrimSpace(nb.FullName),
		GuestEmail:    strings.TrimSpace(nb.Email),
		GuestPhone:    strings.TrimSpace(nb.Phone),
	}
	if booking.UserID == "" {
		return nil, validationf("user id is required")
	}
	if err := validateBooking(booking); err != nil {
		return nil, err
	}

	unlock, err := s.locks.lock(ctx, booking.RoomID)
	if err != nil {
		return nil, fmt.Errorf("lock room %s: %w", booking.RoomID, err)
	}
	defer unlock()

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room row: serializes instances sharing the database
		room, err := s.lockRoom(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}
		if err := checkCapacity(room, booking.GuestCount); err != nil {
			return err
		}

		// 2. Check overlap and insert under the same lock
		if err := s.ensureVacant(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return persistence("create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	log.Printf("[Ledger] booking %s created: room=%s stay=%s..%s",
		booking.ID, booking.RoomID, booking.CheckIn.Format(models.DateLayout), booking.CheckOut.Format(models.DateLayout))
	s.notifyCreated(ctx, booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, s.bookingRepo.GetDB(), id)
	if err != nil {
		return nil, bookingLookupErr(err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, changes BookingChanges) (*models.Booking, error) {
	var extraRoom string
	if changes.RoomID != nil {
		extraRoom = strings.TrimSpace(*changes.RoomID)
	}

	var result *models.Booking
	err := s.withBookingLocked(ctx, id, extraRoom, func(tx *gorm.DB, current *models.Booking) error {
		updated := applyChanges(*current, changes)
		if err := validateBooking(&updated); err != nil {
			return err
		}

		roomChanged := updated.RoomID != current.RoomID
		stayChanged := !updated.CheckIn.Equal(current.CheckIn) || !updated.CheckOut.Equal(current.CheckOut)

		room, err := s.lockRooms(ctx, tx, current.RoomID, updated.RoomID)
		if err != nil && (roomChanged || !errors.Is(err, ErrRoomNotFound)) {
			return err
		}
		if roomChanged || updated.GuestCount != current.GuestCount {
			if err := checkCapacity(room, updated.GuestCount); err != nil {
				return err
			}
		}
		if roomChanged || stayChanged {
			if err := s.ensureVacant(ctx, tx, &updated); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.Save(ctx, tx, &updated); err != nil {
			return persistence("update booking", err)
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Ledger] booking %s updated", id)
	return result, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	err := s.withBookingLocked(ctx, id, "", func(tx *gorm.DB, current *models.Booking) error {
		if _, err := s.lockRooms(ctx, tx, current.RoomID, current.RoomID); err != nil && !errors.Is(err, ErrRoomNotFound) {
			return err
		}
		if err := s.bookingRepo.Delete(ctx, tx, id); err != nil {
			return bookingLookupErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[Ledger] booking %s deleted", id)
	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID string, stay models.Stay) (*Availability, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, validationf("room id is required")
	}
	stay = models.NewStay(stay.CheckIn, stay.CheckOut)
	if !stay.Valid() {
		return nil, validationf("check-in date must be before check-out date")
	}

	conflicts, err := s.bookingRepo.FindOverlapping(ctx, s.bookingRepo.GetDB(), roomID, stay, "")
	if err != nil {
		return nil, persistence("find overlapping bookings", err)
	}
	return &Availability{IsAvailable: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// withBookingLocked runs fn in a transaction while holding the in-process lock
// of the booking's current room and of extraRoom. The booking handed to fn is
// re-read inside the transaction.
func (s *bookingService) withBookingLocked(ctx context.Context, id, extraRoom string, fn func(tx *gorm.DB, current *models.Booking) error) error {
	snapshot, err := s.bookingRepo.FindByID(ctx, s.bookingRepo.GetDB(), id)
	if err != nil {
		return bookingLookupErr(err)
	}

	for attempt := 0; attempt < maxRelockAttempts; attempt++ {
		locked := []string{snapshot.RoomID}
		if extraRoom != "" {
			locked = append(locked, extraRoom)
		}
		unlock, err := s.locks.lock(ctx, locked...)
		if err != nil {
			return fmt.Errorf("lock rooms %v: %w", locked, err)
		}

		moved := false
		err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current, err := s.bookingRepo.FindByID(ctx, tx, id)
			if err != nil {
				return bookingLookupErr(err)
			}
			if !slices.Contains(locked, current.RoomID) {
				moved = true
				snapshot = current
				return nil
			}
			return fn(tx, current)
		})
		unlock()

		if !moved {
			return classify(err)
		}
	}
	return fmt.Errorf("%w: booking %s keeps moving between rooms", ErrConflict, id)
}

// lockRooms row-locks both rooms in id order and returns the target room.
// The source room may have left the catalog; only the target must exist.
func (s *bookingService) lockRooms(ctx context.Context, tx *gorm.DB, sourceID, targetID string) (*models.Room, error) {
	ids := []string{sourceID, targetID}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var target *models.Room
	for _, id := range ids {
		room, err := s.lockRoom(ctx, tx, id)
		if err != nil {
			if id != targetID && errors.Is(err, ErrRoomNotFound) {
				continue
			}
			return nil, err
		}
		if id == targetID {
			target = room
		}
	}
	return target, nil
}

func (s *bookingService) lockRoom(ctx context.Context, tx *gorm.DB, roomID string) (*models.Room, error) {
	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
		}
		return nil, persistence("lock room", err)
	}
	return room, nil
}

// ensureVacant fails with a ConflictError when another booking of the same
// room overlaps b. b itself never counts.
func (s *bookingService) ensureVacant(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	conflicts, err := s.bookingRepo.FindOverlapping(ctx, tx, b.RoomID, b.Stay(), b.ID)
	if err != nil {
		return persistence("find overlapping bookings", err)
	}
	if len(conflicts) > 0 {
		return &ConflictError{RoomID: b.RoomID, Conflicts: conflicts}
	}
	return nil
}

func (s *bookingService) notifyCreated(ctx context.Context, booking *models.Booking) {
	if s.notifier == nil {
		return
	}
	// The booking is committed; the request being cancelled must not stop the broadcast.
	if err := s.notifier.BookingCreated(context.WithoutCancel(ctx), booking); err != nil {
		log.Printf("[Ledger] booking.created notification for %s failed: %v", booking.ID, err)
	}
}

func validateBooking(b *models.Booking) error {
	switch {
	case b.RoomID == "":
		return validationf("room is required")
	case !b.Stay().Valid():
		return validationf("check-in date must be before check-out date")
	case b.GuestCount <= 0:
		return validationf("number of guests must be positive")
	case b.TotalPrice < 0:
		return validationf("total price must not be negative")
	case b.GuestFullName == "":
		return validationf("full name is required")
	case b.GuestEmail == "":
		return validationf("email is required")
	case b.GuestPhone == "":
		return validationf("phone is required")
	}
	return nil
}

// checkCapacity passes when the room is unknown or declares no capacity.
func checkCapacity(room *models.Room, guests int) error {
	if room != nil && room.Capacity > 0 && guests > room.Capacity {
		return validationf("room %s holds at most %d guests", room.ID, room.Capacity)
	}
	return nil
}

func applyChanges(b models.Booking, ch BookingChanges) models.Booking {
	if ch.RoomID != nil {
		b.RoomID = strings.TrimSpace(*ch.RoomID)
	}
	if ch.CheckIn != nil {
		b.CheckIn = models.DateOf(*ch.CheckIn)
	}
	if ch.CheckOut != nil {
		b.CheckOut = models.DateOf(*ch.CheckOut)
	}
	if ch.GuestCount != nil {
		b.GuestCount = *ch.GuestCount
	}
	if ch.TotalPrice != nil {
		b.TotalPrice = *ch.TotalPrice
	}
	if ch.FullName != nil {
		b.GuestFullName = strings.TrimSpace(*ch.FullName)
	}
	if ch.Email != nil {
		b.GuestEmail = strings.TrimSpace(*ch.Email)
	}
	if ch.Phone != nil {
		b.GuestPhone = strings.TrimSpace(*ch.Phone)
	}
	return b
}

func bookingLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return persistence("find booking", err)
}
