package service

import (
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-booking/internal/models"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrRoomNotFound    = fmt.Errorf("room %w", ErrNotFound)
	ErrConflict        = errors.New("room is already booked for the requested dates")
	ErrPersistence     = errors.New("persistence error")
)

// ConflictError lists the bookings that overlap a requested stay.
type ConflictError struct {
	RoomID    string
	Conflicts []models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: room %s has %d overlapping booking(s)", ErrConflict, e.RoomID, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ConflictingIDs returns the ids of the overlapping bookings.
func (e *ConflictError) ConflictingIDs() []string {
	ids := make([]string, len(e.Conflicts))
	for i, b := range e.Conflicts {
		ids[i] = b.ID
	}
	return ids
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// classify wraps errors that escaped a transaction unclassified, such as a
// failed commit, as persistence errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrPersistence} {
		if errors.Is(err, known) {
			return err
		}
	}
	return persistence("commit", err)
}
