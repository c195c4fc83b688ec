package notification

import (
	"context"
	"errors"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/service"
)

// Fanout delivers each booking to every notifier, even when some of them fail.
type Fanout []service.Notifier

func (f Fanout) BookingCreated(ctx context.Context, booking *models.Booking) error {
	var errs []error
	for _, n := range f {
		if err := n.BookingCreated(ctx, booking); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
