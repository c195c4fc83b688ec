package notification

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/dto"
	"github.com/Eursukkul/hotel-booking/internal/models"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// BrokerNotifier announces new bookings on the message broker.
type BrokerNotifier struct {
	publisher Publisher
}

func NewBrokerNotifier(publisher Publisher) *BrokerNotifier {
	return &BrokerNotifier{publisher: publisher}
}

func (n *BrokerNotifier) BookingCreated(ctx context.Context, booking *models.Booking) error {
	return n.publisher.Publish(ctx, EventBookingCreated, dto.ToBookingResponse(booking))
}
