package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

var errBadPayload = errors.New("bad payload")

// CatalogConsumer mirrors rooms and user accounts published by the catalog
// and auth services into the local store.
type CatalogConsumer struct {
	rooms repository.RoomRepository
	users repository.UserRepository
}

func NewCatalogConsumer(rooms repository.RoomRepository, users repository.UserRepository) *CatalogConsumer {
	return &CatalogConsumer{rooms: rooms, users: users}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (cc *CatalogConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				log.Println("[CatalogConsumer] channel closed, stopping consumer")
				return nil
			}
			cc.handleMessage(ctx, msg)
		}
	}
}

func (cc *CatalogConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	entity, _, _ := strings.Cut(msg.RoutingKey, ".")

	var err error
	switch entity {
	case "room":
		err = cc.syncRoom(ctx, msg.Body)
	case "user":
		err = cc.syncUser(ctx, msg.Body)
	default:
		log.Printf("[CatalogConsumer] ignoring %s", msg.RoutingKey)
		_ = msg.Ack(false)
		return
	}

	switch {
	case errors.Is(err, errBadPayload):
		log.Printf("[CatalogConsumer] dropping %s: %v", msg.RoutingKey, err)
		_ = msg.Nack(false, false)
	case err != nil:
		log.Printf("[CatalogConsumer] failed to sync %s: %v", msg.RoutingKey, err)
		_ = msg.Nack(false, true) // requeue
	default:
		_ = msg.Ack(false)
	}
}

func (cc *CatalogConsumer) syncRoom(ctx context.Context, body []byte) error {
	var room models.Room
	if err := json.Unmarshal(body, &room); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	if room.ID == "" || room.Name == "" {
		return fmt.Errorf("%w: room id and name are required", errBadPayload)
	}

	if err := cc.rooms.Upsert(ctx, &room); err != nil {
		return fmt.Errorf("upsert room %s: %w", room.ID, err)
	}
	log.Printf("[CatalogConsumer] synced room %s: %s", room.ID, room.Name)
	return nil
}

func (cc *CatalogConsumer) syncUser(ctx context.Context, body []byte) error {
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", errBadPayload)
	}

	if err := cc.users.Upsert(ctx, &user); err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	log.Printf("[CatalogConsumer] synced user %s", user.ID)
	return nil
}
