package consumer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/pkg/database"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeAcknowledger records how a delivery was settled.
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func setupConsumer(t *testing.T) (*CatalogConsumer, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return NewCatalogConsumer(repository.NewRoomRepository(db), repository.NewUserRepository(db)), db
}

func deliver(cc *CatalogConsumer, routingKey, body string) *fakeAcknowledger {
	ack := &fakeAcknowledger{}
	cc.handleMessage(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		RoutingKey:   routingKey,
		Body:         []byte(body),
	})
	return ack
}

func TestCatalogConsumer_UpsertsRooms(t *testing.T) {
	cc, db := setupConsumer(t)

	ack := deliver(cc, "room.created", `{"id":"room-1","name":"Deluxe King","price":120,"capacity":2}`)
	assert.True(t, ack.acked)

	ack = deliver(cc, "room.updated", `{"id":"room-1","name":"Deluxe King","description":"Sea view","price":150,"capacity":3}`)
	assert.True(t, ack.acked)

	var rooms []models.Room
	require.NoError(t, db.Find(&rooms).Error)
	require.Len(t, rooms, 1)
	assert.Equal(t, 150.0, rooms[0].Price)
	assert.Equal(t, 3, rooms[0].Capacity)
	assert.Equal(t, "Sea view", rooms[0].Description)
}

func TestCatalogConsumer_UpsertsUsers(t *testing.T) {
	cc, db := setupConsumer(t)

	assert.True(t, deliver(cc, "user.created", `{"id":"user-1","name":"Ada","email":"ada@example.com"}`).acked)
	assert.True(t, deliver(cc, "user.updated", `{"id":"user-1","name":"Ada L.","email":"ada@example.com"}`).acked)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Equal(t, "Ada L.", user.Name)
}

func TestCatalogConsumer_DropsBadPayloads(t *testing.T) {
	cc, _ := setupConsumer(t)

	for _, body := range []string{`{not json`, `{"name":"No id"}`} {
		ack := deliver(cc, "room.created", body)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	}

	ack := deliver(cc, "user.created", `{"name":"No id"}`)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestCatalogConsumer_RequeuesOnStorageFailure(t *testing.T) {
	cc, db := setupConsumer(t)
	require.NoError(t, database.Close(db))

	ack := deliver(cc, "room.created", `{"id":"room-1","name":"Deluxe King","price":120}`)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestCatalogConsumer_AcksUnknownKeys(t *testing.T) {
	cc, _ := setupConsumer(t)

	ack := deliver(cc, "invoice.created", `{}`)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestCatalogConsumer_RunStopsWhenChannelCloses(t *testing.T) {
	cc, db := setupConsumer(t)

	msgs := make(chan amqp.Delivery, 1)
	ack := &fakeAcknowledger{}
	msgs <- amqp.Delivery{Acknowledger: ack, RoutingKey: "room.created", Body: []byte(`{"id":"room-9","name":"Loft","price":90}`)}
	close(msgs)

	done := make(chan error, 1)
	go func() { done <- cc.Run(context.Background(), msgs) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.True(t, ack.acked)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCatalogConsumer_RunStopsOnCancel(t *testing.T) {
	cc, _ := setupConsumer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, cc.Run(ctx, make(chan amqp.Delivery)))
}
