package database

import (
	"fmt"
	"testing"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost:5432/hotel"))
	assert.True(t, isPostgres("postgresql://localhost/hotel"))
	assert.True(t, isPostgres("host=localhost port=5432 user=u password=p dbname=hotel sslmode=disable"))
	assert.False(t, isPostgres("hotel.db"))
	assert.False(t, isPostgres("file:hotel?mode=memory&cache=shared"))
}

func TestConnectSQLite_MigrateAndClose(t *testing.T) {
	db, err := Connect(fmt.Sprintf("file:database_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Booking{}))
	assert.True(t, db.Migrator().HasTable(&models.Room{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasIndex(&models.Booking{}, "idx_bookings_room_stay"))

	require.NoError(t, Close(db))
}
