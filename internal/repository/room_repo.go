package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Room, error)
	Upsert(ctx context.Context, room *models.Room) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Room, error) {
	var rooms []models.Room
	if len(ids) == 0 {
		return rooms, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given transaction.
// SQLite has no row locks and ignores the clause.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Upsert inserts the room or overwrites the catalog fields of an existing one.
func (r *roomRepository) Upsert(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "capacity", "updated_at"}),
	}).Create(room).Error
}
