package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"gorm.io/gorm"
)

// RoomCatalog is the read-only view of the rooms synced from the catalog service.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
}

type roomCatalog struct {
	repo repository.RoomRepository
}

func NewRoomCatalog(repo repository.RoomRepository) RoomCatalog {
	return &roomCatalog{repo: repo}
}

func (s *roomCatalog) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, persistence("find room", err)
	}
	return room, nil
}

func (s *roomCatalog) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list rooms", err)
	}
	return rooms, nil
}
