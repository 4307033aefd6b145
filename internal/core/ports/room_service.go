package ports

import (
	"context"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// RoomService defines the room administration and search use cases.
// Capability checks happen before these are called.
type RoomService interface {
	CreateRoomType(ctx context.Context, name, description string) error
	RemoveRoomType(ctx context.Context, name, replacement string) error
	ListRoomTypes(ctx context.Context) ([]*domain.RoomType, error)
	CreateRoom(ctx context.Context, number int, roomType string) error
	RemoveRoom(ctx context.Context, number int) error
	UpdateRoom(ctx context.Context, number int, update domain.RoomUpdate) (*domain.Room, error)
	QueryRooms(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
}
