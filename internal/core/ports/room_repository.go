package ports

import (
	"context"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

// RoomRepository defines persistence operations for rooms and room types.
type RoomRepository interface {
	// CreateType returns domain.ErrRoomTypeAlreadyExists on a duplicate name.
	CreateType(ctx context.Context, t *domain.RoomType) error
	// FindType returns domain.ErrRoomTypeDoesNotExist when absent.
	FindType(ctx context.Context, name string) (*domain.RoomType, error)
	ListTypes(ctx context.Context) ([]*domain.RoomType, error)
	// RemoveType deletes the type and re-points any room still carrying it to
	// replacement (if non-empty) in the same call.
	RemoveType(ctx context.Context, name, replacement string) error

	// CreateRoom returns domain.ErrRoomNumberAlreadyExists on a duplicate number.
	CreateRoom(ctx context.Context, r *domain.Room) error
	// FindRoom returns domain.ErrRoomDoesNotExist when absent.
	FindRoom(ctx context.Context, number int) (*domain.Room, error)
	// UpdateRoom replaces the mutable fields of an existing room.
	UpdateRoom(ctx context.Context, r *domain.Room) error
	// RemoveRoom returns domain.ErrRoomDoesNotExist when nothing was deleted.
	RemoveRoom(ctx context.Context, number int) error
	CountByType(ctx context.Context, name string) (int64, error)
	// List returns rooms matching filter ordered by room number.
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
}
