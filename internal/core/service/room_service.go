package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

type RoomService struct {
	repo   ports.RoomRepository
	logger zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

func (s *RoomService) CreateRoomType(ctx context.Context, name, description string) error {
	if err := s.repo.CreateType(ctx, &domain.RoomType{Name: name, Description: description}); err != nil {
		return err
	}
	s.logger.Info().Str("type", name).Msg("room type created")
	return nil
}

// RemoveRoomType deletes an empty room type. The emptiness check and the
// delete are separate store calls; a room created under name in between is
// re-pointed to replacement by the store when one is given.
func (s *RoomService) RemoveRoomType(ctx context.Context, name, replacement string) error {
	if _, err := s.repo.FindType(ctx, name); err != nil {
		return err
	}
	if replacement != "" {
		if replacement == name {
			return fmt.Errorf("%w: %s cannot replace itself", domain.ErrRoomTypeDoesNotExist, name)
		}
		if _, err := s.repo.FindType(ctx, replacement); err != nil {
			return err
		}
	}

	n, err := s.repo.CountByType(ctx, name)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d rooms still have type %s", domain.ErrRoomTypeIsNotEmpty, n, name)
	}

	if err := s.repo.RemoveType(ctx, name, replacement); err != nil {
		return err
	}
	s.logger.Info().Str("type", name).Str("replacement", replacement).Msg("room type removed")
	return nil
}

func (s *RoomService) ListRoomTypes(ctx context.Context) ([]*domain.RoomType, error) {
	return s.repo.ListTypes(ctx)
}

// CreateRoom adds a clean, unoccupied room of an existing type.
func (s *RoomService) CreateRoom(ctx context.Context, number int, roomType string) error {
	if _, err := s.repo.FindType(ctx, roomType); err != nil {
		return err
	}

	room := &domain.Room{
		Number: number,
		Type:   roomType,
		State:  domain.RoomClean,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return err
	}
	s.logger.Info().Int("room", number).Str("type", roomType).Msg("room created")
	return nil
}

func (s *RoomService) RemoveRoom(ctx context.Context, number int) error {
	if err := s.repo.RemoveRoom(ctx, number); err != nil {
		return err
	}
	s.logger.Info().Int("room", number).Msg("room removed")
	return nil
}

// UpdateRoom applies update to an existing room. Occupied rooms must carry a
// reservation id.
func (s *RoomService) UpdateRoom(ctx context.Context, number int, update domain.RoomUpdate) (*domain.Room, error) {
	if update.State != nil && !update.State.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidRoomState, *update.State)
	}

	current, err := s.repo.FindRoom(ctx, number)
	if err != nil {
		return nil, err
	}

	next, err := update.Apply(*current)
	if err != nil {
		return nil, fmt.Errorf("%w: room %d is occupied", err, number)
	}
	if err := s.repo.UpdateRoom(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("room", number).
		Str("state", string(next.State)).
		Bool("occupied", next.Occupied).
		Msg("room updated")
	return &next, nil
}

// QueryRooms returns every room matching filter; unset fields match all.
func (s *RoomService) QueryRooms(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	rooms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}
