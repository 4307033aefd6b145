package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/frontdesk/hotel-system/internal/core/domain"
)

const (
	roomsCollection     = "rooms"
	roomTypesCollection = "room_types"
)

// RoomRepository persists rooms and room types in two collections.
type RoomRepository struct {
	rooms *mongo.Collection
	types *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{
		rooms: db.Collection(roomsCollection),
		types: db.Collection(roomTypesCollection),
	}
}

// EnsureIndexes makes room numbers and type names unique and indexes the
// fields rooms are queried by.
func (r *RoomRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("room_types index: %w", err)
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "occupied", Value: 1}}},
		{Keys: bson.D{{Key: "reservation_id", Value: 1}}},
	}
	if _, err := r.rooms.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("rooms indexes: %w", err)
	}
	return nil
}

func (r *RoomRepository) CreateType(ctx context.Context, t *domain.RoomType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.types.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrRoomTypeAlreadyExists, t.Name)
		}
		return fmt.Errorf("insert room type: %w", err)
	}
	return nil
}

func (r *RoomRepository) FindType(ctx context.Context, name string) (*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.RoomType
	if err := r.types.FindOne(ctx, bson.M{"name": name}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoomTypeDoesNotExist, name)
		}
		return nil, fmt.Errorf("find room type: %w", err)
	}
	return &t, nil
}

func (r *RoomRepository) ListTypes(ctx context.Context) ([]*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.types.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	types := []*domain.RoomType{}
	if err := cur.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("decode room types: %w", err)
	}
	return types, nil
}

// RemoveType deletes the type. Rooms created under it after the caller's
// emptiness check are moved to replacement first, so a failed move leaves the
// type in place.
func (r *RoomRepository) RemoveType(ctx context.Context, name, replacement string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if replacement != "" {
		if _, err := r.rooms.UpdateMany(ctx, bson.M{"type": name}, bson.M{"$set": bson.M{"type": replacement}}); err != nil {
			return fmt.Errorf("re-point rooms: %w", err)
		}
	}

	res, err := r.types.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete room type: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRoomTypeDoesNotExist, name)
	}
	return nil
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.rooms.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %d", domain.ErrRoomNumberAlreadyExists, room.Number)
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (r *RoomRepository) FindRoom(ctx context.Context, number int) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var room domain.Room
	if err := r.rooms.FindOne(ctx, bson.M{"room_number": number}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", domain.ErrRoomDoesNotExist, number)
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &room, nil
}

func (r *RoomRepository) UpdateRoom(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"state":    string(room.State),
		"occupied": room.Occupied,
	}}
	if room.ReservationID != nil {
		update["$set"].(bson.M)["reservation_id"] = *room.ReservationID
	} else {
		update["$unset"] = bson.M{"reservation_id": ""}
	}

	res, err := r.rooms.UpdateOne(ctx, bson.M{"room_number": room.Number}, update)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", domain.ErrRoomDoesNotExist, room.Number)
	}
	return nil
}

func (r *RoomRepository) RemoveRoom(ctx context.Context, number int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.rooms.DeleteOne(ctx, bson.M{"room_number": number})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %d", domain.ErrRoomDoesNotExist, number)
	}
	return nil
}

func (r *RoomRepository) CountByType(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.rooms.CountDocuments(ctx, bson.M{"type": name})
	if err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

func (r *RoomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.rooms.Find(ctx, roomQuery(filter), options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := []*domain.Room{}
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

// roomQuery translates a filter into a Mongo query; unset fields are omitted.
func roomQuery(f domain.RoomFilter) bson.M {
	q := bson.M{}
	if f.Type != nil {
		q["type"] = *f.Type
	}
	if f.State != nil {
		q["state"] = string(*f.State)
	}
	if f.Occupied != nil {
		q["occupied"] = *f.Occupied
	}
	if f.ReservationID != nil {
		q["reservation_id"] = *f.ReservationID
	}
	return q
}
