package domain

import "errors"

// RoomState is the housekeeping state of a room. Any state may be set from
// any other; no workflow is enforced.
type RoomState string

const (
	RoomClean      RoomState = "Clean"
	RoomInspected  RoomState = "Inspected"
	RoomDirty      RoomState = "Dirty"
	RoomOutOfOrder RoomState = "OutOfOrder"
)

// Valid reports whether s is a known room state.
func (s RoomState) Valid() bool {
	switch s {
	case RoomClean, RoomInspected, RoomDirty, RoomOutOfOrder:
		return true
	}
	return false
}

var (
	ErrRoomDoesNotExist        = errors.New("room does not exist")
	ErrRoomNumberAlreadyExists = errors.New("room number already exists")
	ErrRoomTypeDoesNotExist    = errors.New("room type does not exist")
	ErrRoomTypeAlreadyExists   = errors.New("room type already exists")
	ErrRoomTypeIsNotEmpty      = errors.New("room type is not empty")
	ErrMissingReservationID    = errors.New("missing reservation id")
	ErrInvalidRoomState        = errors.New("invalid room state")
)

// RoomType groups rooms sharing the same layout and rate.
type RoomType struct {
	Name        string `json:"type" bson:"name"`
	Description string `json:"description" bson:"description"`
}

// Room is a single bookable room.
type Room struct {
	Number        int       `json:"room" bson:"room_number"`
	Type          string    `json:"type" bson:"type"`
	State         RoomState `json:"state" bson:"state"`
	Occupied      bool      `json:"occupied" bson:"occupied"`
	ReservationID *int      `json:"reservationId,omitempty" bson:"reservation_id,omitempty"`
}

// RoomFilter selects rooms by the conjunction of its non-nil fields.
type RoomFilter struct {
	Type          *string
	State         *RoomState
	Occupied      *bool
	ReservationID *int
}

// Matches reports whether r satisfies every field set on f.
func (f RoomFilter) Matches(r *Room) bool {
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	if f.State != nil && r.State != *f.State {
		return false
	}
	if f.Occupied != nil && r.Occupied != *f.Occupied {
		return false
	}
	if f.ReservationID != nil && (r.ReservationID == nil || *r.ReservationID != *f.ReservationID) {
		return false
	}
	return true
}

// RoomUpdate carries the fields to change on a room; nil fields are kept.
type RoomUpdate struct {
	State         *RoomState
	Occupied      *bool
	ReservationID *int
}

// Apply returns a copy of r with u applied. A room that becomes unoccupied
// with no explicit reservation id drops its reservation.
func (u RoomUpdate) Apply(r Room) (Room, error) {
	if u.State != nil {
		r.State = *u.State
	}
	if u.Occupied != nil {
		r.Occupied = *u.Occupied
		if !r.Occupied && u.ReservationID == nil {
			r.ReservationID = nil
		}
	}
	if u.ReservationID != nil {
		id := *u.ReservationID
		r.ReservationID = &id
	}
	if r.Occupied && r.ReservationID == nil {
		return r, ErrMissingReservationID
	}
	return r, nil
}
