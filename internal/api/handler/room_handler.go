package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/hotel-system/internal/api/metrics"
	"github.com/frontdesk/hotel-system/internal/core/domain"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

// RoomHandler serves the room administration and search routes. Capability
// checks run in middleware before any of these handlers.
type RoomHandler struct {
	rooms ports.RoomService
}

func NewRoomHandler(rooms ports.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// CreateType adds a room type.
//
// @Summary      Create a room type
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type             path      string                 true   "Room type name"
// @Param        Idempotency-Key  header    string                 false  "Replay key"
// @Param        body             body      createRoomTypeRequest  false  "Description"
// @Success      201              {object}  messageResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /api/Rooms/create-type/{type} [post]
func (h *RoomHandler) CreateType(c echo.Context) error {
	name := c.Param("type")

	var req createRoomTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.rooms.CreateRoomType(c.Request().Context(), name, req.Description); err != nil {
		return err
	}
	metrics.RoomChangesTotal.WithLabelValues("create_type").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("Room type %s created successfully", name)})
}

// CreateRoom adds a clean, unoccupied room.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Replay key"
// @Param        body             body      createRoomRequest  true   "Room number and type"
// @Success      201              {object}  messageResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /api/Rooms/create-room [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.rooms.CreateRoom(c.Request().Context(), req.Room, req.Type); err != nil {
		return err
	}
	metrics.RoomChangesTotal.WithLabelValues("create_room").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("Room %d created successfully", req.Room)})
}

// RemoveType deletes an empty room type.
//
// @Summary      Remove a room type
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string                 true   "Room type name"
// @Param        body  body      removeRoomTypeRequest  false  "Replacement type"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      406   {object}  errorResponse
// @Router       /api/Rooms/remove-type/{type} [post]
func (h *RoomHandler) RemoveType(c echo.Context) error {
	name := c.Param("type")

	var req removeRoomTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.rooms.RemoveRoomType(c.Request().Context(), name, req.NewType); err != nil {
		return err
	}
	metrics.RoomChangesTotal.WithLabelValues("remove_type").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Room type %s removed successfully", name)})
}

// RemoveRoom deletes a room.
//
// @Summary      Remove a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        room  path      int  true  "Room number"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/Rooms/remove-room/{room} [post]
func (h *RoomHandler) RemoveRoom(c echo.Context) error {
	number, err := roomParam(c)
	if err != nil {
		return err
	}

	if err := h.rooms.RemoveRoom(c.Request().Context(), number); err != nil {
		return err
	}
	metrics.RoomChangesTotal.WithLabelValues("remove_room").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Room %d removed successfully", number)})
}

// Update changes the state, occupancy or reservation of a room.
//
// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        room  path      int                true  "Room number"
// @Param        body  body      updateRoomRequest  true  "Fields to change"
// @Success      200   {object}  domain.Room
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/Rooms/update/{room} [post]
func (h *RoomHandler) Update(c echo.Context) error {
	number, err := roomParam(c)
	if err != nil {
		return err
	}

	var req updateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.rooms.UpdateRoom(c.Request().Context(), number, req.toDomain())
	if err != nil {
		return err
	}
	metrics.RoomChangesTotal.WithLabelValues("update_room").Inc()
	return c.JSON(http.StatusOK, room)
}

// Query lists rooms matching every supplied filter.
//
// @Summary      Search rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        type           query     string  false  "Room type"
// @Param        state          query     string  false  "Clean, Inspected, Dirty or OutOfOrder"
// @Param        occupied       query     bool    false  "Occupancy"
// @Param        reservationId  query     int     false  "Reservation id"
// @Success      200            {array}   domain.Room
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Router       /api/Rooms/room [get]
func (h *RoomHandler) Query(c echo.Context) error {
	filter, err := roomFilter(c)
	if err != nil {
		return err
	}

	rooms, err := h.rooms.QueryRooms(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// ListTypes returns every room type.
//
// @Summary      List room types
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RoomType
// @Failure      401  {object}  errorResponse
// @Router       /api/Rooms/types [get]
func (h *RoomHandler) ListTypes(c echo.Context) error {
	types, err := h.rooms.ListRoomTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

func roomParam(c echo.Context) (int, error) {
	var number int
	if err := echo.PathParamsBinder(c).MustInt("room", &number).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "room must be an integer")
	}
	return number, nil
}

// roomFilter reads the optional query filters. Empty parameters are treated
// as absent.
func roomFilter(c echo.Context) (domain.RoomFilter, error) {
	var f domain.RoomFilter
	q := c.QueryParams()
	b := echo.QueryParamsBinder(c)

	if v := q.Get("type"); v != "" {
		f.Type = &v
	}
	if v := q.Get("state"); v != "" {
		s := domain.RoomState(v)
		if !s.Valid() {
			return f, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidRoomState, v)
		}
		f.State = &s
	}
	if q.Get("occupied") != "" {
		var occupied bool
		b.Bool("occupied", &occupied)
		f.Occupied = &occupied
	}
	if q.Get("reservationId") != "" {
		var id int
		b.Int("reservationId", &id)
		f.ReservationID = &id
	}

	if err := b.BindError(); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	return f, nil
}
