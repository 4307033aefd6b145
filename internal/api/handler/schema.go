package handler

import "github.com/frontdesk/hotel-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

// tokenRequest is checked by the user service so that empty credentials get
// the same answer as wrong ones.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username   string `json:"username"   validate:"required"`
	Password   string `json:"password"   validate:"required,max=72"`
	Role       string `json:"role"       validate:"omitempty,oneof=Admin User"`
	Department string `json:"department" validate:"omitempty,oneof=FrontDesk Housekeeping Maintenance BackOffice"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

type changeRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=Admin User"`
}

// --- Rooms ---

type createRoomTypeRequest struct {
	Description string `json:"description"`
}

type createRoomRequest struct {
	Type string `json:"type" validate:"required"`
	Room int    `json:"room" validate:"required,gt=0"`
}

type removeRoomTypeRequest struct {
	NewType string `json:"newType"`
}

type updateRoomRequest struct {
	State         *string `json:"state"         validate:"omitempty,oneof=Clean Inspected Dirty OutOfOrder"`
	Occupied      *bool   `json:"occupied"`
	ReservationID *int    `json:"reservationId" validate:"omitempty,gt=0"`
}

func (r updateRoomRequest) toDomain() domain.RoomUpdate {
	u := domain.RoomUpdate{Occupied: r.Occupied, ReservationID: r.ReservationID}
	if r.State != nil {
		s := domain.RoomState(*r.State)
		u.State = &s
	}
	return u
}
