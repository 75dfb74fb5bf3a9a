package model

import (
	"fmt"
	"roomly/config"
	locationModel "roomly/internal/domains/location/model"
	roomModel "roomly/internal/domains/room/model"
	userModel "roomly/internal/domains/user/model"
	"roomly/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldRoomID         = "room_id"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldGuestQuantity  = "guest_quantity"
	FieldTotalPrice     = "total_price"
	FieldStatus         = "status"
	FieldIsDeletedUser  = "is_deleted_user"
	FieldIsDeletedAdmin = "is_deleted_admin"
	FieldDeletedBy      = "deleted_by"
	FieldDeletedAt      = "deleted_at"
	FieldConfirmedAt    = "confirmed_at"
	FieldCancelledAt    = "cancelled_at"
	FieldCancelledBy    = "cancelled_by"
	FieldCancelReason   = "cancel_reason"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// ActiveStatuses are the states that hold a room for their interval.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) Validate(_ *config.Config) error {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return nil
	default:
		return fmt.Errorf("invalid booking status %q", s)
	}
}

type Booking struct {
	ID             int64      `db:"id"               auto:"true"`
	UserID         int64      `db:"user_id"`
	RoomID         int64      `db:"room_id"`
	CheckIn        time.Time  `db:"check_in"`
	CheckOut       time.Time  `db:"check_out"`
	GuestQuantity  int        `db:"guest_quantity"`
	TotalPrice     float64    `db:"total_price"`
	Status         Status     `db:"status"`
	IsDeletedUser  bool       `db:"is_deleted_user"`
	IsDeletedAdmin bool       `db:"is_deleted_admin"`
	DeletedBy      *int64     `db:"deleted_by"`
	DeletedAt      *time.Time `db:"deleted_at"`
	ConfirmedAt    *time.Time `db:"confirmed_at"`
	CancelledAt    *time.Time `db:"cancelled_at"`
	CancelledBy    *string    `db:"cancelled_by"`
	CancelReason   *string    `db:"cancel_reason"`
	model.Metadata
}

// BookingDetail is the read model joined with the booker, the room and its location.
type BookingDetail struct {
	Booking
	UserName     string  `db:"user_name"     table:"users"     column:"name"`
	UserEmail    string  `db:"user_email"    table:"users"     column:"email"`
	UserAvatar   *string `db:"user_avatar"   table:"users"     column:"avatar"`
	RoomName     string  `db:"room_name"     table:"rooms"`
	RoomPrice    int64   `db:"room_price"    table:"rooms"     column:"price"`
	RoomImage    *string `db:"room_image"    table:"rooms"     column:"image"`
	LocationID   int64   `db:"location_id"   table:"rooms"`
	LocationName string  `db:"location_name" table:"locations"`
	Province     *string `db:"province"      table:"locations"`
}

func (BookingDetail) JoinQuery() string {
	return fmt.Sprintf(
		"JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s JOIN %[5]s ON %[5]s.%[6]s = %[3]s.%[7]s JOIN %[8]s ON %[8]s.%[9]s = %[5]s.%[10]s",
		userModel.TableName, userModel.FieldID, TableName, FieldUserID,
		roomModel.TableName, roomModel.FieldID, FieldRoomID,
		locationModel.TableName, locationModel.FieldID, roomModel.FieldLocationID,
	)
}
